package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookprep/bookprep/internal/config"
	"github.com/bookprep/bookprep/internal/home"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the bookprep home directory",
	Long: `Create the bookprep home directory layout and write a default config file.

The home directory holds:
  books/   - book PDF files, named <book-id>.pdf
  cache/   - prompt response and chapter text caches
  records/ - generated plot point records

Examples:
  bookprep init                      # Initialize ~/.bookprep
  bookprep init --home /srv/bookprep # Initialize a custom location`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		if h.ConfigExists() {
			fmt.Printf("Config already exists at %s\n", h.ConfigPath())
			return nil
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}

		fmt.Printf("Initialized bookprep home at %s\n", h.Path())
		fmt.Printf("Wrote default config to %s\n", h.ConfigPath())
		fmt.Println("Set GEMINI_API_KEY (or OPENAI_API_KEY) in your environment or a .env file.")
		return nil
	},
}
