package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookprep/bookprep/internal/locator"
	"github.com/bookprep/bookprep/internal/parser"
	"github.com/bookprep/bookprep/internal/pdf"
	"github.com/bookprep/bookprep/internal/prompts"
)

var chaptersBookName string

var chaptersCmd = &cobra.Command{
	Use:   "chapters <book-id>",
	Short: "List detected chapter start pages for a book",
	Long: `Ask the model for the book's chapter titles, then scan the PDF for each
title's first page of appearance.

The book PDF must exist at <home>/books/<book-id>.pdf.

Examples:
  bookprep chapters gatsby
  bookprep chapters gatsby --name "The Great Gatsby"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		bookID := args[0]
		bookName := chaptersBookName
		if bookName == "" {
			bookName = bookID
		}

		d, err := setup()
		if err != nil {
			return err
		}

		response, err := d.executor.Execute(ctx, prompts.ChapterList(bookName))
		if err != nil {
			return renderExecutorErr(err)
		}
		titles := parser.ParseChapterList(response)
		if len(titles) == 0 {
			return fmt.Errorf("no chapter titles detected for %q", bookName)
		}

		doc, err := pdf.NewLibrary(d.home).Open(bookID)
		if err != nil {
			return err
		}
		defer doc.Close()

		starts, err := locator.ScanStarts(ctx, doc, titles)
		if err != nil {
			return err
		}

		for i, title := range titles {
			if starts[i] < 0 {
				fmt.Printf("%3d. %s (not found)\n", i+1, title)
				continue
			}
			fmt.Printf("%3d. %s (page %d)\n", i+1, title, starts[i])
		}
		return nil
	},
}

func init() {
	chaptersCmd.Flags().StringVar(
		&chaptersBookName, "name", "", "human-readable book title (default: the book id)",
	)
}
