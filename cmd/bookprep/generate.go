package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookprep/bookprep/internal/cache"
	"github.com/bookprep/bookprep/internal/executor"
	"github.com/bookprep/bookprep/internal/locator"
	"github.com/bookprep/bookprep/internal/pdf"
	"github.com/bookprep/bookprep/internal/pipeline"
	"github.com/bookprep/bookprep/internal/records"
)

var (
	generateBookName string
	generateChapter  string
)

var generateCmd = &cobra.Command{
	Use:   "generate <book-id>",
	Short: "Generate plot points and exam Q&A for a chapter",
	Long: `Run the full generation pipeline for one chapter of a book:

  1. Obtain the book's chapter list from the model
  2. Locate the chapter's page range in the PDF
  3. Generate plot-point analysis (always a fresh model call)
  4. Generate Bagrut-style questions and model answers
  5. Persist the plot point record and print the rendered Q&A

The book PDF must exist at <home>/books/<book-id>.pdf.

Examples:
  bookprep generate gatsby --chapter "Chapter 3"
  bookprep generate gatsby --name "The Great Gatsby" --chapter "Chapter 3"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		bookID := args[0]
		bookName := generateBookName
		if bookName == "" {
			bookName = bookID
		}

		d, err := setup()
		if err != nil {
			return err
		}

		chapterBackend, err := cache.OpenFile(d.home.ChapterCachePath())
		if err != nil {
			return err
		}
		loc := locator.New(pdf.NewLibrary(d.home), cache.NewChapterCache(chapterBackend), d.logger)

		store, err := records.OpenFileStore(d.home.PlotPointsPath())
		if err != nil {
			return err
		}

		p := pipeline.New(d.executor, loc, store, d.logger)
		result, err := p.Run(ctx, bookID, bookName, generateChapter)
		if err != nil {
			return renderExecutorErr(err)
		}

		fmt.Printf("# %s - %s\n\n", bookName, generateChapter)
		fmt.Print(result.Rendered)
		d.logger.Info("generation complete",
			"record_id", result.Record.ID,
			"questions", len(result.QA))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(
		&generateBookName, "name", "", "human-readable book title (default: the book id)",
	)
	generateCmd.Flags().StringVar(
		&generateChapter, "chapter", "", "chapter title to analyze (required)",
	)
	_ = generateCmd.MarkFlagRequired("chapter")
}

// renderExecutorErr replaces an exhausted-retry error with the fixed
// user-facing failure sentence.
func renderExecutorErr(err error) error {
	if errors.Is(err, executor.ErrUnavailable) {
		return errors.New(executor.FailureMessage)
	}
	return err
}
