package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/exporters"
)

// ExportCommand writes the reading log to a markdown file.
type ExportCommand struct {
	DatabasePath string
	OutputPath   string

	out io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{out: os.Stdout}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the reading log database")
	fs.StringVarP(&cmd.OutputPath, "output", "o", "books-read.md", "Markdown file to write")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every book, author and review to a single markdown file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OutputPath == "" {
		return fmt.Errorf("--output must not be empty")
	}
	return nil
}

func (cmd *ExportCommand) Run(ctx context.Context) error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	exporter := exporters.NewFileExporter(books.NewRepository(db.DB))
	result, err := exporter.Export(ctx, cmd.OutputPath)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.out, "Exported %d books (%d reviews) to %s\n", result.BooksExported, result.ReviewsWritten, result.Path)
	return nil
}
