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
)

// CleanupAuthorsCommand removes authors that no book links to any more.
type CleanupAuthorsCommand struct {
	DatabasePath string
	DryRun       bool

	out io.Writer
}

func NewCleanupAuthorsCommand() *CleanupAuthorsCommand {
	return &CleanupAuthorsCommand{out: os.Stdout}
}

func (cmd *CleanupAuthorsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("cleanup-authors", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the reading log database")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Only count orphaned authors")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s cleanup-authors [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete authors that are not linked to any book.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *CleanupAuthorsCommand) Run(ctx context.Context) error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)

	if cmd.DryRun {
		count, err := repo.CountOrphanAuthors(ctx)
		if err != nil {
			return fmt.Errorf("count orphan authors: %w", err)
		}
		fmt.Fprintf(cmd.out, "DRY RUN: %d orphaned authors would be removed\n", count)
		return nil
	}

	removed, err := repo.DeleteOrphanAuthors(ctx)
	if err != nil {
		return fmt.Errorf("delete orphan authors: %w", err)
	}
	fmt.Fprintf(cmd.out, "Removed %d orphaned authors\n", removed)
	return nil
}
