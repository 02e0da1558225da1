package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func seedDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "books.db")
	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	repo := books.NewRepository(db.DB)
	_, err = repo.AddBookWithReview(context.Background(), books.NewBook{Title: "Dune", FirstName: "Frank", LastName: "Herbert", ReviewText: "Great"})
	require.NoError(t, err)
	_, err = repo.AddBookWithReview(context.Background(), books.NewBook{Title: "Emma", FirstName: "Jane", LastName: "Austen"})
	require.NoError(t, err)

	// One author without a book.
	require.NoError(t, db.DB.Create(&entities.Author{FirstName: "Nobody"}).Error)
	return path
}

func TestExportCommand_ParseFlags(t *testing.T) {
	cmd := NewExportCommand()
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, config.DefaultDatabasePath, cmd.DatabasePath)
	assert.Equal(t, "books-read.md", cmd.OutputPath)

	cmd = NewExportCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--db", "x.db", "-o", "out.md"}))
	assert.Equal(t, "x.db", cmd.DatabasePath)
	assert.Equal(t, "out.md", cmd.OutputPath)

	cmd = NewExportCommand()
	assert.Error(t, cmd.ParseFlags([]string{"--output", ""}))
}

func TestExportCommand_Run(t *testing.T) {
	var out bytes.Buffer
	output := filepath.Join(t.TempDir(), "export.md")
	cmd := &ExportCommand{DatabasePath: seedDatabase(t), OutputPath: output, out: &out}

	require.NoError(t, cmd.Run(context.Background()))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "## Dune")
	assert.Contains(t, string(content), "## Emma")
	assert.Contains(t, out.String(), "Exported 2 books (1 reviews)")
}

func TestCleanupAuthorsCommand_DryRun(t *testing.T) {
	var out bytes.Buffer
	path := seedDatabase(t)
	cmd := &CleanupAuthorsCommand{DatabasePath: path, DryRun: true, out: &out}

	require.NoError(t, cmd.Run(context.Background()))
	assert.Contains(t, out.String(), "1 orphaned authors would be removed")

	out.Reset()
	cmd.DryRun = false
	require.NoError(t, cmd.Run(context.Background()))
	assert.Contains(t, out.String(), "Removed 1 orphaned authors")

	out.Reset()
	require.NoError(t, cmd.Run(context.Background()))
	assert.Contains(t, out.String(), "Removed 0 orphaned authors")
}

func TestCleanupAuthorsCommand_ParseFlags(t *testing.T) {
	cmd := NewCleanupAuthorsCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--db", "x.db", "--dry-run"}))
	assert.Equal(t, "x.db", cmd.DatabasePath)
	assert.True(t, cmd.DryRun)
}
