package exporters

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookReader supplies the rows to export.
type BookReader interface {
	ListBooks(ctx context.Context) ([]entities.BookRow, error)
}

type ExportResult struct {
	BooksExported  int    `json:"books_exported"`
	ReviewsWritten int    `json:"reviews_written"`
	Path           string `json:"path,omitempty"`
}
