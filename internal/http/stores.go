package http

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/sessions"
)

// BookReader provides read access to the reading log.
type BookReader interface {
	ListBooks(ctx context.Context) ([]entities.BookRow, error)
	SearchBooks(ctx context.Context, term string, order books.SortOrder) ([]entities.BookRow, error)
	GetBook(ctx context.Context, id uint) (*entities.BookRow, error)
}

// BookStore is everything the form handlers need. *books.Repository
// satisfies it; tests use an in-memory mock.
type BookStore interface {
	BookReader
	AddBookWithReview(ctx context.Context, nb books.NewBook) (uint, error)
	UpdateBook(ctx context.Context, id uint, u books.BookUpdate) error
	DeleteBook(ctx context.Context, id uint) error
}

// StatsReader provides row counts for the API.
type StatsReader interface {
	Stats(ctx context.Context) (books.Stats, error)
}

// AuditLogger records book mutations. A nil AuditLogger disables auditing.
type AuditLogger interface {
	LogCreate(req audit.RequestInfo, bookID uint, title string, err error)
	LogUpdate(req audit.RequestInfo, bookID uint, title string, err error)
	LogDelete(req audit.RequestInfo, bookID uint, err error)
}

// FlashStore carries a message across the post-redirect-get cycle.
type FlashStore interface {
	PutFlash(ctx context.Context, kind sessions.FlashKind, message string)
	PopFlash(ctx context.Context) *sessions.Flash
}
