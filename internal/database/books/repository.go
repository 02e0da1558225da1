// Package books provides database operations for the reading log: books, their
// single author and their single review.
//
// Every book is created together with exactly one author, the link between
// them and one review. Updates resolve that author and review by id and refuse
// to guess when a book has been linked to several of them by hand.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	id, err := repo.AddBookWithReview(ctx, books.NewBook{Title: "Dune", ...})
//	rows, err := repo.SearchBooks(ctx, "herbert", books.SortTitleDesc)
package books

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const orphanAuthorCondition = "NOT EXISTS (SELECT 1 FROM boek_auteur WHERE boek_auteur.auteur_id = auteur.id)"

// Repository handles all book, author and review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NewBook carries the values submitted by the add-book form.
type NewBook struct {
	Title      string
	FirstName  string
	LastName   string
	ReviewText string
}

// BookUpdate carries the values submitted by the edit form.
type BookUpdate struct {
	Title      string
	FirstName  string
	LastName   string
	ReviewText string
}

// Stats holds row counts for the reading log.
type Stats struct {
	Books         int64 `json:"books"`
	Authors       int64 `json:"authors"`
	Reviews       int64 `json:"reviews"`
	OrphanAuthors int64 `json:"orphan_authors"`
}

// AddBookWithReview inserts the book, a new author, the link between them and
// the review in one transaction and returns the new book id.
func (r *Repository) AddBookWithReview(ctx context.Context, nb NewBook) (uint, error) {
	var bookID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book := entities.Book{Title: nb.Title}
		if err := tx.Create(&book).Error; err != nil {
			return fmt.Errorf("insert book: %w", err)
		}

		author := entities.Author{FirstName: nb.FirstName, LastName: nb.LastName}
		if err := tx.Create(&author).Error; err != nil {
			return fmt.Errorf("insert author: %w", err)
		}

		link := entities.BookAuthor{BookID: book.ID, AuthorID: author.ID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("link author: %w", err)
		}

		if err := createReview(tx, book.ID, nb.ReviewText); err != nil {
			return err
		}

		bookID = book.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bookID, nil
}

// ListBooks returns every book with its author and review, ordered by title.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.BookRow, error) {
	return r.queryRows(ctx, listQuery())
}

// SearchBooks returns the books whose title, author first name or author last
// name contains term (case-insensitive), in the requested order.
func (r *Repository) SearchBooks(ctx context.Context, term string, order SortOrder) ([]entities.BookRow, error) {
	return r.queryRows(ctx, searchQuery(term, order))
}

// GetBook returns a single book row or ErrBookNotFound.
func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.BookRow, error) {
	rows, err := r.queryRows(ctx, getQuery(id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrBookNotFound
	}
	return &rows[0], nil
}

// UpdateBook changes the title, the author's names and the review text of a
// book in one transaction. A book without a review gets one.
func (r *Repository) UpdateBook(ctx context.Context, id uint, u BookUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.Select("id").First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return fmt.Errorf("load book: %w", err)
		}

		if err := tx.Model(&entities.Book{}).Where("id = ?", id).Update("titel", u.Title).Error; err != nil {
			return fmt.Errorf("update book: %w", err)
		}

		if err := updateAuthor(tx, id, u.FirstName, u.LastName); err != nil {
			return err
		}

		return updateReview(tx, id, u.ReviewText)
	})
}

// DeleteBook removes the book, its review, its author and genre links, and
// any author that is no longer linked to a book. Deleting an unknown id is
// not an error.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var authorIDs []uint
		if err := tx.Model(&entities.BookAuthor{}).Where("boek_id = ?", id).Pluck("auteur_id", &authorIDs).Error; err != nil {
			return fmt.Errorf("load author links: %w", err)
		}

		if err := tx.Where("boek_id = ?", id).Delete(&entities.BookGenre{}).Error; err != nil {
			return fmt.Errorf("delete genre links: %w", err)
		}
		if err := tx.Where("boek_id = ?", id).Delete(&entities.BookAuthor{}).Error; err != nil {
			return fmt.Errorf("delete author links: %w", err)
		}
		if err := tx.Where("boek_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := tx.Delete(&entities.Book{}, id).Error; err != nil {
			return fmt.Errorf("delete book: %w", err)
		}

		if len(authorIDs) == 0 {
			return nil
		}
		err := tx.Where("id IN ?", authorIDs).Where(orphanAuthorCondition).Delete(&entities.Author{}).Error
		if err != nil {
			return fmt.Errorf("delete orphan authors: %w", err)
		}
		return nil
	})
}

// CountOrphanAuthors returns the number of authors not linked to any book.
func (r *Repository) CountOrphanAuthors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Where(orphanAuthorCondition).Count(&count).Error
	return count, err
}

// DeleteOrphanAuthors removes authors not linked to any book and returns how
// many were deleted.
func (r *Repository) DeleteOrphanAuthors(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where(orphanAuthorCondition).Delete(&entities.Author{})
	return result.RowsAffected, result.Error
}

// Stats returns row counts for books, authors and reviews.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	db := r.db.WithContext(ctx)

	if err := db.Model(&entities.Book{}).Count(&stats.Books).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&entities.Author{}).Count(&stats.Authors).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&entities.Review{}).Count(&stats.Reviews).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&entities.Author{}).Where(orphanAuthorCondition).Count(&stats.OrphanAuthors).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func (r *Repository) queryRows(ctx context.Context, q sq.SelectBuilder) ([]entities.BookRow, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []entities.BookRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []entities.BookRow{}
	}
	return rows, nil
}

func createReview(tx *gorm.DB, bookID uint, text string) error {
	review := entities.Review{BookID: bookID, Text: text}
	// Leave datum_review out so the column default stamps today's date.
	if err := tx.Omit("datum_review").Create(&review).Error; err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func updateAuthor(tx *gorm.DB, bookID uint, firstName, lastName string) error {
	var authorIDs []uint
	if err := tx.Model(&entities.BookAuthor{}).Where("boek_id = ?", bookID).Pluck("auteur_id", &authorIDs).Error; err != nil {
		return fmt.Errorf("load author links: %w", err)
	}

	switch len(authorIDs) {
	case 0:
		author := entities.Author{FirstName: firstName, LastName: lastName}
		if err := tx.Create(&author).Error; err != nil {
			return fmt.Errorf("insert author: %w", err)
		}
		if err := tx.Create(&entities.BookAuthor{BookID: bookID, AuthorID: author.ID}).Error; err != nil {
			return fmt.Errorf("link author: %w", err)
		}
		return nil
	case 1:
		err := tx.Model(&entities.Author{}).Where("id = ?", authorIDs[0]).Updates(map[string]any{
			"voornaam":   firstName,
			"achternaam": lastName,
		}).Error
		if err != nil {
			return fmt.Errorf("update author: %w", err)
		}
		return nil
	default:
		return ErrMultipleAuthors
	}
}

func updateReview(tx *gorm.DB, bookID uint, text string) error {
	var reviewIDs []uint
	if err := tx.Model(&entities.Review{}).Where("boek_id = ?", bookID).Pluck("id", &reviewIDs).Error; err != nil {
		return fmt.Errorf("load reviews: %w", err)
	}

	switch len(reviewIDs) {
	case 0:
		return createReview(tx, bookID, text)
	case 1:
		if err := tx.Model(&entities.Review{}).Where("id = ?", reviewIDs[0]).Update("reviewtekst", text).Error; err != nil {
			return fmt.Errorf("update review: %w", err)
		}
		return nil
	default:
		return ErrMultipleReviews
	}
}
