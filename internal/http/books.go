package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookHistoryReader returns the audit trail of a single book.
type BookHistoryReader interface {
	GetBookHistory(bookID uint) ([]entities.AuditEvent, error)
}

type BooksController struct {
	reader  BookReader
	stats   StatsReader
	history BookHistoryReader
}

// NewBooksController creates the read-only JSON API over the reading log.
// stats and history may be nil; their endpoints then answer 404.
func NewBooksController(reader BookReader, stats StatsReader, history BookHistoryReader) *BooksController {
	return &BooksController{
		reader:  reader,
		stats:   stats,
		history: history,
	}
}

// GetBooks handles GET /api/books?q=&sort=
func (controller *BooksController) GetBooks(c *gin.Context) {
	term := c.Query("q")
	sortKey := c.Query("sort")

	var rows []entities.BookRow
	var err error
	if term == "" && sortKey == "" {
		rows, err = controller.reader.ListBooks(c.Request.Context())
	} else {
		rows, err = controller.reader.SearchBooks(c.Request.Context(), term, books.ParseSortOrder(sortKey))
	}
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"books": rows, "count": len(rows)})
}

// GetBook handles GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	row, err := controller.reader.GetBook(c.Request.Context(), id)
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}

	c.IndentedJSON(http.StatusOK, row)
}

// GetBookStats handles GET /api/books/stats
func (controller *BooksController) GetBookStats(c *gin.Context) {
	if controller.stats == nil {
		respondNotFound(c, "stats")
		return
	}

	stats, err := controller.stats.Stats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "book stats")
		return
	}

	c.IndentedJSON(http.StatusOK, stats)
}

// GetBookHistory handles GET /api/books/:id/history
func (controller *BooksController) GetBookHistory(c *gin.Context) {
	if controller.history == nil {
		respondNotFound(c, "history")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	events, err := controller.history.GetBookHistory(id)
	if err != nil {
		respondInternalError(c, err, "book history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"book_id": id, "events": events})
}
