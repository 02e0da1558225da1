package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type mockHistoryReader struct {
	events []entities.AuditEvent
	err    error
	asked  uint
}

func (m *mockHistoryReader) GetBookHistory(bookID uint) ([]entities.AuditEvent, error) {
	m.asked = bookID
	return m.events, m.err
}

func setupBooksRouter(store *mockBookStore, history BookHistoryReader) *gin.Engine {
	controller := NewBooksController(store, store, history)
	router := gin.New()
	router.GET("/api/books", controller.GetBooks)
	router.GET("/api/books/stats", controller.GetBookStats)
	router.GET("/api/books/:id", controller.GetBook)
	router.GET("/api/books/:id/history", controller.GetBookHistory)
	return router
}

type booksListResponse struct {
	Books []entities.BookRow `json:"books"`
	Count int                `json:"count"`
}

func TestBooksController_GetBooks(t *testing.T) {
	store := newMockBookStore(duneRow(), entities.BookRow{BookID: 2, Title: "Emma", FirstName: "Jane", LastName: "Austen"})
	router := setupBooksRouter(store, nil)

	w := get(router, "/api/books")

	require.Equal(t, http.StatusOK, w.Code)
	var response booksListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, []string{"Dune", "Emma"}, lo.Map(response.Books, func(r entities.BookRow, _ int) string { return r.Title }))
	assert.Empty(t, store.lastSearchTerm)
}

func TestBooksController_GetBooks_Search(t *testing.T) {
	store := newMockBookStore(duneRow(), entities.BookRow{BookID: 2, Title: "Emma", FirstName: "Jane", LastName: "Austen"})
	router := setupBooksRouter(store, nil)

	w := get(router, "/api/books?q=austen&sort=titel_desc")

	require.Equal(t, http.StatusOK, w.Code)
	var response booksListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, "Emma", response.Books[0].Title)
	assert.Equal(t, "austen", store.lastSearchTerm)
	assert.Equal(t, books.SortTitleDesc, store.lastSearchOrder)
}

func TestBooksController_GetBooks_StoreError(t *testing.T) {
	store := newMockBookStore()
	store.err = errStoreDown
	router := setupBooksRouter(store, nil)

	w := get(router, "/api/books")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestBooksController_GetBook(t *testing.T) {
	router := setupBooksRouter(newMockBookStore(duneRow()), nil)

	w := get(router, "/api/books/1")
	require.Equal(t, http.StatusOK, w.Code)

	var row entities.BookRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
	assert.Equal(t, duneRow(), row)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/books/99").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/books/abc").Code)
}

func TestBooksController_GetBookStats(t *testing.T) {
	router := setupBooksRouter(newMockBookStore(duneRow()), nil)

	w := get(router, "/api/books/stats")

	require.Equal(t, http.StatusOK, w.Code)
	var stats books.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Books)
}

func TestBooksController_GetBookHistory(t *testing.T) {
	t.Run("returns events", func(t *testing.T) {
		history := &mockHistoryReader{events: []entities.AuditEvent{
			{ID: 1, EventType: entities.AuditEventCreate, Action: "book_create", Status: entities.AuditStatusSuccess},
		}}
		router := setupBooksRouter(newMockBookStore(), history)

		w := get(router, "/api/books/7/history")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(7), history.asked)
		assert.Contains(t, w.Body.String(), "book_create")
	})

	t.Run("store error", func(t *testing.T) {
		router := setupBooksRouter(newMockBookStore(), &mockHistoryReader{err: errors.New("boom")})

		assert.Equal(t, http.StatusInternalServerError, get(router, "/api/books/7/history").Code)
	})

	t.Run("audit disabled", func(t *testing.T) {
		router := setupBooksRouter(newMockBookStore(), nil)

		assert.Equal(t, http.StatusNotFound, get(router, "/api/books/7/history").Code)
	})
}
