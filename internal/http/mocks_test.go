package http

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/sessions"
)

// mockBookStore keeps books in memory. Setting err makes every call fail.
type mockBookStore struct {
	mu     sync.Mutex
	rows   map[uint]entities.BookRow
	nextID uint
	err    error

	lastSearchTerm  string
	lastSearchOrder books.SortOrder
	deleted         []uint
}

func newMockBookStore(rows ...entities.BookRow) *mockBookStore {
	m := &mockBookStore{rows: make(map[uint]entities.BookRow), nextID: 1}
	for _, row := range rows {
		m.rows[row.BookID] = row
		if row.BookID >= m.nextID {
			m.nextID = row.BookID + 1
		}
	}
	return m
}

func (m *mockBookStore) sorted() []entities.BookRow {
	rows := make([]entities.BookRow, 0, len(m.rows))
	for _, row := range m.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Title < rows[j].Title })
	return rows
}

func (m *mockBookStore) ListBooks(ctx context.Context) ([]entities.BookRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(), nil
}

func (m *mockBookStore) SearchBooks(ctx context.Context, term string, order books.SortOrder) ([]entities.BookRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSearchTerm = term
	m.lastSearchOrder = order
	if m.err != nil {
		return nil, m.err
	}

	needle := strings.ToLower(term)
	rows := []entities.BookRow{}
	for _, row := range m.sorted() {
		haystack := strings.ToLower(row.Title + " " + row.FirstName + " " + row.LastName)
		if strings.Contains(haystack, needle) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *mockBookStore) GetBook(ctx context.Context, id uint) (*entities.BookRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, books.ErrBookNotFound
	}
	return &row, nil
}

func (m *mockBookStore) AddBookWithReview(ctx context.Context, nb books.NewBook) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	id := m.nextID
	m.nextID++
	review := nb.ReviewText
	m.rows[id] = entities.BookRow{BookID: id, Title: nb.Title, FirstName: nb.FirstName, LastName: nb.LastName, ReviewText: &review}
	return id, nil
}

func (m *mockBookStore) UpdateBook(ctx context.Context, id uint, u books.BookUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[id]; !ok {
		return books.ErrBookNotFound
	}
	review := u.ReviewText
	m.rows[id] = entities.BookRow{BookID: id, Title: u.Title, FirstName: u.FirstName, LastName: u.LastName, ReviewText: &review}
	return nil
}

func (m *mockBookStore) DeleteBook(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	delete(m.rows, id)
	return nil
}

func (m *mockBookStore) Stats(ctx context.Context) (books.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return books.Stats{}, m.err
	}
	return books.Stats{Books: int64(len(m.rows)), Authors: int64(len(m.rows)), Reviews: int64(len(m.rows))}, nil
}

type auditCall struct {
	Action string
	BookID uint
	Title  string
	Err    error
	Req    audit.RequestInfo
}

type mockAuditLogger struct {
	calls []auditCall
}

func (m *mockAuditLogger) LogCreate(req audit.RequestInfo, bookID uint, title string, err error) {
	m.calls = append(m.calls, auditCall{Action: "create", BookID: bookID, Title: title, Err: err, Req: req})
}

func (m *mockAuditLogger) LogUpdate(req audit.RequestInfo, bookID uint, title string, err error) {
	m.calls = append(m.calls, auditCall{Action: "update", BookID: bookID, Title: title, Err: err, Req: req})
}

func (m *mockAuditLogger) LogDelete(req audit.RequestInfo, bookID uint, err error) {
	m.calls = append(m.calls, auditCall{Action: "delete", BookID: bookID, Err: err, Req: req})
}

// mockFlashStore holds one pending flash, ignoring the request context.
type mockFlashStore struct {
	pending *sessions.Flash
}

func (m *mockFlashStore) PutFlash(ctx context.Context, kind sessions.FlashKind, message string) {
	m.pending = &sessions.Flash{Kind: kind, Message: message}
}

func (m *mockFlashStore) PopFlash(ctx context.Context) *sessions.Flash {
	flash := m.pending
	m.pending = nil
	return flash
}

var errStoreDown = errors.New("store unavailable")
