package audit

import (
	"encoding/json"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const maxFieldLen = 500

// RequestInfo identifies the HTTP request that triggered an event.
type RequestInfo struct {
	RequestID string
	IPAddress string
	UserAgent string
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every pending LogAsync call has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogCreate records that a book was added.
func (s *Service) LogCreate(req RequestInfo, bookID uint, title string, err error) {
	event := s.bookEvent(req, entities.AuditEventCreate, "book_create", "Added book: "+title, bookID, err)
	s.LogAsync(event)
}

// LogUpdate records that a book was edited.
func (s *Service) LogUpdate(req RequestInfo, bookID uint, title string, err error) {
	event := s.bookEvent(req, entities.AuditEventUpdate, "book_update", "Updated book: "+title, bookID, err)
	s.LogAsync(event)
}

// LogDelete records that a book was removed.
func (s *Service) LogDelete(req RequestInfo, bookID uint, err error) {
	event := s.bookEvent(req, entities.AuditEventDelete, "book_delete", "Deleted book", bookID, err)
	s.LogAsync(event)
}

// LogMaintenance records the outcome of a background cleanup job.
func (s *Service) LogMaintenance(action, description string, removed int64, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      action,
		Description: truncate(description, maxFieldLen),
		Status:      entities.AuditStatusSuccess,
	}

	if mdBytes, e := json.Marshal(map[string]any{"removed": removed}); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxFieldLen)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetBookHistory returns every event recorded for one book.
func (s *Service) GetBookHistory(bookID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity("book", bookID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func (s *Service) bookEvent(req RequestInfo, eventType entities.AuditEventType, action, description string, bookID uint, err error) *entities.AuditEvent {
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      action,
		Description: truncate(description, maxFieldLen),
		EntityType:  "book",
		RequestID:   req.RequestID,
		IPAddress:   req.IPAddress,
		UserAgent:   truncate(req.UserAgent, maxFieldLen),
		Status:      entities.AuditStatusSuccess,
	}
	if bookID != 0 {
		id := bookID
		event.EntityID = &id
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxFieldLen)
	}
	return event
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
