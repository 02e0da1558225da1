package audit

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	t.Cleanup(func() {
		svc.Wait()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return svc, db
}

var testRequest = RequestInfo{RequestID: "req-1", IPAddress: "192.168.1.1", UserAgent: "Mozilla/5.0"}

func TestService_LogAsync(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "book_create",
		Description: "Test create event",
		Status:      entities.AuditStatusSuccess,
	}

	svc.LogAsync(event)
	svc.Wait()

	var saved entities.AuditEvent
	err := db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "book_create", saved.Action)
}

func TestService_LogCreate(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful create", func(t *testing.T) {
		svc.LogCreate(testRequest, 7, "Dune", nil)
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ? AND status = ?", "book_create", entities.AuditStatusSuccess).First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditEventCreate, event.EventType)
		assert.Equal(t, "Added book: Dune", event.Description)
		assert.Equal(t, "req-1", event.RequestID)
		assert.Equal(t, "192.168.1.1", event.IPAddress)
		require.NotNil(t, event.EntityID)
		assert.Equal(t, uint(7), *event.EntityID)
	})

	t.Run("failed create", func(t *testing.T) {
		svc.LogCreate(testRequest, 0, "Broken", errors.New("disk full"))
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ? AND status = ?", "book_create", entities.AuditStatusFailed).First(&event).Error
		require.NoError(t, err)
		assert.Nil(t, event.EntityID)
		assert.Contains(t, event.ErrorMsg, "disk full")
	})
}

func TestService_LogUpdateAndDelete(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogUpdate(testRequest, 42, "Emma", nil)
	svc.LogDelete(testRequest, 42, nil)
	svc.Wait()

	history, err := svc.GetBookHistory(42)
	require.NoError(t, err)
	require.Len(t, history, 2)

	var deleted entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "book_delete").First(&deleted).Error)
	assert.Equal(t, entities.AuditEventDelete, deleted.EventType)
	assert.Equal(t, "book", deleted.EntityType)
}

func TestService_LogMaintenance(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogMaintenance("cleanup_orphan_authors", "Removed orphan authors", 3, nil)
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "cleanup_orphan_authors").First(&event).Error)
	assert.Equal(t, entities.AuditEventMaintenance, event.EventType)
	assert.JSONEq(t, `{"removed":3}`, event.Metadata)
}

func TestService_LongUserAgentIsTruncated(t *testing.T) {
	svc, db := setupTestService(t)

	req := testRequest
	req.UserAgent = strings.Repeat("x", 800)
	svc.LogCreate(req, 1, "Dune", nil)
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.First(&event).Error)
	assert.Len(t, event.UserAgent, maxFieldLen)
}

func TestService_GetEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	for i := 0; i < 5; i++ {
		svc.LogAsync(&entities.AuditEvent{
			EventType: entities.AuditEventUpdate,
			Action:    "test",
			Status:    entities.AuditStatusSuccess,
		})
	}
	svc.Wait()

	events, total, err := svc.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, events, 5)

	byType, total, err := svc.GetEventsByType(entities.AuditEventDelete, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, byType)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)

	oldEvent := &entities.AuditEvent{
		EventType: entities.AuditEventCreate,
		Action:    "old",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(oldEvent).Error)

	newEvent := &entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "new",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(newEvent).Error)

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []entities.AuditEvent
	db.Find(&remaining)
	assert.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Action)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a very long string", 10, "this is..."},
		{"", 5, ""},
		{"aééé", 5, "a..."},
		{"aééé", 6, "aé..."},
	}

	for _, tc := range tests {
		result := truncate(tc.input, tc.maxLen)
		assert.Equal(t, tc.expected, result)
		assert.True(t, utf8.ValidString(result))
	}
}

func TestService_LongTitleKeepsValidUTF8(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogCreate(testRequest, 1, strings.Repeat("é", 300), nil)
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.First(&event).Error)
	assert.True(t, utf8.ValidString(event.Description))
	assert.LessOrEqual(t, len(event.Description), maxFieldLen)
	assert.True(t, strings.HasSuffix(event.Description, "..."))
}
