package interfaces

// Compile-time interface implementation checks.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/sessions"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.StatsReader = (*books.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ exporters.BookReader = (*books.Repository)(nil)
var _ tasks.OrphanAuthorsCleaner = (*books.Repository)(nil)

// =============================================================================
// Audit Log
// =============================================================================

var _ http.AuditLogger = (*audit.Service)(nil)
var _ http.AuditEventReader = (*audit.Service)(nil)
var _ http.BookHistoryReader = (*audit.Service)(nil)
var _ tasks.Reporter = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Sessions and Background Work
// =============================================================================

var _ http.FlashStore = (*sessions.Manager)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
