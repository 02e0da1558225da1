package http

import (
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/sessions"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. Optional dependencies are left nil to
// switch their routes or middleware off.
type RouterConfig struct {
	// Core dependencies
	Store    BookStore
	Stats    StatsReader
	Database Pinger

	// Audit log (optional)
	Auditor     AuditLogger
	AuditEvents AuditEventReader
	History     BookHistoryReader

	// Flash messages (optional)
	Sessions *sessions.Manager

	// Security
	CSRFSecret    []byte
	SecureCookies bool
	ReadOnly      *readonly.Middleware

	// Task queue (optional)
	TaskQueue  TaskQueue
	TaskConfig tasks.Config

	// UI paths. An empty TemplatesPath uses the embedded templates and a
	// missing StaticPath directory disables /static.
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
