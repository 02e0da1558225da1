// Package sessions keeps short-lived per-browser state, currently the flash
// message shown after a form submission redirects back to a page.
package sessions

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookshelf/internal/config"
)

const (
	sessionKeyFlash     = "flash"
	sessionKeyFlashKind = "flash_kind"
)

// FlashKind selects how a flash message is styled.
type FlashKind string

const FlashSuccess FlashKind = "success"

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind    FlashKind
	Message string
}

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a session manager backed by the sessions table.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Sessions) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.Lifetime / 2

	sm.Cookie.Name = "bookshelf_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// PutFlash stores a message to be shown on the next rendered page.
func (m *Manager) PutFlash(ctx context.Context, kind FlashKind, message string) {
	m.Put(ctx, sessionKeyFlash, message)
	m.Put(ctx, sessionKeyFlashKind, string(kind))
}

// PopFlash returns and clears the pending flash message, if any.
func (m *Manager) PopFlash(ctx context.Context) *Flash {
	message := m.PopString(ctx, sessionKeyFlash)
	kind := m.PopString(ctx, sessionKeyFlashKind)
	if message == "" {
		return nil
	}
	if kind == "" {
		kind = string(FlashSuccess)
	}
	return &Flash{Kind: FlashKind(kind), Message: message}
}
