// Package session resolves the authenticated actor attached to a request.
// Login and logout belong to the external identity provider; this package
// only looks sessions up.
package session

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/v2"

	"github.com/editorial-backoffice/internal/config"
	"github.com/editorial-backoffice/internal/models"
)

// Session keys written by the identity callback, read here.
const (
	keyEmail    = "email"
	keyNickname = "nickname"
	keyStamped  = "connection_stamped"
)

// Store resolves the actor for a request context. The zero return means no
// active session.
type Store interface {
	Actor(ctx context.Context) (models.Actor, bool)

	// MarkConnected returns true exactly once per session, so callers can
	// stamp last_connection_at on session start rather than on every request.
	MarkConnected(ctx context.Context) bool
}

// Manager is the scs-backed Store, persisting sessions in Postgres alongside
// the rest of the data.
type Manager struct {
	scs *scs.SessionManager
}

// NewManager wires server-side sessions over the shared sql.DB.
func NewManager(db *sql.DB, cfg *config.SessionConfig) *Manager {
	sm := scs.New()
	sm.Store = postgresstore.New(db)
	sm.Lifetime = cfg.Lifetime
	sm.Cookie.Name = cfg.CookieName
	sm.Cookie.Secure = cfg.CookieSecure
	sm.Cookie.HttpOnly = true
	return &Manager{scs: sm}
}

// Wrap installs the session load/save middleware around an http.Handler.
func (m *Manager) Wrap(next http.Handler) http.Handler {
	return m.scs.LoadAndSave(next)
}

// Actor returns the identity stored in the active session, if any.
func (m *Manager) Actor(ctx context.Context) (models.Actor, bool) {
	email := m.scs.GetString(ctx, keyEmail)
	if email == "" {
		return models.Actor{}, false
	}
	return models.Actor{
		Email:    email,
		Nickname: m.scs.GetString(ctx, keyNickname),
	}, true
}

// MarkConnected flips the per-session stamp flag; true on first call.
func (m *Manager) MarkConnected(ctx context.Context) bool {
	if m.scs.GetBool(ctx, keyStamped) {
		return false
	}
	m.scs.Put(ctx, keyStamped, true)
	return true
}
