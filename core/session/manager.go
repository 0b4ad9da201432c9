package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/dmitrymomot/yarf/core/cookie"
	"github.com/dmitrymomot/yarf/core/logger"
)

// Session is the per-request view of a stored record.
type Session struct {
	// ID is the id the record is stored under.
	ID string
	// Data is the handler-mutable session map.
	Data map[string]any
	// Created is true when the store created a new record for this request.
	Created bool
	// SetCookie is the serialized Set-Cookie value to send, empty when the
	// client already holds the right id.
	SetCookie string
}

// Manager runs the session round trip around a request: resolve before the
// action runs, persist before response headers are sent.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	cookieOpts cookie.Options
	signer     *cookie.Signer
	now        func() time.Time
	logger     *slog.Logger
}

// NewManager creates a manager. A nil store is accepted so that a
// misconfiguration surfaces per request as ErrStoreUninitialized.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		cookieName: DefaultCookieName,
		ttl:        DefaultTTL,
		cookieOpts: cookie.DefaultOptions(),
		now:        time.Now,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cookieOpts.MaxAge == 0 {
		m.cookieOpts.MaxAge = int(m.ttl / time.Second)
	}
	return m
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// TTL returns the idle lifetime of sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Resolve fetches or creates the session for the incoming cookies. A missing,
// tampered or malformed id is treated as no id at all.
func (m *Manager) Resolve(ctx context.Context, cookies map[string]string) (*Session, error) {
	if m.store == nil {
		return nil, ErrStoreUninitialized
	}

	presented := m.presentedID(cookies)

	rec, err := m.store.FetchOrCreate(ctx, presented, m.now())
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: %w", ErrStore, err)
	}

	sess := &Session{
		ID:      rec.ID,
		Data:    make(map[string]any, len(rec.Data)),
		Created: rec.ID != presented,
	}
	maps.Copy(sess.Data, rec.Data)

	if sess.Created {
		value := rec.ID
		if m.signer != nil {
			value = m.signer.Sign(rec.ID)
		}
		header, err := cookie.Serialize(m.cookieName, value, m.cookieOpts)
		if err != nil {
			return nil, fmt.Errorf("session: serialize cookie: %w", err)
		}
		sess.SetCookie = header
		m.logger.DebugContext(ctx, "session created", logger.SessionID(rec.ID))
	}

	return sess, nil
}

// Persist writes the session data back to the store.
func (m *Manager) Persist(ctx context.Context, sess *Session) error {
	if m.store == nil {
		return ErrStoreUninitialized
	}
	if sess == nil {
		return nil
	}

	rec := Record{
		ID:           sess.ID,
		LastAccessed: m.now(),
		Data:         sess.Data,
	}
	if rec.Data == nil {
		rec.Data = map[string]any{}
	}

	if err := m.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("%w: save: %w", ErrStore, err)
	}
	return nil
}

func (m *Manager) presentedID(cookies map[string]string) string {
	raw, ok := cookies[m.cookieName]
	if !ok || raw == "" {
		return ""
	}

	id := raw
	if m.signer != nil {
		v, err := m.signer.Verify(raw)
		if err != nil {
			m.logger.Warn("rejected session cookie", logger.Error(err))
			return ""
		}
		id = v
	}

	if !ValidID(id) {
		return ""
	}
	return id
}
