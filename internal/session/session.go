// Package session holds the authenticated credential and persists it between
// runs.
package session

import (
	"sync"
	"time"

	"github.com/Veraticus/coinpurse/internal/model"
)

// Session is the credential and profile returned by login or registration.
type Session struct {
	SavedAt time.Time
	Token   string
	User    model.User
}

// Holder is the current in-memory session shared with the API client. The
// client only reads it; login and logout replace it.
type Holder struct {
	current *Session
	mu      sync.RWMutex
}

// NewHolder creates a holder, optionally seeded with a session.
func NewHolder(s *Session) *Holder {
	return &Holder{current: s}
}

// BearerToken returns the token to attach to authenticated requests.
func (h *Holder) BearerToken() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil || h.current.Token == "" {
		return "", false
	}
	return h.current.Token, true
}

// Current returns a copy of the held session.
func (h *Holder) Current() (Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return Session{}, false
	}
	return *h.current, true
}

// Set replaces the held session.
func (h *Holder) Set(s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = &s
}

// Clear forgets the held session.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
}

// Static is a fixed credential, mostly for tests.
type Static string

// BearerToken returns the static token.
func (s Static) BearerToken() (string, bool) {
	return string(s), s != ""
}
