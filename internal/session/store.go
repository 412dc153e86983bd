// Package session provides an in-memory store of login sessions keyed by
// opaque tokens.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session associates a token with an authenticated user until it expires.
type Session struct {
	// Token is the opaque session identifier handed to the client.
	Token string
	// UserID is the id of the authenticated user.
	UserID int64
	// ExpiresAt is the instant after which the session is invalid.
	ExpiresAt time.Time
}

// Store holds active sessions in memory. The zero value is not usable;
// construct with NewStore.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
}

// NewStore creates a Store whose sessions live for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

// Create registers a new session for userID and returns its token.
func (s *Store) Create(userID int64) Session {
	sess := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// Resolve returns the user id for a token. Expired or unknown tokens
// report ok=false; expired tokens are removed on the way out.
func (s *Store) Resolve(token string) (userID int64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, found := s.sessions[token]
	if !found {
		return 0, false
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return 0, false
	}
	return sess.UserID, true
}

// Revoke removes the session for token. Revoking an unknown token is a no-op.
func (s *Store) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// sweep removes all expired sessions and returns how many were evicted.
func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}
