// Package memory implements an in-memory session store.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"fatrobin/internal/domain"
)

// ErrDuplicateSession is returned when Create is given an id already in use.
var ErrDuplicateSession = errors.New("session already exists")

// DB keeps calculator sessions in memory. Nothing survives a restart.
type DB struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

// New creates an empty store.
func New() *DB {
	return &DB{
		sessions: make(map[string]domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.SessionRepository = (*DB)(nil)

// Create stores a new session.
func (db *DB) Create(ctx context.Context, s *domain.Session) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.sessions[s.ID]; ok {
		return ErrDuplicateSession
	}
	db.sessions[s.ID] = *s
	return nil
}

// Get returns a copy of the session, or nil if the id is unknown.
func (db *DB) Get(ctx context.Context, id string) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Save overwrites a stored session. It returns domain.ErrSessionNotFound for
// an unknown id, so a session deleted mid-update stays deleted.
func (db *DB) Save(ctx context.Context, s *domain.Session) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.sessions[s.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	db.sessions[s.ID] = *s
	return nil
}

// Delete removes a session. Unknown ids are ignored.
func (db *DB) Delete(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.sessions, id)
	return nil
}

// DeleteExpired removes every session expired at now.
func (db *DB) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := 0
	for id, s := range db.sessions {
		if s.Expired(now) {
			delete(db.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions.
func (db *DB) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.sessions)
}
