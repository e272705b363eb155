package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by SessionRepository.Save for an id that is
// not stored.
var ErrSessionNotFound = errors.New("session not found")

// Session is one interactive calculator: a single food being described field
// by field.
type Session struct {
	ID        string
	Inputs    Inputs
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionRepository is the port for session storage. Get returns nil, nil
// when the id is unknown. Save only updates existing sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
