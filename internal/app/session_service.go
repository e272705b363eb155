package app

import (
	"context"
	"errors"
	"time"

	"fatrobin/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = domain.ErrSessionNotFound
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 12 * time.Hour

// SessionService manages interactive calculator sessions, where the user
// fills in one field at a time.
type SessionService struct {
	repo   domain.SessionRepository
	dosing *DosingService
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a SessionService backed by the given repository.
func NewSessionService(repo domain.SessionRepository, dosing *DosingService, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{repo: repo, dosing: dosing, ttl: ttl, now: time.Now}
}

// WithClock replaces the service clock. It is meant for tests.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

// Create starts an empty session.
func (s *SessionService) Create(ctx context.Context) (*domain.Session, error) {
	now := s.now()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns a live session and pushes its expiry forward.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess, s.touch(ctx, sess)
}

// SetField applies one input change. A nil value clears the field.
func (s *SessionService) SetField(ctx context.Context, id string, field domain.Field, value *float64) (*domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sess.Inputs.Set(field, value); err != nil {
		return nil, err
	}
	return sess, s.touch(ctx, sess)
}

// Clear resets every field of the session.
func (s *SessionService) Clear(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Inputs.Clear()
	return sess, s.touch(ctx, sess)
}

// Report evaluates the session's current inputs.
func (s *SessionService) Report(ctx context.Context, id string, potencies []domain.Potency) (*Report, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.dosing.Report(sess.Inputs, potencies)
}

// End deletes the session.
func (s *SessionService) End(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Sweep removes every expired session and returns how many went.
func (s *SessionService) Sweep(ctx context.Context) (int, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}

func (s *SessionService) load(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if sess.Expired(s.now()) {
		_ = s.repo.Delete(ctx, id)
		return nil, ErrSessionExpired
	}
	return sess, nil
}

func (s *SessionService) touch(ctx context.Context, sess *domain.Session) error {
	now := s.now()
	sess.UpdatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	return s.repo.Save(ctx, sess)
}
