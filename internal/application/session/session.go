// Package session holds the per-login state of a user: identity, the
// in-memory transaction set and the displayed dashboard background.
//
// A Session is created when the user logs in or registers, or lazily on
// the first authenticated request after a restart, and discarded at logout
// or after being idle. Sessions of the same user share one transaction set
// and one background value.
package session

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/optimistic"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// Session is the explicit context passed to every operation that needs identity.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	// Ledger mirrors the user's transactions; mutations are pessimistic.
	Ledger *Ledger
	// Background is the displayed background; updates are optimistic.
	Background *optimistic.Value[entity.DashboardBackground]

	account  *account
	lastSeen atomic.Int64
}

func newSession(id uuid.UUID, a *account) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:         id,
		StartedAt:  now,
		Ledger:     a.ledger,
		Background: a.background,
		account:    a,
	}
	s.touch(now)
	return s
}

// User returns a copy of the session's user.
func (s *Session) User() entity.User {
	return s.account.getUser()
}

// UserID returns the id of the session's user.
func (s *Session) UserID() uuid.UUID {
	return s.account.id
}

// BackgroundError returns the last failed read of the stored background, or
// nil when the displayed background is in sync with the store.
func (s *Session) BackgroundError() error {
	return s.account.backgroundError()
}

// MarkBackgroundSynced records that the displayed background was just saved.
func (s *Session) MarkBackgroundSynced() {
	s.account.setBackgroundError(nil)
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}
