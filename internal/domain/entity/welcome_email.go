package entity

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryState is where a welcome e-mail is in its delivery.
type DeliveryState string

const (
	DeliveryPending   DeliveryState = "pending"
	DeliverySent      DeliveryState = "sent"
	DeliveryAbandoned DeliveryState = "abandoned"
)

// MaxWelcomeAttempts bounds how often delivery of one welcome e-mail is tried.
const MaxWelcomeAttempts = 3

// welcomeBackoff is the wait after the n-th failed attempt.
var welcomeBackoff = [...]time.Duration{time.Minute, 5 * time.Minute}

// WelcomeEmail is the message owed to a newly registered user. It is written
// next to the registration and delivered in the background.
type WelcomeEmail struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Recipient     string
	Name          string
	State         DeliveryState
	Attempts      int
	LastError     string
	ProviderID    string
	NextAttemptAt time.Time
	CreatedAt     time.Time
	DeliveredAt   *time.Time
}

// NewWelcomeEmail returns the pending welcome e-mail for user, due now.
func NewWelcomeEmail(user *User) *WelcomeEmail {
	now := time.Now().UTC()
	return &WelcomeEmail{
		ID:            uuid.New(),
		UserID:        user.ID,
		Recipient:     user.Email,
		Name:          user.Name,
		State:         DeliveryPending,
		NextAttemptAt: now,
		CreatedAt:     now,
	}
}

// Due reports whether the message should be attempted at the given time.
func (w *WelcomeEmail) Due(at time.Time) bool {
	return w.State == DeliveryPending && !w.NextAttemptAt.After(at)
}

// Delivered records a successful hand-off to the provider.
func (w *WelcomeEmail) Delivered(providerID string, at time.Time) {
	w.Attempts++
	w.State = DeliverySent
	w.ProviderID = providerID
	w.LastError = ""
	at = at.UTC()
	w.DeliveredAt = &at
}

// Failed records a failed attempt. The message is abandoned on a permanent
// failure or when attempts run out; otherwise it is rescheduled. It reports
// whether another attempt will be made.
func (w *WelcomeEmail) Failed(err error, permanent bool, at time.Time) bool {
	w.Attempts++
	w.LastError = err.Error()

	if permanent || w.Attempts >= MaxWelcomeAttempts {
		w.State = DeliveryAbandoned
		return false
	}

	wait := welcomeBackoff[len(welcomeBackoff)-1]
	if w.Attempts-1 < len(welcomeBackoff) {
		wait = welcomeBackoff[w.Attempts-1]
	}
	w.NextAttemptAt = at.UTC().Add(wait)
	return true
}
