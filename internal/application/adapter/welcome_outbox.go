package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// WelcomeOutbox stores welcome e-mails until they are delivered.
type WelcomeOutbox interface {
	// Enqueue stores a new pending message.
	Enqueue(ctx context.Context, msg *entity.WelcomeEmail) error

	// Claim returns up to limit messages due at now and hides them from other
	// claimers until now+lease, so each attempt is made by one worker.
	Claim(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*entity.WelcomeEmail, error)

	// Save records the outcome of an attempt.
	Save(ctx context.Context, msg *entity.WelcomeEmail) error

	// Get returns one message.
	Get(ctx context.Context, id uuid.UUID) (*entity.WelcomeEmail, error)

	// PurgeDelivered removes messages delivered before the cutoff.
	PurgeDelivered(ctx context.Context, before time.Time) (int64, error)
}
