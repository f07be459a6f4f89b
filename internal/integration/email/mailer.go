// Package email delivers the welcome e-mail through Resend.
package email

import (
	"context"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// Mailer writes welcome e-mails to the outbox; the Worker sends them.
type Mailer struct {
	outbox adapter.WelcomeOutbox
}

// NewMailer creates a Mailer.
func NewMailer(outbox adapter.WelcomeOutbox) *Mailer {
	return &Mailer{outbox: outbox}
}

// Welcome schedules the welcome e-mail of a newly registered user.
func (m *Mailer) Welcome(ctx context.Context, user *entity.User) error {
	return m.outbox.Enqueue(ctx, entity.NewWelcomeEmail(user))
}

var _ adapter.WelcomeMailer = (*Mailer)(nil)
