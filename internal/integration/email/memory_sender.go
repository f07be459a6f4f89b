package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// MemorySender keeps e-mails instead of sending them. It is used when no
// Resend key is configured, and by tests.
type MemorySender struct {
	mu        sync.Mutex
	sent      []adapter.SendEmailInput
	failWith  error
	permanent bool
}

// NewMemorySender creates an empty MemorySender.
func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

// Send records input, or fails as configured by FailWith.
func (m *MemorySender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.permanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "send failed", m.failWith)
	}

	m.sent = append(m.sent, input)
	return &adapter.SendEmailResult{ProviderID: fmt.Sprintf("memory-%d", len(m.sent))}, nil
}

// FailWith makes every later Send fail with err. A nil err restores delivery.
func (m *MemorySender) FailWith(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
	m.permanent = permanent
}

// Sent returns a copy of the e-mails kept so far.
func (m *MemorySender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), m.sent...)
}

var _ adapter.EmailSender = (*MemorySender)(nil)
