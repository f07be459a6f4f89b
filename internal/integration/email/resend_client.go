package email

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// rejectionHints mark Resend failures that a retry will not fix: a bad key, an
// unverified sender or a malformed message.
var rejectionHints = []string{
	"401", "403", "422",
	"api key", "unauthorized", "forbidden",
	"validation", "invalid", "not verified", "bad request",
}

// ResendClient sends e-mails through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates the client. An empty baseURL keeps the public
// Resend endpoint.
func NewResendClient(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendClient{
		client: client,
		from:   (&mail.Address{Name: fromName, Address: fromEmail}).String(),
	}, nil
}

// Send delivers one message. Failures are classified as permanent or
// temporary for the retry policy.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	to := input.To
	if input.Name != "" {
		to = (&mail.Address{Name: input.Name, Address: input.To}).String()
	}

	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		if rejected(err) {
			return nil, domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "resend rejected the email", err)
		}
		return nil, domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "resend unavailable", err)
	}

	return &adapter.SendEmailResult{ProviderID: resp.Id}, nil
}

func rejected(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, hint := range rejectionHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

var _ adapter.EmailSender = (*ResendClient)(nil)
