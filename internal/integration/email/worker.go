package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/email/templates"
)

// purgeEvery is how often delivered messages past retention are removed.
const purgeEvery = 24 * time.Hour

// WorkerConfig tunes the delivery loop.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// Lease is how long a claimed message is hidden from other workers.
	Lease time.Duration
	// Retention keeps delivered messages this long. Zero keeps them forever.
	Retention    time.Duration
	DashboardURL string
}

// DefaultWorkerConfig returns the settings used when none are configured.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		Lease:        2 * time.Minute,
		Retention:    30 * 24 * time.Hour,
	}
}

// Worker delivers due welcome e-mails from the outbox.
type Worker struct {
	outbox adapter.WelcomeOutbox
	sender adapter.EmailSender
	cfg    WorkerConfig
	now    func() time.Time

	lastPurge time.Time
}

// NewWorker creates a Worker.
func NewWorker(outbox adapter.WelcomeOutbox, sender adapter.EmailSender, cfg WorkerConfig) *Worker {
	defaults := DefaultWorkerConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.Lease <= 0 {
		cfg.Lease = defaults.Lease
	}
	return &Worker{
		outbox: outbox,
		sender: sender,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Start delivers on every poll until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Welcome email worker started",
		"poll_interval", w.cfg.PollInterval,
		"batch_size", w.cfg.BatchSize,
	)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		w.Drain(ctx)
		w.purge(ctx)

		select {
		case <-ctx.Done():
			slog.Info("Welcome email worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// Drain attempts every message due now, one batch at a time, and returns how
// many were delivered.
func (w *Worker) Drain(ctx context.Context) int {
	delivered := 0
	for ctx.Err() == nil {
		batch, err := w.outbox.Claim(ctx, w.now(), w.cfg.Lease, w.cfg.BatchSize)
		if err != nil {
			slog.Error("Failed to claim welcome emails", "error", err)
			return delivered
		}
		for _, msg := range batch {
			if w.attempt(ctx, msg) {
				delivered++
			}
		}
		if len(batch) < w.cfg.BatchSize {
			return delivered
		}
	}
	return delivered
}

func (w *Worker) attempt(ctx context.Context, msg *entity.WelcomeEmail) bool {
	logger := slog.With("welcome_id", msg.ID, "userID", msg.UserID)

	result, err := w.send(ctx, msg)
	if err != nil {
		retry := msg.Failed(err, isPermanent(err), w.now())
		if retry {
			logger.Info("Welcome email will be retried", "attempts", msg.Attempts, "next_attempt_at", msg.NextAttemptAt, "error", err)
		} else {
			logger.Warn("Welcome email abandoned", "attempts", msg.Attempts, "error", err)
		}
	} else {
		msg.Delivered(result.ProviderID, w.now())
		logger.Info("Welcome email sent", "provider_id", result.ProviderID)
	}

	if err := w.outbox.Save(ctx, msg); err != nil {
		logger.Error("Failed to record welcome email attempt", "error", err)
	}
	return msg.State == entity.DeliverySent
}

func (w *Worker) send(ctx context.Context, msg *entity.WelcomeEmail) (*adapter.SendEmailResult, error) {
	rendered, err := templates.Welcome{Name: msg.Name, DashboardURL: w.cfg.DashboardURL}.Render()
	if err != nil {
		return nil, domainerror.NewEmailError(domainerror.ErrCodeTemplateRenderFailed, "failed to render welcome email", err)
	}

	return w.sender.Send(ctx, adapter.SendEmailInput{
		To:      msg.Recipient,
		Name:    msg.Name,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
}

// purge runs at most once per purgeEvery.
func (w *Worker) purge(ctx context.Context) {
	now := w.now()
	if w.cfg.Retention <= 0 || now.Sub(w.lastPurge) < purgeEvery {
		return
	}
	w.lastPurge = now

	removed, err := w.outbox.PurgeDelivered(ctx, now.Add(-w.cfg.Retention))
	if err != nil {
		slog.Error("Failed to purge delivered welcome emails", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("Purged delivered welcome emails", "count", removed)
	}
}

// isPermanent reports failures a retry cannot fix.
func isPermanent(err error) bool {
	var emailErr *domainerror.EmailError
	if !errors.As(err, &emailErr) {
		return false
	}
	return emailErr.Code == domainerror.ErrCodePermanentEmailFailure ||
		emailErr.Code == domainerror.ErrCodeTemplateRenderFailed
}
