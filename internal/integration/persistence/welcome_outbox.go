package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/persistence/model"
)

// welcomeOutbox implements adapter.WelcomeOutbox on the welcome_emails table.
type welcomeOutbox struct {
	db *gorm.DB
}

// NewWelcomeOutbox creates the welcome e-mail outbox.
func NewWelcomeOutbox(db *gorm.DB) adapter.WelcomeOutbox {
	return &welcomeOutbox{db: db}
}

// Enqueue stores msg unless the user already has a welcome e-mail.
func (o *welcomeOutbox) Enqueue(ctx context.Context, msg *entity.WelcomeEmail) error {
	err := o.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(model.WelcomeEmailFromEntity(msg)).Error
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to store welcome email", err)
	}
	return nil
}

// Claim moves each due row's next attempt to the end of the lease. A row
// another worker claimed first is no longer due and is skipped.
func (o *welcomeOutbox) Claim(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*entity.WelcomeEmail, error) {
	now = now.UTC()

	var rows []model.WelcomeEmailModel
	err := o.db.WithContext(ctx).
		Where("state = ? AND next_attempt_at <= ?", entity.DeliveryPending, now).
		Order("next_attempt_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, outboxUnavailable(err)
	}

	leaseUntil := now.Add(lease)
	claimed := make([]*entity.WelcomeEmail, 0, len(rows))
	for i := range rows {
		result := o.db.WithContext(ctx).
			Model(&model.WelcomeEmailModel{}).
			Where("id = ? AND state = ? AND next_attempt_at <= ?", rows[i].ID, entity.DeliveryPending, now).
			Update("next_attempt_at", leaseUntil)
		if result.Error != nil {
			return claimed, outboxUnavailable(result.Error)
		}
		if result.RowsAffected == 0 {
			continue
		}
		rows[i].NextAttemptAt = leaseUntil
		claimed = append(claimed, rows[i].ToEntity())
	}
	return claimed, nil
}

// Save writes the whole message back.
func (o *welcomeOutbox) Save(ctx context.Context, msg *entity.WelcomeEmail) error {
	if err := o.db.WithContext(ctx).Save(model.WelcomeEmailFromEntity(msg)).Error; err != nil {
		return outboxUnavailable(err)
	}
	return nil
}

// Get returns the message with the given id.
func (o *welcomeOutbox) Get(ctx context.Context, id uuid.UUID) (*entity.WelcomeEmail, error) {
	var row model.WelcomeEmailModel
	err := o.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.NewEmailError(domainerror.ErrCodeWelcomeNotFound, "welcome email not found", domainerror.ErrWelcomeEmailNotFound)
	}
	if err != nil {
		return nil, outboxUnavailable(err)
	}
	return row.ToEntity(), nil
}

// PurgeDelivered deletes messages delivered before the cutoff.
func (o *welcomeOutbox) PurgeDelivered(ctx context.Context, before time.Time) (int64, error) {
	result := o.db.WithContext(ctx).
		Where("state = ? AND delivered_at < ?", entity.DeliverySent, before.UTC()).
		Delete(&model.WelcomeEmailModel{})
	if result.Error != nil {
		return 0, outboxUnavailable(result.Error)
	}
	return result.RowsAffected, nil
}

func outboxUnavailable(err error) error {
	return domainerror.NewEmailError(domainerror.ErrCodeOutboxUnavailable, "welcome email outbox unavailable", err)
}
