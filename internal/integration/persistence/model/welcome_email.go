package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

// WelcomeEmailModel is a row of the welcome e-mail outbox. A user gets at
// most one.
type WelcomeEmailModel struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	Recipient     string       `gorm:"type:varchar(255);not null"`
	Name          string       `gorm:"type:varchar(100)"`
	State         string       `gorm:"type:varchar(20);not null;index:idx_welcome_emails_due,priority:1"`
	Attempts      int          `gorm:"not null;default:0"`
	LastError     string       `gorm:"type:text"`
	ProviderID    string       `gorm:"type:varchar(100)"`
	NextAttemptAt time.Time    `gorm:"not null;index:idx_welcome_emails_due,priority:2"`
	CreatedAt     time.Time    `gorm:"not null"`
	DeliveredAt   sql.NullTime `gorm:"type:timestamp"`
}

// TableName returns the table name for the WelcomeEmailModel.
func (WelcomeEmailModel) TableName() string {
	return "welcome_emails"
}

// ToEntity converts the row to a domain WelcomeEmail.
func (m *WelcomeEmailModel) ToEntity() *entity.WelcomeEmail {
	msg := &entity.WelcomeEmail{
		ID:            m.ID,
		UserID:        m.UserID,
		Recipient:     m.Recipient,
		Name:          m.Name,
		State:         entity.DeliveryState(m.State),
		Attempts:      m.Attempts,
		LastError:     m.LastError,
		ProviderID:    m.ProviderID,
		NextAttemptAt: m.NextAttemptAt.UTC(),
		CreatedAt:     m.CreatedAt,
	}
	if m.DeliveredAt.Valid {
		at := m.DeliveredAt.Time.UTC()
		msg.DeliveredAt = &at
	}
	return msg
}

// WelcomeEmailFromEntity creates the row for a domain WelcomeEmail.
func WelcomeEmailFromEntity(msg *entity.WelcomeEmail) *WelcomeEmailModel {
	m := &WelcomeEmailModel{
		ID:            msg.ID,
		UserID:        msg.UserID,
		Recipient:     msg.Recipient,
		Name:          msg.Name,
		State:         string(msg.State),
		Attempts:      msg.Attempts,
		LastError:     msg.LastError,
		ProviderID:    msg.ProviderID,
		NextAttemptAt: msg.NextAttemptAt,
		CreatedAt:     msg.CreatedAt,
	}
	if msg.DeliveredAt != nil {
		m.DeliveredAt = sql.NullTime{Time: *msg.DeliveredAt, Valid: true}
	}
	return m
}
