// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user of the dashboard.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Background   *DashboardBackground // nil until the user picks one
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// EffectiveBackground returns the stored preference or the default one.
func (u *User) EffectiveBackground() DashboardBackground {
	if u == nil || u.Background == nil {
		return DefaultBackground()
	}
	return *u.Background
}

// Identity is the public projection of a user cached and returned to clients.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Identity returns the public identity of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name}
}
