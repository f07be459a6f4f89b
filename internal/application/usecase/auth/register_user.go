package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email    string
	Name     string
	Password string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	SessionID    uuid.UUID
	User         *entity.User
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	sessions        Sessions
	welcome         adapter.WelcomeMailer
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
// welcome may be nil, in which case no welcome email is scheduled.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	sessions Sessions,
	welcome adapter.WelcomeMailer,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		sessions:        sessions,
		welcome:         welcome,
	}
}

// Execute performs the user registration and starts a session for the new user.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		slog.Error("Failed to check email existence", "error", err)
		return nil, authUnavailable(err)
	}
	if exists {
		return nil, emailTaken()
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, name, passwordHash)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			return nil, emailTaken()
		}
		slog.Error("Failed to create user", "error", err)
		return nil, authUnavailable(err)
	}

	s, err := uc.sessions.Start(ctx, user)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, s.ID, user.Email)
	if err != nil {
		uc.sessions.End(ctx, s.ID)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	uc.queueWelcomeEmail(ctx, user)

	return &RegisterUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		SessionID:    s.ID,
		User:         user,
	}, nil
}

// queueWelcomeEmail is best effort; registration succeeds even if it fails.
func (uc *RegisterUserUseCase) queueWelcomeEmail(ctx context.Context, user *entity.User) {
	if uc.welcome == nil {
		return
	}

	if err := uc.welcome.Welcome(ctx, user); err != nil {
		slog.Warn("Failed to queue welcome email",
			"userID", user.ID,
			"error", err,
		)
	}
}

func emailTaken() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeEmailExists,
		"email already exists",
		domainerror.ErrEmailAlreadyExists,
	)
}
