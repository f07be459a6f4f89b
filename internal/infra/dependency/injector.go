// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/CauaPrates/organiza-ai-app/config"
	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/application/session"
	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/auth"
	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/background"
	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/category"
	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/transaction"
	"github.com/CauaPrates/organiza-ai-app/internal/infra/server/router"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/adapters"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/email"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/controller"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/middleware"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	DB       *gorm.DB
	Router   *router.Router
	Sessions *session.Registry
	// EmailWorker is nil when the worker is disabled.
	EmailWorker *email.Worker
}

// Options carries collaborators that are created outside the injector.
// Nil fields fall back to production defaults.
type Options struct {
	Cache       adapter.LocalCache
	EmailSender adapter.EmailSender
	Suggester   adapter.CategorySuggester
	DBHealth    func() bool
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	welcomeOutbox := persistence.NewWelcomeOutbox(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)
	welcomeMailer := email.NewMailer(welcomeOutbox)

	suggester := opts.Suggester
	if suggester == nil {
		suggester = adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}

	// Sessions own the per-user ledger and background state
	store := transaction.NewStore(transactionRepo)
	sessions := session.NewRegistry(userRepo, store, opts.Cache, cfg.Cache.TTL)
	sessions.SetIdleTimeout(cfg.Session.IdleTimeout)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, sessions, welcomeMailer)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, sessions)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService, sessions)
	currentSessionUseCase := auth.NewCurrentSessionUseCase(tokenService, sessions)

	// Create background use cases
	getBackgroundUseCase := background.NewGetBackgroundUseCase()
	updateBackgroundUseCase := background.NewUpdateBackgroundUseCase(userRepo)
	resetBackgroundUseCase := background.NewResetBackgroundUseCase(userRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(transactionRepo)
	suggestCategoryUseCase := category.NewSuggestCategoryUseCase(suggester)

	// Create controllers
	dbHealth := opts.DBHealth
	if dbHealth == nil {
		dbHealth = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	healthController := controller.NewHealthController(dbHealth, sessions.Len)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		currentSessionUseCase,
	)

	backgroundController := controller.NewBackgroundController(
		getBackgroundUseCase,
		updateBackgroundUseCase,
		resetBackgroundUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		suggestCategoryUseCase,
	)

	transactionController := controller.NewTransactionController()
	dashboardController := controller.NewDashboardController()

	// Create middleware
	// E2E and test runs log in far more often than a person would.
	attempts := cfg.RateLimit.MaxAttempts
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		attempts = 1000
	}
	loginThrottle := middleware.NewLoginThrottle(attempts, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(currentSessionUseCase)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		dashboardController,
		backgroundController,
		categoryController,
		loginThrottle,
		authMiddleware,
	)

	injector := &Injector{
		Config:   cfg,
		DB:       db,
		Router:   r,
		Sessions: sessions,
	}

	if cfg.Email.WorkerEnabled {
		worker, err := newEmailWorker(cfg, welcomeOutbox, opts.EmailSender)
		if err != nil {
			return nil, err
		}
		injector.EmailWorker = worker
	}

	return injector, nil
}

func newEmailWorker(cfg *config.Config, outbox adapter.WelcomeOutbox, sender adapter.EmailSender) (*email.Worker, error) {
	if sender == nil {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("RESEND_API_KEY not set, welcome emails are kept in memory and not delivered")
			sender = email.NewMemorySender()
		} else {
			client, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ResendBaseURL)
			if err != nil {
				return nil, err
			}
			sender = client
		}
	}

	return email.NewWorker(outbox, sender, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		Lease:        cfg.Email.Lease,
		Retention:    time.Duration(cfg.Email.RetentionDays) * 24 * time.Hour,
		DashboardURL: cfg.Server.DashboardURL,
	}), nil
}
