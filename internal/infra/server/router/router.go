// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/controller"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	transactionController *controller.TransactionController
	dashboardController   *controller.DashboardController
	backgroundController  *controller.BackgroundController
	categoryController    *controller.CategoryController
	loginThrottle         *middleware.LoginThrottle
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	transactionController *controller.TransactionController,
	dashboardController *controller.DashboardController,
	backgroundController *controller.BackgroundController,
	categoryController *controller.CategoryController,
	loginThrottle *middleware.LoginThrottle,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		transactionController: transactionController,
		dashboardController:   dashboardController,
		backgroundController:  backgroundController,
		categoryController:    categoryController,
		loginThrottle:         loginThrottle,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil && r.loginThrottle != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.loginThrottle.Middleware(), r.authController.Register)
			auth.POST("/login", r.loginThrottle.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
			if r.authMiddleware != nil {
				auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			}
		}
	}

	if r.authMiddleware == nil {
		return
	}

	// Everything below requires an active session
	private := v1.Group("")
	private.Use(r.authMiddleware.Authenticate())

	if r.transactionController != nil {
		transactions := private.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.PATCH("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}
	}

	if r.dashboardController != nil {
		dashboard := private.Group("/dashboard")
		{
			dashboard.GET("", r.dashboardController.View)
			dashboard.GET("/summary", r.dashboardController.Summary)
		}
	}

	if r.backgroundController != nil {
		background := private.Group("/users/me/background")
		{
			background.GET("", r.backgroundController.Get)
			background.PUT("", r.backgroundController.Update)
			background.DELETE("", r.backgroundController.Reset)
		}
	}

	if r.categoryController != nil {
		categories := private.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("/suggest", r.categoryController.Suggest)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
