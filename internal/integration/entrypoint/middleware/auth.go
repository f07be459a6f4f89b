// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CauaPrates/organiza-ai-app/internal/application/session"
	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/auth"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// SessionKey is the context key for the authenticated session.
const SessionKey ContextKey = "session"

// AuthMiddleware resolves the bearer token into a live session.
type AuthMiddleware struct {
	currentSession *auth.CurrentSessionUseCase
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(currentSession *auth.CurrentSessionUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		currentSession: currentSession,
	}
}

// Authenticate returns a Gin middleware handler that requires an active session.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			return
		}

		s, err := m.currentSession.Execute(c.Request.Context(), auth.CurrentSessionInput{
			AccessToken: strings.TrimPrefix(authHeader, "Bearer "),
		})
		if err != nil {
			var authErr *domainerror.AuthError
			if !errors.As(err, &authErr) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
					Error: "Invalid or expired token",
					Code:  string(domainerror.ErrCodeInvalidToken),
				})
				return
			}

			status := http.StatusUnauthorized
			if authErr.ErrorKind() == domainerror.KindRemote {
				status = http.StatusBadGateway
			}
			c.AbortWithStatusJSON(status, dto.ErrorResponse{
				Error: authErr.Message,
				Code:  string(authErr.Code),
			})
			return
		}

		c.Set(string(SessionKey), s)
		c.Next()
	}
}

// GetSessionFromContext extracts the authenticated session from the Gin context.
func GetSessionFromContext(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(string(SessionKey))
	if !exists {
		return nil, false
	}
	s, ok := value.(*session.Session)
	return s, ok && s != nil
}
