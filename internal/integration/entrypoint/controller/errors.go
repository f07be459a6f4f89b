package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CauaPrates/organiza-ai-app/internal/application/session"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/dto"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/middleware"
)

// handleError writes the response for a domain error, choosing the status by its kind.
func handleError(ctx *gin.Context, err error) {
	code, message := describe(err)
	if code == "" {
		slog.Error("Unhandled request error", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(statusFor(err, code), dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func statusFor(err error, code string) int {
	if code == string(domainerror.ErrCodeRateLimited) {
		return http.StatusTooManyRequests
	}

	switch domainerror.KindOf(err) {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindAuth:
		return http.StatusUnauthorized
	case domainerror.KindForbidden:
		return http.StatusForbidden
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindConflict:
		return http.StatusConflict
	case domainerror.KindRemote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// describe returns the public code and message of a domain error.
func describe(err error) (code, message string) {
	var (
		txnErr  *domainerror.TransactionError
		authErr *domainerror.AuthError
		bgErr   *domainerror.BackgroundError
		catErr  *domainerror.CategoryError
	)

	switch {
	case errors.As(err, &txnErr):
		return string(txnErr.Code), txnErr.Message
	case errors.As(err, &authErr):
		return string(authErr.Code), authErr.Message
	case errors.As(err, &bgErr):
		return string(bgErr.Code), bgErr.Message
	case errors.As(err, &catErr):
		return string(catErr.Code), catErr.Message
	default:
		return "", ""
	}
}

func badRequest(ctx *gin.Context, code, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// requireSession aborts with 401 when the auth middleware did not run.
func requireSession(ctx *gin.Context) (*session.Session, bool) {
	s, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return nil, false
	}
	return s, true
}
