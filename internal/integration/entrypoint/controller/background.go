package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/background"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/dto"
)

// BackgroundController handles the dashboard background preference.
type BackgroundController struct {
	getUseCase    *background.GetBackgroundUseCase
	updateUseCase *background.UpdateBackgroundUseCase
	resetUseCase  *background.ResetBackgroundUseCase
}

// NewBackgroundController creates a new background controller instance.
func NewBackgroundController(
	getUseCase *background.GetBackgroundUseCase,
	updateUseCase *background.UpdateBackgroundUseCase,
	resetUseCase *background.ResetBackgroundUseCase,
) *BackgroundController {
	return &BackgroundController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		resetUseCase:  resetUseCase,
	}
}

// Get handles GET /users/me/background requests.
func (c *BackgroundController) Get(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	output := c.getUseCase.Execute(s)
	response := dto.BackgroundStateResponse{
		Background: dto.ToBackgroundResponse(output.Background),
		IsDefault:  output.IsDefault,
		Presets:    output.Presets,
	}
	var bgErr *domainerror.BackgroundError
	if errors.As(output.FetchErr, &bgErr) {
		response.Stale = true
		response.Code = string(bgErr.Code)
	}
	ctx.JSON(http.StatusOK, response)
}

// Update handles PUT /users/me/background requests. On a failed save the
// session keeps showing the previous background.
func (c *BackgroundController) Update(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBackgroundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidBackground), "Invalid request body")
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), background.UpdateBackgroundInput{
		Session: s,
		Type:    req.Type,
		Value:   req.Value,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBackgroundResponse(output.Background))
}

// Reset handles DELETE /users/me/background requests.
func (c *BackgroundController) Reset(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.resetUseCase.Execute(ctx.Request.Context(), s)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBackgroundResponse(output.Background))
}
