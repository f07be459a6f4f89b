package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/dashboard"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/dto"
)

// DashboardController serves the summary cards and the filtered transaction table.
type DashboardController struct{}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

// View handles GET /dashboard requests.
// Query parameters: search, type (all|income|expense), category, sortBy
// (date|value|description) and sortOrder (asc|desc).
func (c *DashboardController) View(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	q, err := dashboard.ParseViewQuery(
		ctx.Query("search"),
		ctx.Query("type"),
		ctx.Query("category"),
		ctx.Query("sortBy"),
		ctx.Query("sortOrder"),
	)
	if err != nil {
		handleError(ctx, err)
		return
	}

	view, err := s.Ledger.View(ctx.Request.Context(), q)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(view, q))
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	summary, err := s.Ledger.Summary(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
