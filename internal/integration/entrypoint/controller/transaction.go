// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/CauaPrates/organiza-ai-app/internal/application/usecase/transaction"
	domainerror "github.com/CauaPrates/organiza-ai-app/internal/domain/error"
	"github.com/CauaPrates/organiza-ai-app/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints. Every call goes through
// the ledger of the caller's session so the cached set stays in sync.
type TransactionController struct{}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController() *TransactionController {
	return &TransactionController{}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	items, err := s.Ledger.Transactions(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(items),
	})
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingTransactionFields), "Invalid request body")
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidTransactionDate), "date must be formatted as YYYY-MM-DD")
		return
	}

	created, err := s.Ledger.Add(ctx.Request.Context(), transaction.CreateTransactionInput{
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Value:       dto.RawValue(req.Value),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(created))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	id, ok := transactionID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeEmptyTransactionPatch), "Invalid request body")
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: id,
		Description:   req.Description,
		Category:      req.Category,
		Type:          req.Type,
		Value:         dto.RawValue(req.Value),
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			badRequest(ctx, string(domainerror.ErrCodeInvalidTransactionDate), "date must be formatted as YYYY-MM-DD")
			return
		}
		input.Date = &date
	}

	updated, err := s.Ledger.Update(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(updated))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	s, ok := requireSession(ctx)
	if !ok {
		return
	}

	id, ok := transactionID(ctx)
	if !ok {
		return
	}

	deleted, err := s.Ledger.Delete(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteTransactionResponse{Success: deleted})
}

// transactionID parses the :id path parameter. Malformed ids are reported as not found.
func transactionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "transaction not found",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return uuid.Nil, false
	}
	return id, true
}
