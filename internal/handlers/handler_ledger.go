package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finvera/ledger-service/internal/apperrors"
	portssvc "github.com/finvera/ledger-service/internal/core/ports/services"
	"github.com/finvera/ledger-service/internal/dto"
	"github.com/finvera/ledger-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for posting and reading journals.
type ledgerHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newLedgerHandler(postingService portssvc.PostingSvcFacade) *ledgerHandler {
	return &ledgerHandler{postingService: postingService}
}

// postTransaction godoc
// @Summary Post a balanced transaction
// @Description Validates and atomically commits a balanced multi-entry journal; idempotent under retry
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.PostTransactionRequest true "Entries, effective date, idempotency key"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Unbalanced entries or malformed input"
// @Failure 404 {object} map[string]string "Referenced account not found"
// @Failure 422 {object} map[string]string "Posting would overdraw a non-negative account"
// @Security BearerAuth
// @Router /transactions [post]
func (h *ledgerHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.postingService.PostTransaction(c.Request.Context(), tenantID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrOverdraft):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getTransaction godoc
// @Summary Get a posted journal by ID
// @Description Retrieves a journal with its entries; journals of other tenants are not found
// @Tags transactions
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Security BearerAuth
// @Router /transactions/{journalID} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.postingService.GetTransaction(c.Request.Context(), tenantID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		} else {
			logger.Error("Failed to get journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listTransactions godoc
// @Summary List posted journals
// @Description Retrieves one page of the tenant's journals, optionally filtered by account and date range
// @Tags transactions
// @Produce json
// @Param accountID query string false "Only journals touching this account"
// @Param from query string false "Inclusive lower bound, YYYY-MM-DD"
// @Param to query string false "Inclusive upper bound, YYYY-MM-DD"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	journals, nextToken, err := h.postingService.ListTransactions(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list journals", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journals"})
		}
		return
	}

	journalResponses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		journalResponses[i] = dto.ToJournalResponse(&journals[i])
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Journals:  journalResponses,
		NextToken: nextToken,
	})
}
