package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finvera/ledger-service/internal/apperrors"
	portssvc "github.com/finvera/ledger-service/internal/core/ports/services"
	"github.com/finvera/ledger-service/internal/dto"
	"github.com/finvera/ledger-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler handles HTTP requests for account statements.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

func newStatementHandler(statementService portssvc.StatementSvcFacade) *statementHandler {
	return &statementHandler{statementService: statementService}
}

// getStatement godoc
// @Summary Get an account statement
// @Description Produces a dated ledger extract: opening balance, lines with running balances, closing balance
// @Tags statements
// @Produce json
// @Param accountID path string true "Account ID"
// @Param startDate query string true "Inclusive period start, YYYY-MM-DD"
// @Param endDate query string true "Inclusive period end, YYYY-MM-DD"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Missing or inverted dates"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/statement [get]
func (h *statementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	startDate, err := time.Parse(time.DateOnly, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, want YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(time.DateOnly, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, want YYYY-MM-DD"})
		return
	}

	statement, err := h.statementService.GetStatement(c.Request.Context(), tenantID, accountID, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		default:
			logger.Error("Failed to generate statement", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate statement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}
