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

// balanceHandler handles HTTP requests for balance queries.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(balanceService portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: balanceService}
}

// parseAsOf parses an optional YYYY-MM-DD asOf query parameter.
func parseAsOf(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	asOf, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	return &asOf, nil
}

// getBalance godoc
// @Summary Get an account balance
// @Description Computes the account's signed balance as of a calendar date (today when omitted)
// @Tags balances
// @Produce json
// @Param accountID path string true "Account ID"
// @Param asOf query string false "As-of date, YYYY-MM-DD"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid as-of date"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOf(c.Query("asOf"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, want YYYY-MM-DD"})
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), tenantID, accountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// queryBalances godoc
// @Summary Get balances for several accounts
// @Description Computes as-of-date balances for a set of accounts; unresolvable ids are skipped
// @Tags balances
// @Accept json
// @Produce json
// @Param query body dto.GetBalancesRequest true "Account ids and optional as-of date"
// @Success 200 {array} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /balances/query [post]
func (h *balanceHandler) queryBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GetBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOf(req.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, want YYYY-MM-DD"})
		return
	}

	balances, err := h.balanceService.GetBalances(c.Request.Context(), tenantID, req.AccountIDs, asOf)
	if err != nil {
		logger.Error("Failed to get balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	responses := make([]dto.BalanceResponse, len(balances))
	for i := range balances {
		responses[i] = dto.ToBalanceResponse(&balances[i])
	}
	c.JSON(http.StatusOK, responses)
}
