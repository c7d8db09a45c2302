package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/financora/ledger_backend/internal/core/ports/services"
	"github.com/financora/ledger_backend/internal/dto"
)

// reportingHandler serves the derived, read-only views of the ledger.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reporting := rg.Group("/reporting")
	{
		reporting.GET("/balance-snapshot", h.balanceSnapshot)
		reporting.GET("/recent-recipients", h.recentRecipients)
		reporting.GET("/recent-transfers", h.recentTransfers)
	}
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		return 5
	}
	if limit > 50 {
		return 50
	}
	return limit
}

// balanceSnapshot sums active balances per currency, converted into the
// reporting currency.
func (h *reportingHandler) balanceSnapshot(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	snapshot, err := h.reportingService.GetBalanceSnapshot(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// recentRecipients lists external payees, most recently used first.
func (h *reportingHandler) recentRecipients(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	recipients, err := h.reportingService.ListRecentRecipients(c.Request.Context(), userID, limitParam(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipients": dto.ToRecentRecipientResponses(recipients)})
}

// recentTransfers lists transfer summaries, newest first.
func (h *reportingHandler) recentTransfers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	transfers, err := h.reportingService.ListRecentTransfers(c.Request.Context(), userID, limitParam(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfers": dto.ToRecentTransferResponses(transfers)})
}
