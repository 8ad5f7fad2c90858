package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/ledger"
	"nestegg/internal/reports"
)

// ReportHandler serves read-only aggregates over the ledger.
type ReportHandler struct {
	store *ledger.Store
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store *ledger.Store) *ReportHandler {
	return &ReportHandler{store: store}
}

// GetPerformance reports per-investment performance for a date window
// @Summary     Investment performance
// @Description Per-investment deposit/withdrawal totals and growth for an optional date window
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "Window start (YYYY-MM-DD or RFC 3339)"
// @Param       to query string false "Window end (YYYY-MM-DD or RFC 3339)"
// @Success     200 {array} reports.InvestmentPerformance "Performance rows"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/performance [get]
func (h *ReportHandler) GetPerformance(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	perf := reports.Performance(h.store.Investments(), h.store.Transactions(), from, to)
	c.JSON(http.StatusOK, gin.H{"performance": perf})
}

// GetMonthlyFlows reports per-month deposit/withdrawal flows
// @Summary     Monthly flows
// @Description Per calendar month deposits, withdrawals, and net flow for an optional date window
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "Window start (YYYY-MM-DD or RFC 3339)"
// @Param       to query string false "Window end (YYYY-MM-DD or RFC 3339)"
// @Success     200 {array} reports.MonthlyFlow "Monthly rows"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthlyFlows(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	flows := reports.MonthlyFlows(h.store.Transactions(), from, to)
	c.JSON(http.StatusOK, gin.H{"monthly": flows})
}

// GetSummary reports portfolio-wide totals and allocation
// @Summary     Portfolio summary
// @Description Portfolio totals, net growth, and per-type allocation split
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} reports.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"summary": reports.Summarize(h.store.Investments())})
}
