package handlers

import (
	"log/slog"
	"net/http"

	"finbook/internal/auth"
	"finbook/internal/dto"
	"finbook/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves derived statistics over the ledger.
type ReportHandler struct {
	svc *service.ReportService
}

// NewReportHandler returns a new ReportHandler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Summary godoc
// @Summary      Income/expense totals and balance
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /transactions/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	from, err := dto.ParseDateQuery(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date: use YYYY-MM-DD"})
		return
	}
	to, err := dto.ParseDateQuery(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date: use YYYY-MM-DD"})
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), userID, from, to)
	if err != nil {
		slog.Error("summary failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.SummaryResponse{
		TotalIncome:  sum.TotalIncome,
		TotalExpense: sum.TotalExpense,
		Balance:      sum.Balance,
	})
}

// Breakdown godoc
// @Summary      Expense totals per category with share of total
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Success      200  {object}  dto.BreakdownResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /reports/breakdown [get]
func (h *ReportHandler) Breakdown(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	from, err := dto.ParseDateQuery(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date: use YYYY-MM-DD"})
		return
	}
	to, err := dto.ParseDateQuery(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date: use YYYY-MM-DD"})
		return
	}
	entries, err := h.svc.Breakdown(c.Request.Context(), userID, from, to)
	if err != nil {
		slog.Error("breakdown failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	items := make([]dto.BreakdownItem, len(entries))
	for i, e := range entries {
		items[i] = dto.BreakdownItem{Category: e.Category, Total: e.Total, Percentage: e.Percentage}
	}
	c.JSON(http.StatusOK, dto.BreakdownResponse{Items: items})
}
