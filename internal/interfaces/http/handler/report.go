package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/retailbook/backend/internal/application/report"
	"github.com/retailbook/backend/internal/domain/report"
	"github.com/retailbook/backend/internal/interfaces/http/dto"
)

// ReportHandler handles read-side report endpoints.
type ReportHandler struct {
	BaseHandler
	service *appreport.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *appreport.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// filter binds the mandatory date window and scopes it to the caller's
// tenant. A false return means the response has already been written.
func (h *ReportHandler) filter(c *gin.Context) (report.Filter, bool) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return report.Filter{}, false
	}

	var window dto.ReportRequest
	if err := c.ShouldBindQuery(&window); err != nil {
		h.BadRequest(c, err)
		return report.Filter{}, false
	}

	return report.Filter{
		EnterpriseID: enterpriseID,
		BranchID:     branchID,
		StartDate:    window.StartDate,
		EndDate:      window.EndDate,
	}, true
}

// Sales handles GET /reports/sales
func (h *ReportHandler) Sales(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	resp, err := h.service.SalesReport(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Purchases handles GET /reports/purchases
func (h *ReportHandler) Purchases(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	resp, err := h.service.PurchaseReport(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Expenses handles GET /reports/expenses
func (h *ReportHandler) Expenses(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	resp, err := h.service.ExpenseReport(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Withdrawals handles GET /reports/withdrawals
func (h *ReportHandler) Withdrawals(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	resp, err := h.service.WithdrawalReport(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// CashFlow handles GET /reports/cash-flow
func (h *ReportHandler) CashFlow(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	resp, err := h.service.CashFlowReport(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Stats handles GET /reports/stats
func (h *ReportHandler) Stats(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	resp, err := h.service.Stats(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
