package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailbook/backend/internal/application/ledger"
	"github.com/retailbook/backend/internal/interfaces/http/dto"
)

// CashbookHandler handles expense, withdrawal and closing cash endpoints.
type CashbookHandler struct {
	BaseHandler
	service *ledger.CashbookService
}

// NewCashbookHandler creates a new CashbookHandler.
func NewCashbookHandler(service *ledger.CashbookService) *CashbookHandler {
	return &CashbookHandler{service: service}
}

// CreateExpense handles POST /expenses
func (h *CashbookHandler) CreateExpense(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req ledger.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.CreateExpense(c.Request.Context(), enterpriseID, branchID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// DeleteExpense handles DELETE /expenses/:id
func (h *CashbookHandler) DeleteExpense(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteExpense(c.Request.Context(), enterpriseID, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListExpenses handles GET /expenses
func (h *CashbookHandler) ListExpenses(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter ledger.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, total, err := h.service.ListExpenses(c.Request.Context(), enterpriseID, branchID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Page(c, resp, filter.Page, filter.PageSize, total)
}

// CreateWithdrawal handles POST /withdrawals. Admin only: withdrawals are
// owner drawings.
func (h *CashbookHandler) CreateWithdrawal(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req ledger.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.CreateWithdrawal(c.Request.Context(), enterpriseID, branchID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// DeleteWithdrawal handles DELETE /withdrawals/:id. Admin only.
func (h *CashbookHandler) DeleteWithdrawal(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteWithdrawal(c.Request.Context(), enterpriseID, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListWithdrawals handles GET /withdrawals
func (h *CashbookHandler) ListWithdrawals(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter ledger.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, total, err := h.service.ListWithdrawals(c.Request.Context(), enterpriseID, branchID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Page(c, resp, filter.Page, filter.PageSize, total)
}

// RecordClosingCash handles PUT /closing-cash. Recording twice for the same
// day replaces the earlier figure.
func (h *CashbookHandler) RecordClosingCash(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req ledger.ClosingCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.RecordClosingCash(c.Request.Context(), enterpriseID, branchID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// GetClosingCash handles GET /closing-cash?date=2006-01-02
func (h *CashbookHandler) GetClosingCash(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var day dto.DateRequest
	if err := c.ShouldBindQuery(&day); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.GetClosingCash(c.Request.Context(), enterpriseID, branchID,
		ledger.ClosingCashRequest{Date: day.Date})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
