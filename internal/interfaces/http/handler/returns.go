package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailbook/backend/internal/application/trade"
)

// ReturnHandler handles purchase and sales return endpoints.
type ReturnHandler struct {
	BaseHandler
	service *trade.ReturnService
}

// NewReturnHandler creates a new ReturnHandler.
func NewReturnHandler(service *trade.ReturnService) *ReturnHandler {
	return &ReturnHandler{service: service}
}

// CreatePurchaseReturn handles POST /purchase-returns
func (h *ReturnHandler) CreatePurchaseReturn(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req trade.CreatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.CreatePurchaseReturn(c.Request.Context(), enterpriseID, branchID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// DeletePurchaseReturn handles DELETE /purchase-returns/:id
func (h *ReturnHandler) DeletePurchaseReturn(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePurchaseReturn(c.Request.Context(), enterpriseID, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListPurchaseReturns handles GET /purchase-returns
func (h *ReturnHandler) ListPurchaseReturns(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter trade.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.ListPurchaseReturns(c.Request.Context(), enterpriseID, branchID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateSalesReturn handles POST /sales-returns
func (h *ReturnHandler) CreateSalesReturn(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req trade.CreateSalesReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.CreateSalesReturn(c.Request.Context(), enterpriseID, branchID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// DeleteSalesReturn handles DELETE /sales-returns/:id
func (h *ReturnHandler) DeleteSalesReturn(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSalesReturn(c.Request.Context(), enterpriseID, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListSalesReturns handles GET /sales-returns
func (h *ReturnHandler) ListSalesReturns(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter trade.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.ListSalesReturns(c.Request.Context(), enterpriseID, branchID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
