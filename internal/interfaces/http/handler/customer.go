package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailbook/backend/internal/application/ledger"
)

// CustomerHandler handles customer directory endpoints.
type CustomerHandler struct {
	BaseHandler
	service *ledger.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *ledger.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req ledger.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), enterpriseID, branchID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req ledger.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), enterpriseID, id, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), enterpriseID, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// LookupByPhone handles GET /customers/phone/:phone, returning the customer
// with lifetime spend derived from their bills.
func (h *CustomerHandler) LookupByPhone(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.service.LookupByPhone(c.Request.Context(), enterpriseID, c.Param("phone"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter ledger.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, total, err := h.service.List(c.Request.Context(), enterpriseID, branchID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Page(c, resp, filter.Page, filter.PageSize, total)
}
