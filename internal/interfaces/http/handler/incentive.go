package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailbook/backend/internal/application/inventory"
)

// IncentiveHandler handles incentive rate endpoints.
type IncentiveHandler struct {
	BaseHandler
	service *inventory.IncentiveService
}

// NewIncentiveHandler creates a new IncentiveHandler.
func NewIncentiveHandler(service *inventory.IncentiveService) *IncentiveHandler {
	return &IncentiveHandler{service: service}
}

// Create handles POST /incentives
func (h *IncentiveHandler) Create(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req inventory.CreateIncentiveProductRequest
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

// Update handles PATCH /incentives/:id
func (h *IncentiveHandler) Update(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req inventory.UpdateIncentiveProductRequest
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

// Delete handles DELETE /incentives/:id
func (h *IncentiveHandler) Delete(c *gin.Context) {
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

// Get handles GET /incentives/:id
func (h *IncentiveHandler) Get(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), enterpriseID, id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /incentives
func (h *IncentiveHandler) List(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), enterpriseID, branchID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
