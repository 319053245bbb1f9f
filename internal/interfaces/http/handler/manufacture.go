package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailbook/backend/internal/application/inventory"
	"github.com/retailbook/backend/internal/interfaces/http/dto"
)

// ManufactureHandler handles production event endpoints.
type ManufactureHandler struct {
	BaseHandler
	service *inventory.ManufactureService
}

// NewManufactureHandler creates a new ManufactureHandler.
func NewManufactureHandler(service *inventory.ManufactureService) *ManufactureHandler {
	return &ManufactureHandler{service: service}
}

// Create handles POST /manufactures
func (h *ManufactureHandler) Create(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req inventory.CreateManufactureRequest
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

// Update handles PUT /manufactures/:id
func (h *ManufactureHandler) Update(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req inventory.UpdateManufactureRequest
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

// Delete handles DELETE /manufactures/:id
func (h *ManufactureHandler) Delete(c *gin.Context) {
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

// Get handles GET /manufactures/:id
func (h *ManufactureHandler) Get(c *gin.Context) {
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

// List handles GET /manufactures
func (h *ManufactureHandler) List(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), enterpriseID, branchID, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
