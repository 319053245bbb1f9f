package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/application/inventory"
)

// BrandHandler handles brand endpoints.
type BrandHandler struct {
	BaseHandler
	service *inventory.BrandService
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(service *inventory.BrandService) *BrandHandler {
	return &BrandHandler{service: service}
}

// Create handles POST /brands
func (h *BrandHandler) Create(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req inventory.CreateBrandRequest
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

// Update handles PUT /brands/:id
func (h *BrandHandler) Update(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req inventory.UpdateBrandRequest
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

// Delete handles DELETE /brands/:id
func (h *BrandHandler) Delete(c *gin.Context) {
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

// Get handles GET /brands/:id
func (h *BrandHandler) Get(c *gin.Context) {
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

// List handles GET /brands
func (h *BrandHandler) List(c *gin.Context) {
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

// MergeBrandsRequest asks to fold one branch's brands into another branch.
type MergeBrandsRequest struct {
	TargetBranchID uuid.UUID `json:"target_branch_id" binding:"required"`
	SourceBranchID uuid.UUID `json:"source_branch_id" binding:"required"`
}

// Merge handles POST /brands/merge. Admin only.
func (h *BrandHandler) Merge(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}

	var req MergeBrandsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	merged, err := h.service.MergeBrands(c.Request.Context(), enterpriseID,
		req.TargetBranchID, req.SourceBranchID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, gin.H{"merged": merged})
}
