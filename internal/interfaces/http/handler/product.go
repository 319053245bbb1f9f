package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/application/inventory"
	"github.com/retailbook/backend/internal/interfaces/http/dto"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	BaseHandler
	service *inventory.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *inventory.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req inventory.CreateProductRequest
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

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req inventory.UpdateProductRequest
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

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
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

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
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

// GetByUID handles GET /products/uid/:uid, the barcode scan lookup.
func (h *ProductHandler) GetByUID(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByUID(c.Request.Context(), enterpriseID, branchID, c.Param("uid"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
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

// MergeProductsRequest asks to fold one branch's products of a brand into
// another branch.
type MergeProductsRequest struct {
	TargetBranchID uuid.UUID `json:"target_branch_id" binding:"required"`
	SourceBranchID uuid.UUID `json:"source_branch_id" binding:"required"`
	BrandID        uuid.UUID `json:"brand_id" binding:"required"`
}

// Merge handles POST /products/merge. Admin only.
func (h *ProductHandler) Merge(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}

	var req MergeProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	merged, err := h.service.MergeProducts(c.Request.Context(), enterpriseID,
		req.TargetBranchID, req.SourceBranchID, req.BrandID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, gin.H{"merged": merged})
}
