package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retailbook/backend/internal/application/trade"
)

// TransferHandler handles inter-branch stock transfer endpoints.
type TransferHandler struct {
	BaseHandler
	service *trade.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(service *trade.TransferService) *TransferHandler {
	return &TransferHandler{service: service}
}

// Create handles POST /transfers. Admin only: a transfer touches two
// branches at once.
func (h *TransferHandler) Create(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}

	var req trade.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Transfer(c.Request.Context(), enterpriseID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}
