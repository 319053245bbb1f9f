package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailbook/backend/internal/application/ledger"
	"github.com/retailbook/backend/internal/interfaces/http/dto"
)

// partyService is the surface shared by the vendor, debtor and staff
// services.
type partyService interface {
	Create(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, req ledger.PartyRequest) (*ledger.PartyResponse, error)
	Update(ctx context.Context, enterpriseID, id uuid.UUID, req ledger.PartyRequest) (*ledger.PartyResponse, error)
	Delete(ctx context.Context, enterpriseID, id uuid.UUID) error
	GetByID(ctx context.Context, enterpriseID, id uuid.UUID) (*ledger.PartyResponse, error)
	List(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, filter ledger.ListFilter) ([]ledger.PartyResponse, int64, error)
	AddTransaction(ctx context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, partyID uuid.UUID, req ledger.PartyTransactionRequest) (*ledger.PartyTransactionResponse, error)
	DeleteTransaction(ctx context.Context, enterpriseID, id uuid.UUID) error
}

type statementFunc func(ctx context.Context, partyID uuid.UUID, start, end *time.Time) (*ledger.StatementResponse, error)

// PartyHandler handles one party ledger: vendors, debtors or staff.
type PartyHandler struct {
	BaseHandler
	service   partyService
	statement statementFunc
}

// NewVendorHandler creates the handler for the vendor ledger.
func NewVendorHandler(service *ledger.VendorService, statements *ledger.StatementService) *PartyHandler {
	return &PartyHandler{service: service, statement: statements.VendorStatement}
}

// NewDebtorHandler creates the handler for the debtor ledger.
func NewDebtorHandler(service *ledger.DebtorService, statements *ledger.StatementService) *PartyHandler {
	return &PartyHandler{service: service, statement: statements.DebtorStatement}
}

// NewStaffHandler creates the handler for the staff ledger.
func NewStaffHandler(service *ledger.StaffService, statements *ledger.StatementService) *PartyHandler {
	return &PartyHandler{service: service, statement: statements.StaffStatement}
}

// Create handles POST /{parties}
func (h *PartyHandler) Create(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req ledger.PartyRequest
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

// Update handles PUT /{parties}/:id
func (h *PartyHandler) Update(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req ledger.PartyRequest
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

// Delete handles DELETE /{parties}/:id
func (h *PartyHandler) Delete(c *gin.Context) {
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

// Get handles GET /{parties}/:id
func (h *PartyHandler) Get(c *gin.Context) {
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

// List handles GET /{parties}
func (h *PartyHandler) List(c *gin.Context) {
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

// AddTransaction handles POST /{parties}/:id/transactions
func (h *PartyHandler) AddTransaction(c *gin.Context) {
	enterpriseID, branchID, ok := h.tenant(c)
	if !ok {
		return
	}
	partyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req ledger.PartyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.AddTransaction(c.Request.Context(), enterpriseID, branchID, partyID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, resp)
}

// DeleteTransaction handles DELETE /{parties}/transactions/:id
func (h *PartyHandler) DeleteTransaction(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTransaction(c.Request.Context(), enterpriseID, id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Statement handles GET /{parties}/:id/statement. The party must belong to
// the caller's enterprise before the ledger is read.
func (h *PartyHandler) Statement(c *gin.Context) {
	enterpriseID, _, ok := h.tenant(c)
	if !ok {
		return
	}
	partyID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var window dto.DateRangeRequest
	if err := c.ShouldBindQuery(&window); err != nil {
		h.BadRequest(c, err)
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), enterpriseID, partyID); err != nil {
		h.Error(c, err)
		return
	}

	resp, err := h.statement(c.Request.Context(), partyID, window.StartDate, window.EndDate)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
