package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/infrastructure/logger"
	"github.com/retailbook/backend/internal/interfaces/http/dto"
	"github.com/retailbook/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the response helpers every handler shares.
type BaseHandler struct{}

// Success sends a 200 response with data.
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Page sends a 200 response with data and pagination meta.
func (h *BaseHandler) Page(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, page, pageSize, total))
}

// BadRequest sends a 400 response for request binding failures.
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeInvalidInput, err.Error()))
}

// Error translates an application error into its HTTP response. Domain
// errors carry their own code; anything else is an internal error and gets
// logged with the request id.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.HTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	logger.FromGin(c).Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An internal error occurred"))
}

// tenant extracts the enterprise and branch the request acts for. Admins
// carry no branch claim and operate enterprise-wide. A false return means
// the response has already been written.
func (h *BaseHandler) tenant(c *gin.Context) (uuid.UUID, *uuid.UUID, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
		return uuid.Nil, nil, false
	}

	enterpriseID, err := claims.Enterprise()
	if err != nil {
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Token carries no enterprise"))
		return uuid.Nil, nil, false
	}

	branchID, err := claims.Branch()
	if err != nil {
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Token carries a malformed branch"))
		return uuid.Nil, nil, false
	}

	// Admin tokens carry no branch; they may pick one per request.
	if branchID == nil {
		if raw := c.Query("branch_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest,
					dto.NewErrorResponse(dto.ErrCodeInvalidInput, "Malformed branch_id parameter"))
				return uuid.Nil, nil, false
			}
			branchID = &id
		}
	}

	return enterpriseID, branchID, true
}

// uuidParam parses a UUID path parameter. A false return means the
// response has already been written.
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeInvalidInput, "Malformed "+name+" parameter"))
		return uuid.Nil, false
	}
	return id, true
}
