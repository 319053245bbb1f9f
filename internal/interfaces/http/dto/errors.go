package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself. Domain codes come through
// shared.DomainError unchanged.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":          http.StatusNotFound,
	"ALREADY_EXISTS":     http.StatusConflict,
	"CONFLICT":           http.StatusConflict,
	"ALREADY_RETURNED":   http.StatusConflict,
	"UNAUTHORIZED":       http.StatusUnauthorized,
	"FORBIDDEN":          http.StatusForbidden,
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"LOCK_TIMEOUT":       http.StatusServiceUnavailable,
	"UID_EXHAUSTED":      http.StatusInternalServerError,
	"INTERNAL_ERROR":     http.StatusInternalServerError,
}

// HTTPStatus maps an error code to its HTTP status. Validation-style codes
// all share the INVALID_ prefix; anything unknown is a server error.
func HTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
