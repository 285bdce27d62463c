package dto

import (
	"net/http"
	"strings"
)

// Error codes used by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Conflicts deliberately map to 400 rather than 409, and access denial
// to 403 regardless of whether the resource exists.
var errorCodeHTTPStatus = map[string]int{
	// Access errors
	"UNAUTHORIZED":  http.StatusUnauthorized,
	"ACCESS_DENIED": http.StatusForbidden,

	// Resource errors
	"NOT_FOUND": http.StatusNotFound,

	// Conflict errors -> 400 Bad Request
	"ALREADY_EXISTS":       http.StatusBadRequest,
	"CONCURRENCY_CONFLICT": http.StatusBadRequest,
	"INSUFFICIENT_STOCK":   http.StatusBadRequest,
	"NO_ITEMS":             http.StatusBadRequest,

	// HTTP layer errors
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Validation codes (INVALID_*) map to 400; unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
