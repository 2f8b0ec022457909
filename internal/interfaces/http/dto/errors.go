package dto

import "net/http"

// Error codes shared between the domain layer and the HTTP surface. Domain
// errors carry these codes directly; the table below decides the status line.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"

	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeInvalidInput        = "INVALID_INPUT"

	ErrCodeInvalidState          = "INVALID_STATE"
	ErrCodeInvalidQuantity       = "INVALID_QUANTITY"
	ErrCodeInvalidLocation       = "INVALID_LOCATION"
	ErrCodeInvalidWarehouse      = "INVALID_WAREHOUSE"
	ErrCodeInvalidSKU            = "INVALID_SKU"
	ErrCodeInvalidMode           = "INVALID_MODE"
	ErrCodeConservationViolation = "CONSERVATION_VIOLATION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidInput:        http.StatusBadRequest,

	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeInvalidQuantity:  http.StatusBadRequest,
	ErrCodeInvalidLocation:  http.StatusBadRequest,
	ErrCodeInvalidWarehouse: http.StatusBadRequest,
	ErrCodeInvalidSKU:       http.StatusBadRequest,
	ErrCodeInvalidMode:      http.StatusBadRequest,

	// A conservation violation means the engine itself produced an
	// unbalanced split. That is a server fault, never a client one.
	ErrCodeConservationViolation: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
