package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes for the order lifecycle and ledger
const (
	ErrCodeInvalidState       = "ERR_INVALID_STATE"
	ErrCodeInvalidTransition  = "ERR_INVALID_TRANSITION"
	ErrCodeOrderCollected     = "ERR_ORDER_COLLECTED"
	ErrCodeExceedsBalance     = "ERR_EXCEEDS_BALANCE"
	ErrCodeOutstandingBalance = "ERR_OUTSTANDING_BALANCE"
	ErrCodeNotReady           = "ERR_NOT_READY"
	ErrCodeInvalidSecret      = "ERR_INVALID_SECRET"
	ErrCodeTotalMismatch      = "ERR_TOTAL_MISMATCH"
)

// Subscription error codes
const (
	ErrCodeTenantSuspended = "ERR_TENANT_SUSPENDED"
	ErrCodeTenantInGrace   = "ERR_TENANT_IN_GRACE"
	ErrCodeGateUnavailable = "ERR_GATE_UNAVAILABLE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeTooManyAttempts = "ERR_TOO_MANY_ATTEMPTS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeInvalidTransition:  http.StatusUnprocessableEntity,
	ErrCodeOrderCollected:     http.StatusUnprocessableEntity,
	ErrCodeExceedsBalance:     http.StatusUnprocessableEntity,
	ErrCodeOutstandingBalance: http.StatusUnprocessableEntity,
	ErrCodeNotReady:           http.StatusUnprocessableEntity,
	ErrCodeInvalidSecret:      http.StatusUnprocessableEntity,
	ErrCodeTotalMismatch:      http.StatusBadRequest,

	// Subscription gate
	ErrCodeTenantSuspended: http.StatusForbidden,
	ErrCodeTenantInGrace:   http.StatusForbidden,
	ErrCodeGateUnavailable: http.StatusServiceUnavailable,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeTooManyAttempts: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to wire codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ORDER_NOT_FOUND":      ErrCodeNotFound,
	"CUSTOMER_NOT_FOUND":   ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"INVALID_TRANSITION":   ErrCodeInvalidTransition,
	"ORDER_COLLECTED":      ErrCodeOrderCollected,
	"EXCEEDS_BALANCE":      ErrCodeExceedsBalance,
	"OUTSTANDING_BALANCE":  ErrCodeOutstandingBalance,
	"NOT_READY":            ErrCodeNotReady,
	"INVALID_SECRET":       ErrCodeInvalidSecret,
	"TOTAL_MISMATCH":       ErrCodeTotalMismatch,
	"TENANT_SUSPENDED":     ErrCodeTenantSuspended,
	"TENANT_IN_GRACE":      ErrCodeTenantInGrace,
	"GATE_UNAVAILABLE":     ErrCodeGateUnavailable,
	"TOO_MANY_ATTEMPTS":    ErrCodeTooManyAttempts,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"INVALID_CREDENTIALS":  ErrCodeUnauthorized,
	"ACCOUNT_DISABLED":     ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"PHONE_IN_USE":         ErrCodeAlreadyExists,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// Unmapped INVALID_* codes (field-level validation from domain
// constructors) fall back to ERR_VALIDATION; everything else passes
// through unchanged and maps to 500.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeValidation
	}
	return code
}
