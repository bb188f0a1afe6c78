package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidTransition, http.StatusUnprocessableEntity},
		{ErrCodeOutstandingBalance, http.StatusUnprocessableEntity},
		{ErrCodeInvalidSecret, http.StatusUnprocessableEntity},
		{ErrCodeTenantSuspended, http.StatusForbidden},
		{ErrCodeTenantInGrace, http.StatusForbidden},
		{ErrCodeGateUnavailable, http.StatusServiceUnavailable},
		{ErrCodeTooManyAttempts, http.StatusTooManyRequests},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"UNMAPPED_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"mapped domain code", "TENANT_SUSPENDED", ErrCodeTenantSuspended},
		{"grace period", "TENANT_IN_GRACE", ErrCodeTenantInGrace},
		{"not found", "ORDER_NOT_FOUND", ErrCodeNotFound},
		{"duplicate phone", "PHONE_IN_USE", ErrCodeAlreadyExists},
		{"mapped invalid code keeps mapping", "INVALID_TRANSITION", ErrCodeInvalidTransition},
		{"unmapped invalid falls back to validation", "INVALID_QUANTITY", ErrCodeValidation},
		{"unmapped code passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.code))
		})
	}
}
