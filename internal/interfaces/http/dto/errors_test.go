package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		domainCode string
		want       string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"UNBALANCED_VOUCHER", ErrCodeUnbalancedVoucher},
		{"REFERENTIAL_INTEGRITY", ErrCodeReferentialIntegrity},
		{"INVALID_ACCOUNT_CODE", ErrCodeInvalidInput},
		{"INVALID_VOUCHER_TYPE", ErrCodeInvalidInput},
		{"SOMETHING_ELSE", ErrCodeBusinessRule},
	}

	for _, tt := range tests {
		t.Run(tt.domainCode, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.domainCode))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeReferentialIntegrity, http.StatusConflict},
		{ErrCodeUnbalancedVoucher, http.StatusUnprocessableEntity},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"ERR_NEVER_SEEN", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}
