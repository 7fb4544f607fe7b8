package dto

import "net/http"

// Error code constants, format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeUnbalancedVoucher is used when a voucher's debits and credits differ
	ErrCodeUnbalancedVoucher = "ERR_UNBALANCED_VOUCHER"
	// ErrCodeReferentialIntegrity is used when a deletion would orphan records
	ErrCodeReferentialIntegrity = "ERR_REFERENTIAL_INTEGRITY"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "ERR_VALIDATION"
)

// domainCodeMap translates domain error codes to API error codes
var domainCodeMap = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"UNBALANCED_VOUCHER":    ErrCodeUnbalancedVoucher,
	"REFERENTIAL_INTEGRITY": ErrCodeReferentialIntegrity,
}

// NormalizeErrorCode maps a domain error code to its API error code.
// Domain validation codes (INVALID_*) collapse to ERR_INVALID_INPUT; anything
// unrecognized becomes a generic business rule violation.
func NormalizeErrorCode(domainCode string) string {
	if code, ok := domainCodeMap[domainCode]; ok {
		return code
	}
	if len(domainCode) > 8 && domainCode[:8] == "INVALID_" {
		return ErrCodeInvalidInput
	}
	return ErrCodeBusinessRule
}

// statusMap translates API error codes to HTTP status codes
var statusMap = map[string]int{
	ErrCodeNotFound:             http.StatusNotFound,
	ErrCodeAlreadyExists:        http.StatusConflict,
	ErrCodeConflict:             http.StatusConflict,
	ErrCodeReferentialIntegrity: http.StatusConflict,
	ErrCodeUnbalancedVoucher:    http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:         http.StatusUnprocessableEntity,
	ErrCodeInvalidInput:         http.StatusBadRequest,
	ErrCodeBadRequest:           http.StatusBadRequest,
	ErrCodeValidation:           http.StatusBadRequest,
	ErrCodeInternal:             http.StatusInternalServerError,
	ErrCodeUnknown:              http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an API error code
func GetHTTPStatus(code string) int {
	if status, ok := statusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
