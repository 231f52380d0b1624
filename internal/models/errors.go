package models

import "fmt"

// DomainError is a business-rule failure with a stable code the API layer
// can map to an HTTP status.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

var (
	ErrVoucherNotFound   = NewDomainError("VOUCHER_NOT_FOUND", "voucher not found")
	ErrVoucherUsed       = NewDomainError("VOUCHER_ALREADY_USED", "voucher has already been used")
	ErrSubClientNotFound = NewDomainError("SUBCLIENT_NOT_FOUND", "sub-client not found")
)

// ValidationError rejects one input field. Validation always runs before
// any mutation, so a failed operation stores nothing.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
