package model

import (
	"fmt"
	"net/http"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeNameRequired     = "NAME_REQUIRED"
	ErrCodeInvalidPrice     = "INVALID_PRICE"
	ErrCodeInvalidProductID = "INVALID_PRODUCT_ID"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeTransport        = "TRANSPORT_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNameRequired     = NewDomainError(ErrCodeNameRequired, "Product name is required")
	ErrInvalidPrice     = NewDomainError(ErrCodeInvalidPrice, "Product price must be a number greater than zero")
	ErrInvalidProductID = NewDomainError(ErrCodeInvalidProductID, "Product ID is required")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
)

// TransportError is returned by the product client for any network failure or non-2xx response.
type TransportError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int // zero when no response was received
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s %s returned %d %s", e.Op, e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying network or decode error, if any.
func (e *TransportError) Unwrap() error {
	return e.Err
}
