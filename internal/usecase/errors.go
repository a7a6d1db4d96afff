package usecase

import (
	"errors"

	"hirehub/pkg/utils"
)

// Error kinds. Every *ServiceError unwraps to exactly one of these.
var (
	ErrValidation           = errors.New("validation error")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAccountNotVerified   = errors.New("account not verified")
	ErrApprovalPending      = errors.New("approval pending")
	ErrApprovalRejected     = errors.New("approval rejected")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrNotFound             = errors.New("not found")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenInvalid         = errors.New("token invalid")
	ErrUnavailable          = errors.New("service unavailable")
)

type ServiceError struct {
	Kind    error
	Message string
	Fields  map[string]string
}

func (e *ServiceError) Error() string {
	if len(e.Fields) > 0 {
		return e.Message + ": " + utils.FormatValidationErrors(e.Fields)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *ServiceError {
	return &ServiceError{Kind: kind, Message: message}
}

func validationError(fields map[string]string) *ServiceError {
	return &ServiceError{Kind: ErrValidation, Message: "Validation failed", Fields: fields}
}

func fieldError(field, message string) *ServiceError {
	return validationError(map[string]string{field: message})
}
