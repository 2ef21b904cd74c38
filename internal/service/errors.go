package service

import (
	"errors"
	"fmt"
)

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	CodeEditCancelled        = "EDIT_CANCELLED"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: reason,
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

// IsValidation reports whether err or anything it wraps is a validation
// BusinessError.
func IsValidation(err error) bool {
	var b *BusinessError
	return errors.As(err, &b) && b.Code == CodeValidation
}
