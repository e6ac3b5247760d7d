package errors

import (
	"errors"
	"fmt"
)

var (
	ErrLinkNotFound     = errors.New("link not found")
	ErrLinkInactive     = errors.New("link is inactive")
	ErrLinkExpired      = errors.New("link has expired")
	ErrInvalidShortCode = errors.New("invalid short code")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

type BusinessError struct {
	Code    string
	Message string
	Cause   error
}

func (e *BusinessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Cause
}

func NewBusinessError(code, message string, cause error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

const (
	CodeDatabase = "DATABASE_ERROR"
	// CodeInvalidTarget - у ссылки сохранен URL, на который нельзя редиректить
	CodeInvalidTarget = "INVALID_TARGET"
)

func GetValidationError(err error) *ValidationError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	return nil
}

// GetBusinessError извлекает BusinessError из ошибки
func GetBusinessError(err error) *BusinessError {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr
	}
	return nil
}

// IsLinkGone - ссылка существует, но переход по ней запрещен
func IsLinkGone(err error) bool {
	return errors.Is(err, ErrLinkInactive) || errors.Is(err, ErrLinkExpired)
}
