package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures so the HTTP layer can pick a status code.
type ErrorType string

const (
	ErrorTypeUnauthorized        ErrorType = "UNAUTHORIZED"
	ErrorTypeRateLimited         ErrorType = "RATE_LIMITED"
	ErrorTypeValidation          ErrorType = "VALIDATION"
	ErrorTypeUpstreamUnavailable ErrorType = "UPSTREAM_UNAVAILABLE"
	ErrorTypeInternal            ErrorType = "INTERNAL"
)

// AppError is the error type returned by the gateway and the analytics engine.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

func NewRateLimited(message string) *AppError {
	return &AppError{Type: ErrorTypeRateLimited, Message: message}
}

func NewValidation(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewUpstreamUnavailable wraps a store/connection failure. No retry happens here.
func NewUpstreamUnavailable(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeUpstreamUnavailable, Message: message, Err: err}
}

func NewInternal(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal for foreign errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

func IsUnauthorized(err error) bool { return err != nil && TypeOf(err) == ErrorTypeUnauthorized }
func IsRateLimited(err error) bool  { return err != nil && TypeOf(err) == ErrorTypeRateLimited }
func IsValidation(err error) bool   { return err != nil && TypeOf(err) == ErrorTypeValidation }
func IsUpstreamUnavailable(err error) bool {
	return err != nil && TypeOf(err) == ErrorTypeUpstreamUnavailable
}
