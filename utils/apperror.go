package utils

import (
	"errors"
	"net/http"
)

// Error codes surfaced to callers. Every validation failure maps to exactly
// one of these before any mutation happens.
const (
	CodeInvalidInput = "invalid_input"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
)

// AppError is a caller-visible failure with a distinguishable condition.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func ErrInvalidInput(msg string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: msg}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: msg}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Code: CodeForbidden, Message: msg}
}

func ErrNotFound(msg string) *AppError {
	return &AppError{Code: CodeNotFound, Message: msg}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: CodeConflict, Message: msg}
}

// HTTPStatus maps an error to its response status. Unknown errors are
// internal failures.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
