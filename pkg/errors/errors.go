package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the categories of errors the application distinguishes.
type ErrorType string

const (
	// Required input missing or invalid; the operation was aborted before
	// any state changed.
	ErrTypeValidation ErrorType = "validation"
	// A referenced id does not exist for an update or toggle.
	ErrTypeNotFound ErrorType = "notfound"
	// Serialization or storage failure; never fatal, in-memory state stays
	// authoritative.
	ErrTypePersistence ErrorType = "persistence"
)

// AppError is a structured application error.
type AppError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidation creates a validation error.
func NewValidation(code, message string) *AppError {
	return &AppError{Type: ErrTypeValidation, Code: code, Message: message}
}

// NewNotFound creates a not-found error.
func NewNotFound(code, message string) *AppError {
	return &AppError{Type: ErrTypeNotFound, Code: code, Message: message}
}

// WrapPersistence wraps a storage or serialization failure.
func WrapPersistence(err error, code, message string) *AppError {
	return &AppError{Type: ErrTypePersistence, Code: code, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrCategoryNameRequired = NewValidation("CATEGORY_NAME_REQUIRED", "category name is required")
	ErrNoteTitleRequired    = NewValidation("NOTE_TITLE_REQUIRED", "note title is required")
	ErrNoteCategoryRequired = NewValidation("NOTE_CATEGORY_REQUIRED", "note category is required")
	ErrCategoryNotFound     = NewValidation("CATEGORY_NOT_FOUND", "category does not exist")
	ErrNoteNotFound         = NewNotFound("NOTE_NOT_FOUND", "note not found")
)

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return isType(err, ErrTypeValidation)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return isType(err, ErrTypeNotFound)
}

// IsPersistence reports whether err is a persistence error.
func IsPersistence(err error) bool {
	return isType(err, ErrTypePersistence)
}
