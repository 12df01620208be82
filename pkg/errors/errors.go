package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/medflow/resume-parser/pkg/i18n"
)

// Standard error types
var (
	ErrNotFound             = errors.New("resource not found")
	ErrBadRequest           = errors.New("bad request")
	ErrInternal             = errors.New("internal server error")
	ErrValidation           = errors.New("validation error")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrUnprocessable        = errors.New("unprocessable document")
	ErrTooLarge             = errors.New("payload too large")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	MessageKey string            `json:"-"` // i18n key for localization
	Params     map[string]string `json:"-"` // Parameters for i18n interpolation
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Localize returns a localized version of the error message
func (e *AppError) Localize(ctx context.Context) string {
	if e.MessageKey == "" {
		return e.Message
	}
	return i18n.TFromContext(ctx, e.MessageKey, e.Params)
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Common error constructors

func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		MessageKey: "errors.not_found",
		Params:     map[string]string{"resource": resource},
		StatusCode: http.StatusNotFound,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		MessageKey: "errors.bad_request",
		StatusCode: http.StatusBadRequest,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		MessageKey: "errors.internal",
		StatusCode: http.StatusInternalServerError,
	}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		MessageKey: "errors.validation_failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// Document errors

func UnsupportedMediaType(contentType string) *AppError {
	return &AppError{
		Err:        ErrUnsupportedMediaType,
		Code:       "UNSUPPORTED_MEDIA_TYPE",
		Message:    fmt.Sprintf("unsupported document type %s", contentType),
		MessageKey: "errors.unsupported_media_type",
		Params:     map[string]string{"type": contentType},
		StatusCode: http.StatusUnsupportedMediaType,
	}
}

func EmptyDocument() *AppError {
	return &AppError{
		Err:        ErrUnprocessable,
		Code:       "EMPTY_DOCUMENT",
		Message:    "no text could be extracted from the document",
		MessageKey: "errors.empty_document",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func UnreadableDocument(err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %v", ErrUnprocessable, err),
		Code:       "UNREADABLE_DOCUMENT",
		Message:    "the document could not be read",
		MessageKey: "errors.unreadable_document",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func PayloadTooLarge(limit int64) *AppError {
	return &AppError{
		Err:        ErrTooLarge,
		Code:       "PAYLOAD_TOO_LARGE",
		Message:    fmt.Sprintf("upload exceeds %d bytes", limit),
		MessageKey: "errors.payload_too_large",
		Params:     map[string]string{"limit": fmt.Sprintf("%d", limit)},
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
