// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

// Error codes for the recipe generation workflow
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// Workflow errors
	CodeGenerationFailure ErrorCode = "GENERATION_FAILURE"
	CodeParseFailure      ErrorCode = "PARSE_FAILURE"
	CodeSearchFailure     ErrorCode = "SEARCH_FAILURE"
	CodeSearchAuthFailure ErrorCode = "SEARCH_AUTH_FAILURE"
	CodeRunFailure        ErrorCode = "RUN_FAILURE"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeGenerationFailure, CodeSearchFailure, CodeSearchAuthFailure, CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case CodeRunFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewGenerationFailure reports a model call that exhausted its retry and
// timeout budget without producing a response.
func NewGenerationFailure(operation string, cause error) *AppError {
	return NewAppError(
		CodeGenerationFailure,
		"Model generation failed",
		fmt.Sprintf("Failed to complete %s", operation),
	).WithCause(cause).WithMetadata("operation", operation)
}

// NewParseFailure reports a structured model response that did not match the
// requested shape.
func NewParseFailure(operation string, cause error) *AppError {
	return NewAppError(
		CodeParseFailure,
		"Model response did not match the requested shape",
		fmt.Sprintf("Failed to parse %s response", operation),
	).WithCause(cause).WithMetadata("operation", operation)
}

// NewSearchFailure reports a non-authentication search provider error.
func NewSearchFailure(query string, cause error) *AppError {
	return NewAppError(
		CodeSearchFailure,
		"Search request failed",
		fmt.Sprintf("Query %q failed", query),
	).WithCause(cause).WithMetadata("query", query)
}

// NewSearchAuthFailure reports an authentication-class search provider error.
// Callers treat the credential as broken for the remainder of the run.
func NewSearchAuthFailure(cause error) *AppError {
	return NewAppError(
		CodeSearchAuthFailure,
		"Search provider rejected the credential",
		"",
	).WithCause(cause)
}

// NewRunFailure reports an exception that escaped a stage's own fallback.
func NewRunFailure(stage string, cause error) *AppError {
	return NewAppError(
		CodeRunFailure,
		"Workflow run failed",
		fmt.Sprintf("Stage %s failed unrecoverably", stage),
	).WithCause(cause).WithMetadata("stage", stage)
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error carries a specific error code, unwrapping as needed
func Is(err error, code ErrorCode) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}

	if len(v) == 1 {
		return v[0].Message
	}

	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}

	return strings.Join(messages, "; ")
}

// Messages returns the human-readable message list for API responses
func (v ValidationErrors) Messages() []string {
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return messages
}

// NewValidationErrors creates an AppError from field validation errors
func NewValidationErrors(errs []ValidationError) *AppError {
	validationErrs := ValidationErrors(errs)

	return NewAppError(
		CodeValidationFailed,
		"Validation failed",
		validationErrs.Error(),
	).WithMetadata("validation_errors", validationErrs)
}
