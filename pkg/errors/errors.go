package errors

import (
	"fmt"
	"net/http"
)

// StandardError represents a standardized error response
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "InvalidRequest", "Superseded")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (product id, generation)
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case "InvalidRequest":
		return http.StatusBadRequest
	case "UnknownItem":
		return http.StatusNotFound
	case "Superseded":
		return http.StatusConflict
	case "InternalError":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError("InvalidRequest", message, details)
}

// NewUnknownItem is returned when an interaction targets a product that is not part of the current render.
func NewUnknownItem(pid string) *StandardError {
	return NewStandardError("UnknownItem", "item is not displayed in the current view", fmt.Sprintf("Product ID: %s", pid))
}

func NewSuperseded(generation uint64) *StandardError {
	return NewStandardError("Superseded", "a newer request replaced this one", fmt.Sprintf("Generation: %d", generation))
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InternalError", message, details)
}
