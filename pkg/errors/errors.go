package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound

	// Network Errors - errors on the path to the weather API
	ErrorTypeNoConnectivity
	ErrorTypeTimeout
	ErrorTypeServer
	ErrorTypeClient
	ErrorTypeParse

	// Identity/Store Errors - errors from the remote favorites backend
	ErrorTypeAuth
	ErrorTypeNotAuthenticated
	ErrorTypePermission

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeDatabase
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeNoConnectivity:
		return "NO_CONNECTIVITY_ERROR"
	case ErrorTypeTimeout:
		return "TIMEOUT_ERROR"
	case ErrorTypeServer:
		return "SERVER_ERROR"
	case ErrorTypeClient:
		return "CLIENT_ERROR"
	case ErrorTypeParse:
		return "PARSE_ERROR"
	case ErrorTypeAuth:
		return "AUTH_ERROR"
	case ErrorTypeNotAuthenticated:
		return "NOT_AUTHENTICATED_ERROR"
	case ErrorTypePermission:
		return "PERMISSION_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

// Network Error Constructors
func NewNoConnectivityError(message string, cause error) *AppError {
	return Wrap(ErrorTypeNoConnectivity, message, cause)
}

func NewTimeoutError(message string, cause error) *AppError {
	return Wrap(ErrorTypeTimeout, message, cause)
}

func NewServerError(message string) *AppError {
	return New(ErrorTypeServer, message)
}

func NewClientError(message string) *AppError {
	return New(ErrorTypeClient, message)
}

func NewParseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeParse, message, cause)
}

// Identity/Store Error Constructors
func NewAuthError(message string, cause error) *AppError {
	return Wrap(ErrorTypeAuth, message, cause)
}

func NewNotAuthenticatedError(message string) *AppError {
	return New(ErrorTypeNotAuthenticated, message)
}

func NewPermissionError(message string) *AppError {
	return New(ErrorTypePermission, message)
}

// System/Configuration Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDatabase, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// Helper functions for error type checking
func typeOf(err error) ErrorType {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func IsValidationError(err error) bool {
	return typeOf(err) == ErrorTypeValidation
}

func IsNotFoundError(err error) bool {
	return typeOf(err) == ErrorTypeNotFound
}

func IsNoConnectivityError(err error) bool {
	return typeOf(err) == ErrorTypeNoConnectivity
}

func IsTimeoutError(err error) bool {
	return typeOf(err) == ErrorTypeTimeout
}

func IsParseError(err error) bool {
	return typeOf(err) == ErrorTypeParse
}

func IsAuthError(err error) bool {
	return typeOf(err) == ErrorTypeAuth
}

func IsNotAuthenticatedError(err error) bool {
	return typeOf(err) == ErrorTypeNotAuthenticated
}

func IsPermissionError(err error) bool {
	return typeOf(err) == ErrorTypePermission
}

func IsDatabaseError(err error) bool {
	return typeOf(err) == ErrorTypeDatabase
}

// IsNetworkError reports whether the error is recoverable by the cache
// fallback path (transport, timeout, HTTP status or payload failures).
func IsNetworkError(err error) bool {
	switch typeOf(err) {
	case ErrorTypeNoConnectivity, ErrorTypeTimeout, ErrorTypeServer, ErrorTypeClient, ErrorTypeParse:
		return true
	default:
		return false
	}
}
