package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific failure kind in the bot request lifecycle.
type ErrorCode string

const (
	// ErrCodeTransportFetch indicates the source image could not be fetched from the transport.
	ErrCodeTransportFetch ErrorCode = "TRANSPORT_FETCH"
	// ErrCodeExternalAPI indicates a non-success response from the background-removal endpoint.
	ErrCodeExternalAPI ErrorCode = "EXTERNAL_API"
	// ErrCodeInvalidSelection indicates a picker response carried a token outside the enumerated set.
	ErrCodeInvalidSelection ErrorCode = "INVALID_SELECTION"
	// ErrCodeUnauthorizedAdmin indicates a non-administrator invoked the admin report.
	ErrCodeUnauthorizedAdmin ErrorCode = "UNAUTHORIZED_ADMIN"
	// ErrCodeUnclassified indicates any other unexpected failure during staging or processing.
	ErrCodeUnclassified ErrorCode = "UNCLASSIFIED"
)

// BotError represents a structured error for bot operations.
type BotError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *BotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *BotError) Unwrap() error {
	return e.Cause
}

// TransportFetch creates a transport fetch error.
func TransportFetch(msg string, cause error) *BotError {
	return &BotError{Code: ErrCodeTransportFetch, Message: msg, Cause: cause}
}

// ExternalAPI creates an external API error carrying the reason shown to the user.
func ExternalAPI(reason string, cause error) *BotError {
	return &BotError{Code: ErrCodeExternalAPI, Message: reason, Cause: cause}
}

// InvalidSelection creates an invalid selection error.
func InvalidSelection(token string) *BotError {
	return &BotError{
		Code:    ErrCodeInvalidSelection,
		Message: fmt.Sprintf("unrecognized selection token: %s", token),
	}
}

// UnauthorizedAdmin creates an unauthorized admin access error.
func UnauthorizedAdmin(userID int64) *BotError {
	return &BotError{
		Code:    ErrCodeUnauthorizedAdmin,
		Message: fmt.Sprintf("user %d is not the administrator", userID),
	}
}

// Unclassified wraps any unexpected failure.
func Unclassified(msg string, cause error) *BotError {
	return &BotError{Code: ErrCodeUnclassified, Message: msg, Cause: cause}
}

// IsCode checks if an error carries a specific code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a BotError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr.Code
	}
	return defaultCode
}
