// Package errors provides the classified error kinds surfaced by command dispatch.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUsage               ErrorCode = "USAGE_ERROR"
	ErrCodeUnknownCommand      ErrorCode = "UNKNOWN_COMMAND"
	ErrCodeInvalidArgument     ErrorCode = "INVALID_ARGUMENT"
	ErrCodeMissingCredential   ErrorCode = "MISSING_CREDENTIAL"
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamRejected    ErrorCode = "UPSTREAM_REJECTED"
	ErrCodeNotificationFailed  ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInvalidPayload      ErrorCode = "INVALID_PAYLOAD"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// User-facing messages. These are the only texts a caller ever sees for a failed dispatch.
const (
	MsgLicenseKeyRequired = "License key is required"
	MsgUpstreamFailed     = "request failed after multiple attempts"
	MsgLicenseKeyEmpty    = "License key must not be empty"
	MsgInternal           = "internal error"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches on code so errors.Is(err, &StandardError{Code: X}) works.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: IsRetryable(code),
		Timestamp: time.Now().UTC(),
	}
}

// NewUsageError is returned for a known command given the wrong arguments.
func NewUsageError(usage string) *StandardError {
	return newError(ErrCodeUsage, usage, "")
}

// NewUnknownCommandError carries the help text listing the available commands.
func NewUnknownCommandError(help, raw string) *StandardError {
	return newError(ErrCodeUnknownCommand, help, fmt.Sprintf("raw: %q", raw))
}

// NewInvalidArgumentError reports an argument that failed validation. The message names the
// offending argument and repeats the command's usage string.
func NewInvalidArgumentError(usage, field string) *StandardError {
	return newError(ErrCodeInvalidArgument, fmt.Sprintf("Invalid %s. %s", field, usage),
		fmt.Sprintf("invalid argument: %s", field))
}

func NewMissingCredentialError() *StandardError {
	return newError(ErrCodeMissingCredential, MsgLicenseKeyRequired, "")
}

// NewUpstreamUnavailableError wraps the last attempt failure after retries are exhausted.
func NewUpstreamUnavailableError(attempts int, cause error) *StandardError {
	details := fmt.Sprintf("attempts: %d", attempts)
	if cause != nil {
		details = fmt.Sprintf("%s, last error: %s", details, cause.Error())
	}
	return newError(ErrCodeUpstreamUnavailable, MsgUpstreamFailed, details)
}

// NewUpstreamRejectedError reports a non-success status from the lookup API.
func NewUpstreamRejectedError(status int) *StandardError {
	return newError(ErrCodeUpstreamRejected, "upstream rejected request",
		fmt.Sprintf("status: %d", status))
}

func NewNotificationFailedError(sink string, err error) *StandardError {
	return newError(ErrCodeNotificationFailed, "notification send failed",
		fmt.Sprintf("sink: %s, error: %v", sink, err))
}

func NewInvalidPayloadError(details string) *StandardError {
	return newError(ErrCodeInvalidPayload, "invalid request payload", details)
}

// AsStandard normalizes any error into a StandardError so raw error text never leaks into a
// user-visible message.
func AsStandard(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, MsgInternal, err.Error())
}

// IsRetryable reports whether an operation failing with code may be attempted again.
func IsRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeUpstreamRejected, ErrCodeUpstreamUnavailable:
		return true
	default:
		return false
	}
}

// GetErrorCategory groups codes for logs and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeUsage, ErrCodeUnknownCommand, ErrCodeInvalidArgument, ErrCodeInvalidPayload:
		return "input"
	case ErrCodeMissingCredential:
		return "credential"
	case ErrCodeUpstreamUnavailable, ErrCodeUpstreamRejected:
		return "upstream"
	case ErrCodeNotificationFailed:
		return "notification"
	default:
		return "internal"
	}
}
