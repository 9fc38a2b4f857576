// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package puter

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the completion client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches two ClientErrors by type so sentinel comparisons work
// through errors.Is.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnavailable
	ErrTypeTierExhausted
	ErrTypeInvalidResponse
	ErrTypeTimeout
)

// Sentinel errors for easy checking.
var (
	ErrUnavailable     = &ClientError{Type: ErrTypeUnavailable, Message: "AI service is not available"}
	ErrTierExhausted   = &ClientError{Type: ErrTypeTierExhausted, Message: "all request methods failed"}
	ErrInvalidResponse = &ClientError{Type: ErrTypeInvalidResponse, Message: "empty or invalid response received"}
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)
