// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client failures.
type ErrorType int

const (
	// ErrTypeConnection covers network failures reaching the server.
	ErrTypeConnection ErrorType = iota

	// ErrTypeRequest covers failures building or encoding the request.
	ErrTypeRequest

	// ErrTypeParse covers responses that could not be decoded.
	ErrTypeParse

	// ErrTypeEmpty covers well-formed responses carrying no content.
	ErrTypeEmpty

	// ErrTypeThrottled covers calls suppressed by the client-side limiter.
	ErrTypeThrottled
)

// String returns a short label for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeRequest:
		return "request"
	case ErrTypeParse:
		return "parse"
	case ErrTypeEmpty:
		return "empty"
	case ErrTypeThrottled:
		return "throttled"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is checks.
var (
	// ErrNoContent reports a response whose first choice carried no
	// message content.
	ErrNoContent = errors.New("response contained no content")

	// ErrThrottled reports a call suppressed by the rate limiter.
	ErrThrottled = errors.New("request throttled")
)

// ClientError is a typed error produced by the client.
type ClientError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// Is supports matching against the package sentinels by error type.
func (e *ClientError) Is(target error) bool {
	switch target {
	case ErrNoContent:
		return e.Type == ErrTypeEmpty
	case ErrThrottled:
		return e.Type == ErrTypeThrottled
	}
	return false
}

// newError builds a ClientError.
func newError(t ErrorType, message string, cause error) *ClientError {
	return &ClientError{Type: t, Message: message, Err: cause}
}
