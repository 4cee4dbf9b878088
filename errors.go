// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"errors"
	"fmt"
	"net/http"
)

// LassieError represents a failed Congress API request with operation context
type LassieError struct {
	// Operation that failed, e.g. "GET /applications"
	Operation string

	// StatusCode is the HTTP status returned by the server (0 for transport errors)
	StatusCode int

	// Human-readable error message, usually the response body
	Message string

	// InternalMsg contains detailed error information for internal logging
	InternalMsg string

	// Number of retry attempts made
	Retries int

	// IsTransient indicates a transient failure (429, 502-504 or transport)
	IsTransient bool

	// Err is the underlying transport error, if any
	Err error
}

// Error implements the error interface
func (e *LassieError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
		if e.Message != "" {
			msg += ": " + e.Message
		}
	}
	if e.Retries > 0 {
		return fmt.Sprintf("lassie: %s failed: %s (retries: %d)", e.Operation, msg, e.Retries)
	}
	return fmt.Sprintf("lassie: %s failed: %s", e.Operation, msg)
}

// Unwrap returns the underlying transport error
func (e *LassieError) Unwrap() error {
	return e.Err
}

// DetailedError returns the full error message including internal details
//
// This should only be used in secure logging contexts where sensitive information
// disclosure is acceptable (e.g., debug output).
//
// Example:
//
//	var lerr *lassie.LassieError
//	if errors.As(err, &lerr) {
//	    log.Println(lerr.DetailedError())
//	}
func (e *LassieError) DetailedError() string {
	if e.InternalMsg == "" {
		return e.Error()
	}
	base := e.Error()
	return fmt.Sprintf("%s (internal: %s)", base, e.InternalMsg)
}

// IsNotFound reports whether err is a LassieError for a 404 response
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a LassieError for a 401 or 403 response
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, code int) bool {
	var lerr *LassieError
	if errors.As(err, &lerr) {
		return lerr.StatusCode == code
	}
	return false
}

// ErrorModel represents an error status returned by the Congress API
type ErrorModel struct {
	// Code is the HTTP status code
	Code int

	// Message is the error message
	Message string
}

// TransientError defines patterns for detecting transient errors that should be retried
type TransientError struct {
	// Code is the HTTP status code to match
	Code int
}

// TransientErrors defines the list of HTTP status codes that trigger automatic retry
//
// NOTE: 500 is intentionally excluded. It is a catch-all for permanent server
// failures and retrying it hides real problems.
var TransientErrors = []TransientError{
	// Rate limiting
	{Code: http.StatusTooManyRequests},

	// Upstream failure behind a proxy
	{Code: http.StatusBadGateway},

	// Service temporarily unavailable
	{Code: http.StatusServiceUnavailable},

	// Gateway timeout
	{Code: http.StatusGatewayTimeout},
}

// ErrClientClosed is returned by operations on a closed client
var ErrClientClosed = errors.New("client closed")
