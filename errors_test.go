// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"testing"
)

// TestLassieError_Error tests the Error() method formatting
func TestLassieError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *LassieError
		expected string
	}{
		{
			name: "transport error without retries",
			err: &LassieError{
				Operation: "GET /applications",
				Message:   "connection refused",
			},
			expected: "lassie: GET /applications failed: connection refused",
		},
		{
			name: "status with body",
			err: &LassieError{
				Operation:  "DELETE /gateways/G1",
				StatusCode: http.StatusNotFound,
				Message:    "unknown gateway",
			},
			expected: "lassie: DELETE /gateways/G1 failed: 404 Not Found: unknown gateway",
		},
		{
			name: "status without body",
			err: &LassieError{
				Operation:  "POST /applications",
				StatusCode: http.StatusUnauthorized,
			},
			expected: "lassie: POST /applications failed: 401 Unauthorized",
		},
		{
			name: "with retries",
			err: &LassieError{
				Operation:   "GET /gateways",
				StatusCode:  http.StatusServiceUnavailable,
				Message:     "maintenance",
				Retries:     3,
				IsTransient: true,
			},
			expected: "lassie: GET /gateways failed: 503 Service Unavailable: maintenance (retries: 3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestLassieError_DetailedError tests the DetailedError() method
func TestLassieError_DetailedError(t *testing.T) {
	tests := []struct {
		name     string
		err      *LassieError
		expected string
	}{
		{
			name: "with internal message",
			err: &LassieError{
				Operation:   "GET /applications",
				StatusCode:  http.StatusBadRequest,
				Message:     "bad request",
				InternalMsg: "request_id=abc expected=200",
			},
			expected: "lassie: GET /applications failed: 400 Bad Request: bad request (internal: request_id=abc expected=200)",
		},
		{
			name: "without internal message",
			err: &LassieError{
				Operation: "GET /applications",
				Message:   "timeout",
				Retries:   2,
			},
			expected: "lassie: GET /applications failed: timeout (retries: 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.DetailedError(); got != tt.expected {
				t.Errorf("DetailedError() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestLassieError_Unwrap tests that transport errors stay reachable with errors.Is
func TestLassieError_Unwrap(t *testing.T) {
	cause := errors.New("dial failed")
	err := fmt.Errorf("wrapped: %w", &LassieError{Operation: "GET /gateways", Err: cause})

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the transport error")
	}
}

// TestIsNotFound tests status helpers
func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		notFound     bool
		unauthorized bool
	}{
		{"nil", nil, false, false},
		{"plain error", errors.New("404"), false, false},
		{"404", &LassieError{StatusCode: http.StatusNotFound}, true, false},
		{"wrapped 404", fmt.Errorf("get: %w", &LassieError{StatusCode: http.StatusNotFound}), true, false},
		{"401", &LassieError{StatusCode: http.StatusUnauthorized}, false, true},
		{"403", &LassieError{StatusCode: http.StatusForbidden}, false, true},
		{"500", &LassieError{StatusCode: http.StatusInternalServerError}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
			if got := IsUnauthorized(tt.err); got != tt.unauthorized {
				t.Errorf("IsUnauthorized() = %v, want %v", got, tt.unauthorized)
			}
		})
	}
}

// TestCheckTransientError tests transient error detection from transport errors
func TestCheckTransientError(t *testing.T) {
	client := &Client{
		logger: &NoOpLogger{},
	}

	tests := []struct {
		name       string
		err        error
		wantResult bool
	}{
		{
			name:       "nil error",
			err:        nil,
			wantResult: false,
		},
		{
			name:       "plain error (permanent)",
			err:        errors.New("regular error"),
			wantResult: false,
		},
		{
			name:       "net.OpError (transient)",
			err:        &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantResult: true,
		},
		{
			name:       "url.Error (transient)",
			err:        &url.Error{Op: "Get", URL: "http://x", Err: errors.New("EOF")},
			wantResult: true,
		},
		{
			name:       "attempt deadline (transient)",
			err:        fmt.Errorf("attempt: %w", context.DeadlineExceeded),
			wantResult: true,
		},
		{
			name:       "canceled (permanent)",
			err:        fmt.Errorf("attempt: %w", context.Canceled),
			wantResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := client.checkTransientError(context.Background(), tt.err)
			if got != tt.wantResult {
				t.Errorf("checkTransientError() = %v, want %v", got, tt.wantResult)
			}
		})
	}
}

// TestCheckTransientError_ParentDone tests that nothing is transient once the parent context ends
func TestCheckTransientError_ParentDone(t *testing.T) {
	client := &Client{logger: &NoOpLogger{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	if client.checkTransientError(ctx, err) {
		t.Error("Expected error to be permanent after parent context was canceled")
	}
}

// TestTransientErrors_Coverage tests the transient status table
func TestTransientErrors_Coverage(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusInternalServerError, false},
		{http.StatusNotFound, false},
		{http.StatusBadRequest, false},
		{http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			if got := isTransientStatus(tt.code); got != tt.want {
				t.Errorf("isTransientStatus(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

// TestErrorMessage tests extraction of messages from error bodies
func TestErrorMessage(t *testing.T) {
	long := make([]byte, maxErrorMessageLength+10)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "  not found \n", "not found"},
		{"json message", `{"message":"no such application","status":404}`, "no such application"},
		{"json without message", `{"error":"x"}`, `{"error":"x"}`},
		{"truncated", string(long), string(long[:maxErrorMessageLength]) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage(tt.body); got != tt.want {
				t.Errorf("errorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
