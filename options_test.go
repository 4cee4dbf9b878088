// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"net/http"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// TestEndpointOption tests the Endpoint functional option
func TestEndpointOption(t *testing.T) {
	client := &Client{}
	Endpoint("https://congress.example.com")(client)

	if client.Endpoint != "https://congress.example.com" {
		t.Errorf("Endpoint() set endpoint to %q", client.Endpoint)
	}
}

// TestTokenOption tests the Token functional option
func TestTokenOption(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"non-empty token", "secret"},
		{"empty token still counts as set", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{}
			Token(tt.token)(client)

			if client.token != tt.token {
				t.Errorf("Token() set token to %q, want %q", client.token, tt.token)
			}
			if !client.tokenSet {
				t.Error("Token() did not mark the token as set")
			}
		})
	}
}

// TestWithConfigOption tests that WithConfig stores a copy of the config
func TestWithConfigOption(t *testing.T) {
	cfg := Config{Endpoint: "https://a.example.com", Token: "t"}
	client := &Client{}
	WithConfig(cfg)(client)
	cfg.Token = "changed"

	if client.config == nil || client.config.Token != "t" {
		t.Errorf("WithConfig() stored %+v", client.config)
	}
}

// TestWithHTTPClientOption tests the WithHTTPClient functional option
func TestWithHTTPClientOption(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	client := &Client{}
	WithHTTPClient(hc)(client)

	if client.httpClient != hc {
		t.Error("WithHTTPClient() did not set the HTTP client")
	}
}

// TestSimpleOptions tests options that copy a value into the client
func TestSimpleOptions(t *testing.T) {
	client := &Client{}
	for _, opt := range []func(*Client){
		UserAgent("congress-cli/1.0"),
		OperationTimeout(45 * time.Second),
		MaxRetries(7),
		BackoffMinDelay(time.Second),
		BackoffMaxDelay(time.Minute),
		BackoffDelayFactor(1.5),
		WithPrettyPrintLogs(true),
	} {
		opt(client)
	}

	if client.UserAgent != "congress-cli/1.0" {
		t.Errorf("UserAgent = %q", client.UserAgent)
	}
	if client.OperationTimeout != 45*time.Second {
		t.Errorf("OperationTimeout = %v", client.OperationTimeout)
	}
	if client.MaxRetries != 7 {
		t.Errorf("MaxRetries = %d", client.MaxRetries)
	}
	if client.BackoffMinDelay != time.Second {
		t.Errorf("BackoffMinDelay = %v", client.BackoffMinDelay)
	}
	if client.BackoffMaxDelay != time.Minute {
		t.Errorf("BackoffMaxDelay = %v", client.BackoffMaxDelay)
	}
	if client.BackoffDelayFactor != 1.5 {
		t.Errorf("BackoffDelayFactor = %v", client.BackoffDelayFactor)
	}
	if !client.prettyPrintLogs {
		t.Error("WithPrettyPrintLogs(true) not applied")
	}
}

// TestRateLimitOption tests limiter construction
func TestRateLimitOption(t *testing.T) {
	tests := []struct {
		name      string
		rps       float64
		burst     int
		wantNil   bool
		wantLimit rate.Limit
		wantBurst int
	}{
		{name: "disabled", rps: 0, burst: 5, wantNil: true},
		{name: "negative disables", rps: -1, burst: 5, wantNil: true},
		{name: "enabled", rps: 5, burst: 10, wantLimit: 5, wantBurst: 10},
		{name: "burst clamped", rps: 2, burst: 0, wantLimit: 2, wantBurst: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{limiter: rate.NewLimiter(1, 1)}
			RateLimit(tt.rps, tt.burst)(client)

			if tt.wantNil {
				if client.limiter != nil {
					t.Error("expected limiter to be disabled")
				}
				return
			}
			if client.limiter == nil {
				t.Fatal("expected a limiter")
			}
			if client.limiter.Limit() != tt.wantLimit {
				t.Errorf("Limit() = %v, want %v", client.limiter.Limit(), tt.wantLimit)
			}
			if client.limiter.Burst() != tt.wantBurst {
				t.Errorf("Burst() = %d, want %d", client.limiter.Burst(), tt.wantBurst)
			}
		})
	}
}

// TestWithLoggerOption tests that a nil logger is ignored
func TestWithLoggerOption(t *testing.T) {
	logger := NewDefaultLogger(LogLevelDebug)
	client := &Client{logger: &NoOpLogger{}}

	WithLogger(logger)(client)
	if client.logger != logger {
		t.Error("WithLogger() did not set the logger")
	}

	WithLogger(nil)(client)
	if client.logger != logger {
		t.Error("WithLogger(nil) replaced the logger")
	}
}

// TestRequestModifiers tests Timeout and RequestID
func TestRequestModifiers(t *testing.T) {
	req := newReq([]func(*Req){Timeout(3 * time.Second), RequestID("abc")})

	if req.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", req.Timeout)
	}
	if req.RequestID != "abc" {
		t.Errorf("RequestID = %q", req.RequestID)
	}
}
