// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client configuration options using the functional options pattern

// Endpoint sets the base URL of the Congress REST API
//
// Overrides the endpoint from LoadConfig. A trailing slash is removed.
func Endpoint(endpoint string) func(*Client) {
	return func(c *Client) {
		c.Endpoint = endpoint
	}
}

// Token sets the API token sent in the X-API-Token header
//
// Overrides the token from LoadConfig, including with an empty token.
func Token(token string) func(*Client) {
	return func(c *Client) {
		c.token = token
		c.tokenSet = true
	}
}

// WithConfig uses cfg instead of reading LoadConfig at construction
//
// Explicit Endpoint and Token options still take precedence.
func WithConfig(cfg Config) func(*Client) {
	return func(c *Client) {
		c.config = &cfg
	}
}

// WithHTTPClient sets the underlying HTTP client
//
// Use this to customize transport settings such as proxies or TLS roots.
func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// UserAgent sets the User-Agent header (default: go-lassie)
func UserAgent(agent string) func(*Client) {
	return func(c *Client) {
		c.UserAgent = agent
	}
}

// OperationTimeout sets the timeout of a single request attempt (default: 30s)
func OperationTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.OperationTimeout = duration
	}
}

// MaxRetries sets the maximum number of retry attempts for transient errors (default: 3)
func MaxRetries(retries int) func(*Client) {
	return func(c *Client) {
		c.MaxRetries = retries
	}
}

// BackoffMinDelay sets the minimum backoff delay (default: 500ms)
func BackoffMinDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMinDelay = duration
	}
}

// BackoffMaxDelay sets the maximum backoff delay (default: 30s)
func BackoffMaxDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMaxDelay = duration
	}
}

// BackoffDelayFactor sets the backoff multiplication factor (default: 2.0)
func BackoffDelayFactor(factor float64) func(*Client) {
	return func(c *Client) {
		c.BackoffDelayFactor = factor
	}
}

// RateLimit limits outgoing requests to rps requests per second with the given burst
//
// Every attempt, including retries, waits for the limiter. A non-positive rps
// disables limiting (default).
//
// Example:
//
//	client, _ := lassie.NewClient(lassie.RateLimit(5, 10))
func RateLimit(rps float64, burst int) func(*Client) {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger configures a custom logger for the client
//
// By default, the client uses NoOpLogger which discards all log messages.
// Request and response bodies logged at Debug level are redacted to remove
// session keys and tokens.
//
// Example:
//
//	logger := lassie.NewDefaultLogger(lassie.LogLevelInfo)
//	client, _ := lassie.NewClient(lassie.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrettyPrintLogs enables/disables JSON pretty printing in logs
//
// Only Debug-level body logging is affected. Default: disabled.
func WithPrettyPrintLogs(enabled bool) func(*Client) {
	return func(c *Client) {
		c.prettyPrintLogs = enabled
	}
}

// Request modifiers for individual operations

// Timeout returns a request modifier that sets a custom timeout for the operation.
//
// The timeout priority model is:
//  1. Request-specific timeout (this modifier) - highest priority
//  2. Context deadline (if already set) - medium priority
//  3. Client.OperationTimeout - fallback default
//
// Example:
//
//	apps, err := client.ListApplications(ctx, lassie.Timeout(5*time.Second))
func Timeout(duration time.Duration) func(*Req) {
	return func(req *Req) {
		req.Timeout = duration
	}
}

// RequestID returns a request modifier that sets the X-Request-ID header
//
// Without it, every request gets a random UUID.
func RequestID(id string) func(*Req) {
	return func(req *Req) {
		req.RequestID = id
	}
}
