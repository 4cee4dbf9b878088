// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Default client configuration values
const (
	DefaultMaxRetries         = 3
	DefaultBackoffMinDelay    = 500 * time.Millisecond
	DefaultBackoffMaxDelay    = 30 * time.Second
	DefaultBackoffDelayFactor = 2
	DefaultOperationTimeout   = 30 * time.Second
	DefaultUserAgent          = "go-lassie"
	DefaultPrettyPrintLogs    = false
)

// Security limits for JSON processing and logging
const (
	MaxJSONSizeForLogging = 1 * 1024 * 1024 // 1MB limit to prevent ReDoS attacks
	MaxSensitiveFields    = 1000            // Max redaction operations to prevent DoS
)

// Logging message constants
const (
	JSONTooLargeMessage     = "[JSON TOO LARGE FOR LOGGING]"
	JSONTooManySensitiveMsg = "[JSON CONTAINS TOO MANY SENSITIVE FIELDS]"
)

// Header names used by the Congress API
const (
	HeaderAPIToken  = "X-API-Token"
	HeaderRequestID = "X-Request-ID"
)

// sensitiveFields are the JSON fields redacted from debug logs
var sensitiveFields = []string{"appKey", "appSKey", "nwkSKey", "token"}

// redaction pairs a pattern with its replacement
type redaction struct {
	pattern     *regexp.Regexp
	replacement string
}

var defaultRedactions = func() []redaction {
	r := make([]redaction, 0, len(sensitiveFields))
	for _, field := range sensitiveFields {
		r = append(r, redaction{
			pattern:     regexp.MustCompile(`"` + field + `"\s*:\s*"[^"]*"`),
			replacement: `"` + field + `":"[REDACTED]"`,
		})
	}
	return r
}()

// Client represents a connection to the Congress REST API
type Client struct {
	http *resty.Client

	// RWMutex to synchronize access to mutable state
	mu     sync.RWMutex
	closed bool

	// Connection parameters
	Endpoint  string
	UserAgent string
	token     string // unexported for security
	tokenSet  bool

	// Timeout configuration
	OperationTimeout time.Duration

	// Retry configuration
	MaxRetries         int
	BackoffMinDelay    time.Duration
	BackoffMaxDelay    time.Duration
	BackoffDelayFactor float64

	limiter    *rate.Limiter
	httpClient *http.Client
	config     *Config

	// Logging configuration
	logger          Logger
	prettyPrintLogs bool
	redactions      []redaction
}

// NewClient creates a new Congress client with the specified options
//
// Endpoint and token default to the values returned by LoadConfig(""), so a
// client can be created without options when LASSIE_ENDPOINT/LASSIE_TOKEN or
// $HOME/lassie.cfg are set. No request is made during construction.
//
// Example:
//
//	client, err := lassie.NewClient(
//	    lassie.Endpoint("https://api.lora.telenor.io"),
//	    lassie.Token(os.Getenv("LASSIE_TOKEN")),
//	    lassie.MaxRetries(5),
//	)
//	if err != nil {
//	    log.Fatal(err)  // Configuration error
//	}
//	defer client.Close()
//
// Returns a configured Client or an error if configuration validation fails.
func NewClient(opts ...func(*Client)) (*Client, error) {
	client := &Client{
		UserAgent:          DefaultUserAgent,
		OperationTimeout:   DefaultOperationTimeout,
		MaxRetries:         DefaultMaxRetries,
		BackoffMinDelay:    DefaultBackoffMinDelay,
		BackoffMaxDelay:    DefaultBackoffMaxDelay,
		BackoffDelayFactor: DefaultBackoffDelayFactor,
		logger:             &NoOpLogger{},
		prettyPrintLogs:    DefaultPrettyPrintLogs,
		redactions:         defaultRedactions,
	}

	for _, opt := range opts {
		opt(client)
	}

	// Fill endpoint and token from configuration when not set explicitly
	if client.config == nil && (client.Endpoint == "" || !client.tokenSet) {
		cfg, err := LoadConfig("")
		if err != nil {
			return nil, err
		}
		client.config = &cfg
	}
	if client.Endpoint == "" {
		client.Endpoint = client.config.Endpoint
	}
	if !client.tokenSet {
		client.token = client.config.Token
	}
	client.Endpoint = strings.TrimRight(strings.TrimSpace(client.Endpoint), "/")

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	if client.httpClient != nil {
		client.http = resty.NewWithClient(client.httpClient)
	} else {
		client.http = resty.New()
	}

	client.logger.Info(context.Background(), "Congress client created",
		"endpoint", client.Endpoint,
		"token", client.HasToken())

	return client, nil
}

// Close releases idle connections. The client cannot be used afterwards.
//
// Safe to call multiple times (subsequent calls are no-ops).
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.http != nil {
		c.http.GetClient().CloseIdleConnections()
	}

	c.logger.Info(context.Background(), "Congress client closed",
		"endpoint", c.Endpoint)

	return nil
}

// HasToken returns true if an API token is configured
//
// This method only indicates if a token exists without exposing its value.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Backoff calculates the backoff delay for retry attempt using exponential backoff with jitter
//
// The formula is: delay = min(minDelay * (factor ^ attempt) + jitter, maxDelay)
// where jitter is a cryptographically secure random value in [0, delay * 0.1].
// If crypto/rand fails, falls back to timestamp-based jitter.
//
// Parameters:
//   - attempt: The retry attempt number (0-indexed)
//
// Returns the duration to wait before retrying.
func (c *Client) Backoff(attempt int) time.Duration {
	delay := float64(c.BackoffMinDelay) * math.Pow(c.BackoffDelayFactor, float64(attempt))

	if math.IsInf(delay, 1) || delay > float64(c.BackoffMaxDelay) {
		delay = float64(c.BackoffMaxDelay)
	}

	baseDelay := delay

	jitterMax := int64(delay * 0.1)
	var jitterVal int64
	if jitterMax > 0 {
		var jitterBytes [8]byte
		if _, err := rand.Read(jitterBytes[:]); err == nil {
			//nolint:gosec // G115: masked to prevent overflow
			jitterVal = int64(binary.BigEndian.Uint64(jitterBytes[:]) & 0x7FFFFFFFFFFFFFFF)
			jitterVal = jitterVal % jitterMax
			delay += float64(jitterVal)
		} else {
			timestamp := time.Now().UnixNano()
			jitterVal = (timestamp%jitterMax + jitterMax) % jitterMax
			delay += float64(jitterVal)

			c.logger.Warn(context.Background(), "crypto/rand failed, using timestamp-based jitter",
				"error", err.Error(),
				"attempt", attempt,
				"jitter_ms", time.Duration(jitterVal).Milliseconds())
		}
	}

	finalDelay := time.Duration(delay)

	c.logger.Debug(context.Background(), "Backoff calculated",
		"attempt", attempt,
		"base_delay_ms", time.Duration(baseDelay).Milliseconds(),
		"jitter_ms", time.Duration(jitterVal).Milliseconds(),
		"final_delay_ms", finalDelay.Milliseconds())

	return finalDelay
}

// prepareJSONForLogging redacts sensitive data and formats JSON for logging
//
// This method performs security checks and data sanitization:
//  1. Validates JSON size to prevent ReDoS attacks (max 1MB)
//  2. Checks sensitive field count to prevent DoS (max 1000 fields)
//  3. Redacts session keys, application keys and tokens
//  4. Pretty-prints JSON if prettyPrintLogs is enabled
func (c *Client) prepareJSONForLogging(jsonStr string) string {
	if len(jsonStr) > MaxJSONSizeForLogging {
		return JSONTooLargeMessage
	}

	sensitiveCount := 0
	for _, field := range sensitiveFields {
		sensitiveCount += strings.Count(jsonStr, `"`+field+`"`)
	}
	if sensitiveCount > MaxSensitiveFields {
		c.logger.Warn(context.Background(), "Too many sensitive fields detected",
			"count", sensitiveCount,
			"max", MaxSensitiveFields)
		return JSONTooManySensitiveMsg
	}

	redacted := c.redactSensitiveData(jsonStr)

	if c.prettyPrintLogs {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(redacted), "", "  "); err == nil {
			return buf.String()
		} else {
			c.logger.Debug(context.Background(), "JSON pretty-print failed, using raw redacted output",
				"error", err.Error())
		}
	}

	return redacted
}

// redactSensitiveData replaces the values of appKey, appSKey, nwkSKey and
// token fields with [REDACTED]
func (c *Client) redactSensitiveData(json string) string {
	result := json
	for _, r := range c.redactions {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// isTransientStatus checks if an HTTP status code matches TransientErrors
func isTransientStatus(code int) bool {
	for _, pattern := range TransientErrors {
		if pattern.Code == code {
			return true
		}
	}
	return false
}

// checkTransientError checks if a transport error is transient and should be retried
//
// Context cancellation is never transient. Network errors (connection refused,
// resets, per-attempt timeouts) are.
func (c *Client) checkTransientError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		// attempt timeout while the parent context is still alive
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		c.logger.Debug(ctx, "Transport error detected",
			"timeout", netErr.Timeout(),
			"error", err.Error())
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	c.logger.Debug(ctx, "Error is permanent (not transient)",
		"error", err.Error())
	return false
}

// validateConfig validates client configuration
func (c *Client) validateConfig() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint scheme: %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint: missing host")
	}

	if c.OperationTimeout <= 0 {
		return fmt.Errorf("operation timeout must be positive")
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative")
	}
	if c.BackoffMinDelay <= 0 {
		return fmt.Errorf("backoff min delay must be positive")
	}
	if c.BackoffMaxDelay <= c.BackoffMinDelay {
		return fmt.Errorf("backoff max delay (%v) must be greater than min delay (%v)",
			c.BackoffMaxDelay, c.BackoffMinDelay)
	}
	if c.BackoffDelayFactor < 1.0 {
		return fmt.Errorf("backoff delay factor must be >= 1.0")
	}

	if c.token == "" {
		c.logger.Warn(context.Background(), "No API token configured",
			"endpoint", c.Endpoint,
			"message", "server may reject requests")
	}

	return nil
}
