// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Input validation constants
const (
	// MaxBodySize is the maximum size of a request body in bytes (1MB)
	MaxBodySize = 1 * 1024 * 1024

	// MaxPathLength is the maximum length of a request path
	MaxPathLength = 1024

	// maxErrorMessageLength caps response bodies copied into LassieError
	maxErrorMessageLength = 512
)

// validatePath validates a request path
//
// Checks:
//   - Path is not empty and starts with "/"
//   - Path length does not exceed MaxPathLength
//   - Path does not contain null bytes or traversal segments
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return fmt.Errorf("path exceeds maximum length of %d characters: %s", MaxPathLength, truncatePath(path))
	}
	if path[0] != '/' {
		return fmt.Errorf("path must start with '/': %s", truncatePath(path))
	}
	return checkPathSecurity(path)
}

// checkPathSecurity checks a path for null bytes and traversal segments
func checkPathSecurity(path string) error {
	if i := strings.IndexByte(path, 0); i >= 0 {
		return fmt.Errorf("path contains null byte at position %d", i)
	}
	p := path
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." || segment == "." {
			return fmt.Errorf("path contains traversal segment %q", segment)
		}
	}
	return nil
}

// validateBody checks size and JSON syntax of a request body
func validateBody(body string) error {
	if len(body) > MaxBodySize {
		return fmt.Errorf("body size exceeds maximum of %d bytes (got %d bytes)", MaxBodySize, len(body))
	}
	if body != "" && !gjson.Valid(body) {
		return fmt.Errorf("invalid JSON syntax")
	}
	return nil
}

// truncatePath truncates a path for error messages
func truncatePath(path string) string {
	if len(path) <= 100 {
		return path
	}
	return path[:100] + "..."
}

// resourcePath joins escaped identifiers into an API path
//
// Example: resourcePath("applications", eui, "devices") -> /applications/<eui>/devices
func resourcePath(segments ...string) string {
	var builder strings.Builder
	for _, s := range segments {
		builder.WriteByte('/')
		builder.WriteString(url.PathEscape(s))
	}
	return builder.String()
}

// requireID rejects empty identifiers before any request is made
func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	return nil
}

// Get performs a GET request and expects 200 OK
//
// Example:
//
//	res, err := client.Get(ctx, "/gateways")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, gw := range res.GetValue("gateways").Array() {
//	    fmt.Println(gw.Get("gatewayEUI").String())
//	}
func (c *Client) Get(ctx context.Context, path string, mods ...func(*Req)) (Res, error) {
	return c.do(ctx, http.MethodGet, path, "", http.StatusOK, mods)
}

// Post performs a POST request with a JSON body and expects 201 Created
func (c *Client) Post(ctx context.Context, path, body string, mods ...func(*Req)) (Res, error) {
	return c.do(ctx, http.MethodPost, path, body, http.StatusCreated, mods)
}

// Put performs a PUT request with a JSON body and expects 200 OK
func (c *Client) Put(ctx context.Context, path, body string, mods ...func(*Req)) (Res, error) {
	return c.do(ctx, http.MethodPut, path, body, http.StatusOK, mods)
}

// Delete performs a DELETE request and expects 204 No Content
func (c *Client) Delete(ctx context.Context, path string, mods ...func(*Req)) (Res, error) {
	return c.do(ctx, http.MethodDelete, path, "", http.StatusNoContent, mods)
}

// do executes a request with retry logic
//
// Transient statuses and transport errors are retried up to MaxRetries times
// with exponential backoff. POST is only retried on 429 and 503. Any status
// other than expect fails the operation with a *LassieError.
//
// Context timeout follows priority:
//  1. Request-specific timeout (via Timeout modifier)
//  2. Context deadline (if already set)
//  3. Client.OperationTimeout (fallback default)
//
//nolint:gocyclo // Retry loop naturally has high complexity
func (c *Client) do(ctx context.Context, method, path, body string, expect int, mods []func(*Req)) (Res, error) {
	op := method + " " + path

	if err := validatePath(path); err != nil {
		return failedRes(0, err.Error()), fmt.Errorf("%s: %w", strings.ToLower(method), err)
	}
	if err := validateBody(body); err != nil {
		return failedRes(0, err.Error()), fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}

	req := newReq(mods)

	if err := checkContextCancellation(ctx); err != nil {
		return failedRes(0, err.Error()), fmt.Errorf("%s: %w", op, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed || c.http == nil {
		return failedRes(0, ErrClientClosed.Error()), fmt.Errorf("%s: %w", op, ErrClientClosed)
	}

	totalTimeout := c.calculateTotalTimeout(req)
	ctx, parentCancel := context.WithTimeout(ctx, totalTimeout)
	defer parentCancel()

	c.logger.Debug(ctx, "Congress request",
		"method", method,
		"path", path,
		"request_id", req.RequestID,
		"total_timeout", totalTimeout.String())
	if body != "" {
		c.logger.Debug(ctx, "Congress request body",
			"request_id", req.RequestID,
			"body", c.prepareJSONForLogging(body))
	}

	var (
		resp      *resty.Response
		lastErr   error
		transient bool
		attempt   int
	)

	for attempt = 0; attempt <= c.MaxRetries; attempt++ {
		if err := checkContextCancellation(ctx); err != nil {
			c.logger.Debug(ctx, "request canceled",
				"operation", op,
				"attempt", attempt,
				"error", err.Error())
			return failedRes(0, err.Error()), fmt.Errorf("%s: %w", op, err)
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return failedRes(0, err.Error()), fmt.Errorf("%s: rate limit wait: %w", op, err)
			}
		}

		attemptCtx, attemptCancel := c.createAttemptContext(ctx, req)
		r := c.http.R().
			SetContext(attemptCtx).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", c.UserAgent).
			SetHeader(HeaderRequestID, req.RequestID)
		if c.token != "" {
			r.SetHeader(HeaderAPIToken, c.token)
		}
		if body != "" {
			r.SetHeader("Content-Type", "application/json").SetBody(body)
		}

		attemptResp, err := r.Execute(method, c.Endpoint+path)

		// resty buffers the body, so the attempt context can go right away
		attemptCancel()

		resp, lastErr = attemptResp, err
		if err == nil && attemptResp.StatusCode() == expect {
			break
		}

		if err != nil {
			transient = c.checkTransientError(ctx, err)
		} else {
			transient = isTransientStatus(attemptResp.StatusCode())
		}

		if !transient || attempt >= c.MaxRetries || !retryable(method, err, attemptResp) {
			break
		}

		backoff := c.Backoff(attempt)
		reason := ""
		if err != nil {
			reason = err.Error()
		} else {
			reason = attemptResp.Status()
		}
		c.logger.Warn(ctx, "transient error, retrying",
			"operation", op,
			"attempt", attempt+1,
			"max_retries", c.MaxRetries,
			"backoff", backoff,
			"error", reason)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			c.logger.Debug(ctx, "request canceled during backoff",
				"operation", op,
				"attempt", attempt+1)
			return failedRes(0, ctx.Err().Error()),
				fmt.Errorf("%s: context canceled during backoff: %w", op, ctx.Err())
		}
	}

	if lastErr != nil {
		c.logger.Error(ctx, "Congress request failed",
			"operation", op,
			"request_id", req.RequestID,
			"error", lastErr.Error())
		return failedRes(0, lastErr.Error()), &LassieError{
			Operation:   op,
			Message:     lastErr.Error(),
			Retries:     attempt,
			IsTransient: transient,
			Err:         lastErr,
		}
	}

	status := resp.StatusCode()
	respBody := resp.String()

	if status != expect {
		msg := errorMessage(respBody)
		c.logger.Error(ctx, "Congress request failed",
			"operation", op,
			"request_id", req.RequestID,
			"status", status,
			"message", msg)
		res := failedRes(status, msg)
		res.Body = respBody
		res.RequestID = req.RequestID
		return res, &LassieError{
			Operation:   op,
			StatusCode:  status,
			Message:     msg,
			InternalMsg: fmt.Sprintf("request_id=%s expected=%d", req.RequestID, expect),
			Retries:     attempt,
			IsTransient: isTransientStatus(status),
		}
	}

	c.logger.Debug(ctx, "Congress response",
		"operation", op,
		"request_id", req.RequestID,
		"status", status,
		"body", c.prepareJSONForLogging(respBody))

	return Res{
		StatusCode: status,
		Body:       respBody,
		RequestID:  req.RequestID,
		Timestamp:  time.Now().UnixNano(),
		OK:         true,
	}, nil
}

// retryable reports whether a transient failure may be sent again
//
// POST creates records and is not idempotent: a dropped connection or a
// gateway error may hide a committed create, so it is only retried when the
// server refused it outright (429, 503).
func retryable(method string, err error, resp *resty.Response) bool {
	if method != http.MethodPost {
		return true
	}
	if err != nil || resp == nil {
		return false
	}
	switch resp.StatusCode() {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// failedRes builds the Res returned alongside an error
func failedRes(code int, msg string) Res {
	return Res{
		StatusCode: code,
		OK:         false,
		Errors:     []ErrorModel{{Code: code, Message: msg}},
	}
}

// errorMessage extracts a short message from an error response body
//
// JSON bodies with a "message" field yield that field, others are used as is.
func errorMessage(body string) string {
	msg := strings.TrimSpace(body)
	if gjson.Valid(msg) {
		if m := gjson.Get(msg, "message"); m.Exists() {
			msg = m.String()
		}
	}
	if len(msg) > maxErrorMessageLength {
		msg = msg[:maxErrorMessageLength] + "..."
	}
	return msg
}

// Internal helper methods

// calculateTotalTimeout calculates the total timeout for all retry attempts
//
// Formula: max(Req.Timeout, OperationTimeout) + sum(Backoff(0), ..., Backoff(MaxRetries))
func (c *Client) calculateTotalTimeout(req *Req) time.Duration {
	base := c.OperationTimeout
	if req != nil && req.Timeout > base {
		base = req.Timeout
	}
	totalBackoff := time.Duration(0)
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		totalBackoff += c.Backoff(attempt)
	}
	return base + totalBackoff
}

// checkContextCancellation checks if context is canceled or deadline exceeded
//
// Returns context.Canceled, context.DeadlineExceeded, or nil.
func checkContextCancellation(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// createAttemptContext creates a new context for a single retry attempt with timeout
//
// Timeout priority model:
//  1. Request-specific timeout (req.Timeout > 0) - highest priority
//  2. Existing context deadline (ctx.Deadline() set) - medium priority
//  3. Client default timeout (c.OperationTimeout) - fallback
//
// Caller MUST call the returned cancel function after the attempt completes.
func (c *Client) createAttemptContext(ctx context.Context, req *Req) (context.Context, context.CancelFunc) {
	if req.Timeout > 0 {
		if req.Timeout < time.Second {
			c.logger.Warn(ctx, "request timeout is very short (may not complete)",
				"timeout", req.Timeout.String(),
				"endpoint", c.Endpoint)
		} else if req.Timeout > 5*time.Minute {
			c.logger.Warn(ctx, "request timeout is very long (may delay error detection)",
				"timeout", req.Timeout.String(),
				"endpoint", c.Endpoint)
		}
		return context.WithTimeout(ctx, req.Timeout)
	}

	if deadline, hasDeadline := ctx.Deadline(); hasDeadline && time.Until(deadline) < c.OperationTimeout {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.OperationTimeout)
}
