// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"github.com/tidwall/gjson"
)

// Res represents a Congress API response
type Res struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Body is the raw JSON response body
	Body string

	// RequestID is the X-Request-ID sent with the request
	RequestID string

	// Timestamp is the response timestamp (nanoseconds since Unix epoch)
	Timestamp int64

	// OK indicates if the operation succeeded
	OK bool

	// Errors contains any error information
	Errors []ErrorModel
}

// GetValue retrieves a value from the response body using a gjson path.
//
// Example paths:
//   - "applicationEUI" - identifier of a single application
//   - "applications.#" - number of listed applications
//   - "applications.0.tags.name" - name tag of the first application
//
// Example:
//
//	res, err := client.Get(ctx, "/applications")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	count := res.GetValue("applications.#").Int()
func (r Res) GetValue(path string) gjson.Result {
	if r.Body == "" {
		return gjson.Result{}
	}
	return gjson.Get(r.Body, path)
}

// JSON returns the raw response body.
// Returns an empty string for responses without content (e.g. 204).
func (r Res) JSON() string {
	return r.Body
}
