// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building JSON request payloads
// using sjson for path-based manipulation.
//
// The Body builder tracks the first error internally to enable method chaining.
// Check it through String(), Bytes() or Err().
//
// Example:
//
//	body := lassie.Body{}.
//	    Set("gatewayEUI", "00-11-22-33-44-55-66-77").
//	    Set("ip", "10.0.0.1").
//	    Set("strictIP", false).
//	    SetTags(map[string]string{"name": "rooftop"})
//
//	value, err := body.String()
type Body struct {
	str string
	err error
}

// Set sets a value at the specified JSON path and returns a new Body
//
// The path uses dot notation for nested fields (e.g., "tags.name").
// Once an error occurs, all subsequent operations preserve the error.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result}
}

// SetRaw sets a pre-encoded JSON value at the specified path
func (b Body) SetRaw(path, raw string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.SetRaw(b.str, path, raw)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRaw(%q): %w", path, err)}
	}
	return Body{str: result}
}

// SetFloat sets a number at the specified path. NaN and infinities have no
// JSON form and record an error.
func (b Body) SetFloat(path string, value float64) Body {
	if b.err != nil {
		return b
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Body{str: b.str, err: fmt.Errorf("SetFloat(%q): %v is not a finite number", path, value)}
	}
	return b.SetRaw(path, formatFloat(value))
}

// SetTags writes tags as a JSON object under "tags"
//
// Keys are written in sorted order and may contain characters that are
// special in sjson paths (dots, wildcards). A nil map produces an empty object.
func (b Body) SetTags(tags map[string]string) Body {
	b = b.SetRaw("tags", "{}")
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b = b.Set("tags."+escapePathKey(k), tags[k])
	}
	return b
}

// Delete removes a value at the specified JSON path and returns a new Body
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result}
}

// String returns the JSON string and any error encountered during building
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process
func (b Body) Err() error {
	return b.err
}

// Res returns the JSON string for further processing with gjson.
// Returns an empty string if an error occurred.
func (b Body) Res() string {
	if b.err != nil {
		return ""
	}
	return b.str
}

// Bytes returns the JSON byte slice and any error encountered during building
func (b Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return []byte(b.str), nil
}

// escapePathKey escapes characters with special meaning in gjson/sjson paths
func escapePathKey(key string) string {
	if !strings.ContainsAny(key, `.*?|#@!\:`) {
		return key
	}
	var builder strings.Builder
	builder.Grow(len(key) + 4)
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '\\', ':':
			builder.WriteRune('\\')
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
