// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

// List envelopes returned by the Congress API
const (
	envelopeApplications = "applications"
	envelopeGateways     = "gateways"
	envelopeDevices      = "devices"
	envelopeMessages     = "messages"
)

// decodeOne decodes a single record from a response body
func decodeOne[T any](res Res, decode func(gjson.Result) T) (T, error) {
	var zero T
	if !gjson.Valid(res.Body) {
		return zero, fmt.Errorf("decode response %s: invalid JSON", res.RequestID)
	}
	return decode(gjson.Parse(res.Body)), nil
}

// decodeList decodes the records listed under envelope in a response body
//
// A missing or null envelope yields an empty, non-nil slice.
func decodeList[T any](res Res, envelope string, decode func(gjson.Result) T) ([]T, error) {
	if !gjson.Valid(res.Body) {
		return nil, fmt.Errorf("decode %s response %s: invalid JSON", envelope, res.RequestID)
	}
	items := gjson.Get(res.Body, envelope).Array()
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, decode(item))
	}
	return out, nil
}

// tagsFromJSON reads a tags object. Non-string values keep their raw text.
func tagsFromJSON(r gjson.Result) map[string]string {
	tags := map[string]string{}
	r.ForEach(func(key, value gjson.Result) bool {
		tags[key.String()] = value.String()
		return true
	})
	return tags
}

// SortedTagKeys returns the keys of tags in ascending order
func SortedTagKeys(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatFloat renders a float without trailing zeros or exponent noise
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
