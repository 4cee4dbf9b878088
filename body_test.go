// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"math"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

// TestBodySet tests basic Set operation
func TestBodySet(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		value    any
		wantJSON string
	}{
		{
			name:     "set string value",
			path:     "gatewayEUI",
			value:    "00-11-22-33-44-55-66-77",
			wantJSON: `{"gatewayEUI":"00-11-22-33-44-55-66-77"}`,
		},
		{
			name:     "set boolean value",
			path:     "strictIP",
			value:    true,
			wantJSON: `{"strictIP":true}`,
		},
		{
			name:     "set integer value",
			path:     "fCntUp",
			value:    42,
			wantJSON: `{"fCntUp":42}`,
		},
		{
			name:     "set nested value",
			path:     "tags.name",
			value:    "rooftop",
			wantJSON: `{"tags":{"name":"rooftop"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			json, err := Body{}.Set(tt.path, tt.value).String()
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if json != tt.wantJSON {
				t.Errorf("Expected JSON %s, got %s", tt.wantJSON, json)
			}
		})
	}
}

// TestBodySetRaw tests that raw JSON is inserted verbatim
func TestBodySetRaw(t *testing.T) {
	json, err := Body{}.SetRaw("latitude", "63.43").SetRaw("tags", `{"a":"b"}`).String()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if json != `{"latitude":63.43,"tags":{"a":"b"}}` {
		t.Errorf("Unexpected JSON: %s", json)
	}
}

// TestBodySetFloat tests number encoding and rejection of non-finite values
func TestBodySetFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		want    string
		wantErr bool
	}{
		{"integer", 12, `{"altitude":12}`, false},
		{"fraction", 63.4305, `{"altitude":63.4305}`, false},
		{"negative", -0.5, `{"altitude":-0.5}`, false},
		{"NaN", math.NaN(), "", true},
		{"positive infinity", math.Inf(1), "", true},
		{"negative infinity", math.Inf(-1), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Body{}.SetFloat("altitude", tt.value).String()
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetFloat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("SetFloat() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestBodySetTags tests tag encoding, including keys with path metacharacters
func TestBodySetTags(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want map[string]string
	}{
		{
			name: "nil map",
			tags: nil,
			want: map[string]string{},
		},
		{
			name: "plain keys",
			tags: map[string]string{"name": "sensor", "room": "2.14"},
			want: map[string]string{"name": "sensor", "room": "2.14"},
		},
		{
			name: "special keys",
			tags: map[string]string{"a.b": "dot", "w*": "star", "q?": "question", "x|y": "pipe", "#": "hash"},
			want: map[string]string{"a.b": "dot", "w*": "star", "q?": "question", "x|y": "pipe", "#": "hash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			json, err := Body{}.SetTags(tt.tags).String()
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			got := tagsFromJSON(gjson.Get(json, "tags"))
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d tags, got %d (%s)", len(tt.want), len(got), json)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("tag %q: expected %q, got %q (%s)", k, v, got[k], json)
				}
			}
		})
	}
}

// TestBodySetTagsSorted tests that tags are written in key order
func TestBodySetTagsSorted(t *testing.T) {
	json, err := Body{}.SetTags(map[string]string{"b": "2", "c": "3", "a": "1"}).String()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if json != `{"tags":{"a":"1","b":"2","c":"3"}}` {
		t.Errorf("Expected sorted tags, got %s", json)
	}
}

// TestBodyDelete tests Delete operation
func TestBodyDelete(t *testing.T) {
	json, err := Body{}.
		Set("deviceEUI", "00-00-00-00-00-00-00-01").
		Set("appKey", "temp").
		Set("relaxedCounter", true).
		Delete("appKey").
		String()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if strings.Contains(json, "appKey") {
		t.Errorf("Expected appKey to be deleted, got: %s", json)
	}
	if !strings.Contains(json, `"relaxedCounter":true`) {
		t.Errorf("Expected relaxedCounter field to remain")
	}
}

// TestBodyErrorPropagation tests that first error is captured and subsequent operations are no-ops
func TestBodyErrorPropagation(t *testing.T) {
	body := Body{}.
		Set("ip", "10.0.0.1").
		Set("", "invalid-empty-path").
		Set("strictIP", true)

	_, err := body.String()
	if err == nil {
		t.Fatal("Expected error from empty path, got nil")
	}
	if !strings.Contains(err.Error(), "Set") {
		t.Errorf("Expected error message to contain 'Set', got: %v", err)
	}
	if body.Err() == nil {
		t.Error("Expected Err() to return the error")
	}

	json, _ := body.String() //nolint:errcheck // Error intentionally ignored in test
	if !strings.Contains(json, "10.0.0.1") {
		t.Errorf("Expected JSON to contain ip (set before error)")
	}
	if strings.Contains(json, "strictIP") {
		t.Errorf("Expected JSON to NOT contain strictIP (set after error)")
	}
	if body.Res() != "" {
		t.Errorf("Expected Res() to be empty after error, got %s", body.Res())
	}
	if b, err := body.Bytes(); err == nil || b != nil {
		t.Errorf("Expected Bytes() to fail after error")
	}
	if _, err := body.SetTags(map[string]string{"a": "b"}).String(); err == nil {
		t.Error("Expected SetTags to preserve error")
	}
}

// TestBodyImmutability tests that Body operations return new instances
func TestBodyImmutability(t *testing.T) {
	base := Body{}.Set("applicationEUI", "A1")
	withTags := base.SetTags(map[string]string{"name": "foo"})

	if strings.Contains(base.Res(), "tags") {
		t.Errorf("Expected base body to stay unchanged, got %s", base.Res())
	}
	if !strings.Contains(withTags.Res(), `"name":"foo"`) {
		t.Errorf("Expected derived body to contain tags, got %s", withTags.Res())
	}
}

// TestBodyBytes tests the Bytes method
func TestBodyBytes(t *testing.T) {
	b, err := Body{}.Set("ip", "10.0.0.1").Bytes()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(b) != `{"ip":"10.0.0.1"}` {
		t.Errorf("Unexpected bytes: %s", b)
	}
}

// TestEscapePathKey tests escaping of gjson/sjson path metacharacters
func TestEscapePathKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "name"},
		{"a.b", `a\.b`},
		{"*?", `\*\?`},
		{`x\y`, `x\\y`},
		{"a:b|c#d@e!f", `a\:b\|c\#d\@e\!f`},
	}

	for _, tt := range tests {
		if got := escapePathKey(tt.in); got != tt.want {
			t.Errorf("escapePathKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
