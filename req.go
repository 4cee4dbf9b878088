// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"time"

	"github.com/google/uuid"
)

// Req represents a request modifier target
//
// This struct is used to apply request-specific options via functional modifiers.
// Operation parameters (paths, records) are passed directly to methods.
//
// Example:
//
//	apps, err := client.ListApplications(ctx,
//	    lassie.Timeout(30*time.Second),
//	    lassie.RequestID("3e4f..."))
type Req struct {
	// Timeout is the request-specific timeout
	// Overrides client default timeout if set
	Timeout time.Duration

	// RequestID is sent as X-Request-ID; generated when empty
	RequestID string
}

// newReq applies modifiers on top of the defaults
func newReq(mods []func(*Req)) *Req {
	req := &Req{}
	for _, mod := range mods {
		mod(req)
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	return req
}
