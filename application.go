// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// Application is a logical grouping of devices
type Application struct {
	// EUI is assigned by the server when an application is created without one
	EUI string `validate:"omitempty,eui"`

	// Tags are free-form key/value annotations
	Tags map[string]string
}

// Body encodes the application as a request payload
func (a Application) Body() Body {
	b := Body{}
	if a.EUI != "" {
		b = b.Set("applicationEUI", a.EUI)
	}
	return b.SetTags(a.Tags)
}

func applicationFromJSON(r gjson.Result) Application {
	return Application{
		EUI:  r.Get("applicationEUI").String(),
		Tags: tagsFromJSON(r.Get("tags")),
	}
}

// CreateApplication creates an application and returns it as stored by the server
//
// Example:
//
//	app, err := client.CreateApplication(ctx, lassie.Application{
//	    Tags: map[string]string{"name": "weather stations"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(app.EUI)
func (c *Client) CreateApplication(ctx context.Context, app Application, mods ...func(*Req)) (Application, error) {
	if err := Validate(app); err != nil {
		return Application{}, fmt.Errorf("create application: %w", err)
	}
	body, err := app.Body().String()
	if err != nil {
		return Application{}, fmt.Errorf("create application: %w", err)
	}
	res, err := c.Post(ctx, resourcePath("applications"), body, mods...)
	if err != nil {
		return Application{}, err
	}
	return decodeOne(res, applicationFromJSON)
}

// UpdateApplication replaces the tags of an existing application
func (c *Client) UpdateApplication(ctx context.Context, app Application, mods ...func(*Req)) (Application, error) {
	if err := requireID("application EUI", app.EUI); err != nil {
		return Application{}, fmt.Errorf("update application: %w", err)
	}
	if err := Validate(app); err != nil {
		return Application{}, fmt.Errorf("update application: %w", err)
	}
	body, err := app.Body().String()
	if err != nil {
		return Application{}, fmt.Errorf("update application: %w", err)
	}
	res, err := c.Put(ctx, resourcePath("applications", app.EUI), body, mods...)
	if err != nil {
		return Application{}, err
	}
	return decodeOne(res, applicationFromJSON)
}

// DeleteApplication removes an application
func (c *Client) DeleteApplication(ctx context.Context, eui string, mods ...func(*Req)) error {
	if err := requireID("application EUI", eui); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	_, err := c.Delete(ctx, resourcePath("applications", eui), mods...)
	return err
}

// ListApplications returns all applications visible to the token
func (c *Client) ListApplications(ctx context.Context, mods ...func(*Req)) ([]Application, error) {
	res, err := c.Get(ctx, resourcePath("applications"), mods...)
	if err != nil {
		return nil, err
	}
	return decodeList(res, envelopeApplications, applicationFromJSON)
}

// GetApplication returns a single application
func (c *Client) GetApplication(ctx context.Context, eui string, mods ...func(*Req)) (Application, error) {
	if err := requireID("application EUI", eui); err != nil {
		return Application{}, fmt.Errorf("get application: %w", err)
	}
	res, err := c.Get(ctx, resourcePath("applications", eui), mods...)
	if err != nil {
		return Application{}, err
	}
	return decodeOne(res, applicationFromJSON)
}
