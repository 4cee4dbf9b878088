// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// Gateway is a LoRaWAN radio gateway
type Gateway struct {
	// EUI identifies the gateway and is chosen by the owner
	EUI string `validate:"required,eui"`

	// IP is the address the gateway connects from
	IP string `validate:"omitempty,ip"`

	// StrictIP rejects packets from addresses other than IP
	StrictIP bool

	Latitude  float64 `validate:"finite,gte=-90,lte=90"`
	Longitude float64 `validate:"finite,gte=-180,lte=180"`
	Altitude  float64 `validate:"finite"`

	Tags map[string]string
}

// Body encodes the gateway as a request payload
func (g Gateway) Body() Body {
	return Body{}.
		Set("gatewayEUI", g.EUI).
		Set("ip", g.IP).
		Set("strictIP", g.StrictIP).
		SetFloat("latitude", g.Latitude).
		SetFloat("longitude", g.Longitude).
		SetFloat("altitude", g.Altitude).
		SetTags(g.Tags)
}

func gatewayFromJSON(r gjson.Result) Gateway {
	return Gateway{
		EUI:       r.Get("gatewayEUI").String(),
		IP:        r.Get("ip").String(),
		StrictIP:  r.Get("strictIP").Bool(),
		Latitude:  r.Get("latitude").Float(),
		Longitude: r.Get("longitude").Float(),
		Altitude:  r.Get("altitude").Float(),
		Tags:      tagsFromJSON(r.Get("tags")),
	}
}

// CreateGateway registers a gateway
func (c *Client) CreateGateway(ctx context.Context, gw Gateway, mods ...func(*Req)) (Gateway, error) {
	if err := Validate(gw); err != nil {
		return Gateway{}, fmt.Errorf("create gateway: %w", err)
	}
	body, err := gw.Body().String()
	if err != nil {
		return Gateway{}, fmt.Errorf("create gateway: %w", err)
	}
	res, err := c.Post(ctx, resourcePath("gateways"), body, mods...)
	if err != nil {
		return Gateway{}, err
	}
	return decodeOne(res, gatewayFromJSON)
}

// UpdateGateway updates an existing gateway identified by gw.EUI
func (c *Client) UpdateGateway(ctx context.Context, gw Gateway, mods ...func(*Req)) (Gateway, error) {
	if err := requireID("gateway EUI", gw.EUI); err != nil {
		return Gateway{}, fmt.Errorf("update gateway: %w", err)
	}
	if err := Validate(gw); err != nil {
		return Gateway{}, fmt.Errorf("update gateway: %w", err)
	}
	body, err := gw.Body().String()
	if err != nil {
		return Gateway{}, fmt.Errorf("update gateway: %w", err)
	}
	res, err := c.Put(ctx, resourcePath("gateways", gw.EUI), body, mods...)
	if err != nil {
		return Gateway{}, err
	}
	return decodeOne(res, gatewayFromJSON)
}

// DeleteGateway removes a gateway
func (c *Client) DeleteGateway(ctx context.Context, eui string, mods ...func(*Req)) error {
	if err := requireID("gateway EUI", eui); err != nil {
		return fmt.Errorf("delete gateway: %w", err)
	}
	_, err := c.Delete(ctx, resourcePath("gateways", eui), mods...)
	return err
}

// ListGateways returns all gateways visible to the token
func (c *Client) ListGateways(ctx context.Context, mods ...func(*Req)) ([]Gateway, error) {
	res, err := c.Get(ctx, resourcePath("gateways"), mods...)
	if err != nil {
		return nil, err
	}
	return decodeList(res, envelopeGateways, gatewayFromJSON)
}

// GetGateway returns a single gateway
func (c *Client) GetGateway(ctx context.Context, eui string, mods ...func(*Req)) (Gateway, error) {
	if err := requireID("gateway EUI", eui); err != nil {
		return Gateway{}, fmt.Errorf("get gateway: %w", err)
	}
	res, err := c.Get(ctx, resourcePath("gateways", eui), mods...)
	if err != nil {
		return Gateway{}, err
	}
	return decodeOne(res, gatewayFromJSON)
}
