// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// Device activation types
const (
	// OTAA devices join the network over the air
	OTAA = "OTAA"

	// ABP devices are activated by personalization with fixed session keys
	ABP = "ABP"
)

// Device is an end-device registered under an application
//
// Empty identifiers and keys are generated by the server on create.
type Device struct {
	EUI     string `validate:"omitempty,eui"`
	DevAddr string `validate:"omitempty,hexadecimal"`

	// Session and application keys, hex encoded
	AppSKey string `validate:"omitempty,hexadecimal"`
	AppKey  string `validate:"omitempty,hexadecimal"`
	NwkSKey string `validate:"omitempty,hexadecimal"`

	// Frame counters
	FCntUp uint16
	FCntDn uint16

	// RelaxedCounter allows frame counters to reset, e.g. after a device reboot
	RelaxedCounter bool

	// DeviceType is OTAA or ABP
	DeviceType string `validate:"omitempty,oneof=OTAA ABP"`

	// KeyWarning is set by the server when the device keys are considered weak
	KeyWarning bool

	Tags map[string]string
}

// Body encodes the device as a request payload
func (d Device) Body() Body {
	b := Body{}
	for _, f := range []struct{ path, value string }{
		{"deviceEUI", d.EUI},
		{"DevAddr", d.DevAddr},
		{"appSKey", d.AppSKey},
		{"appKey", d.AppKey},
		{"nwkSKey", d.NwkSKey},
		{"deviceType", d.DeviceType},
	} {
		if f.value != "" {
			b = b.Set(f.path, f.value)
		}
	}
	return b.
		Set("fCntUp", d.FCntUp).
		Set("fCntDn", d.FCntDn).
		Set("relaxedCounter", d.RelaxedCounter).
		Set("keyWarning", d.KeyWarning).
		SetTags(d.Tags)
}

func deviceFromJSON(r gjson.Result) Device {
	return Device{
		EUI:            r.Get("deviceEUI").String(),
		DevAddr:        r.Get("DevAddr").String(),
		AppSKey:        r.Get("appSKey").String(),
		AppKey:         r.Get("appKey").String(),
		NwkSKey:        r.Get("nwkSKey").String(),
		FCntUp:         uint16(r.Get("fCntUp").Uint()), //nolint:gosec // G115: counters are 16 bit on the wire
		FCntDn:         uint16(r.Get("fCntDn").Uint()), //nolint:gosec // G115: counters are 16 bit on the wire
		RelaxedCounter: r.Get("relaxedCounter").Bool(),
		DeviceType:     r.Get("deviceType").String(),
		KeyWarning:     r.Get("keyWarning").Bool(),
		Tags:           tagsFromJSON(r.Get("tags")),
	}
}

// CreateDevice registers a device under the application appEUI
//
// Example:
//
//	dev, err := client.CreateDevice(ctx, app.EUI, lassie.Device{DeviceType: lassie.OTAA})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(dev.EUI, dev.AppKey)
func (c *Client) CreateDevice(ctx context.Context, appEUI string, dev Device, mods ...func(*Req)) (Device, error) {
	if err := requireID("application EUI", appEUI); err != nil {
		return Device{}, fmt.Errorf("create device: %w", err)
	}
	if err := Validate(dev); err != nil {
		return Device{}, fmt.Errorf("create device: %w", err)
	}
	body, err := dev.Body().String()
	if err != nil {
		return Device{}, fmt.Errorf("create device: %w", err)
	}
	res, err := c.Post(ctx, resourcePath("applications", appEUI, "devices"), body, mods...)
	if err != nil {
		return Device{}, err
	}
	return decodeOne(res, deviceFromJSON)
}

// UpdateDevice updates the device dev.EUI under the application appEUI
func (c *Client) UpdateDevice(ctx context.Context, appEUI string, dev Device, mods ...func(*Req)) (Device, error) {
	if err := requireID("application EUI", appEUI); err != nil {
		return Device{}, fmt.Errorf("update device: %w", err)
	}
	if err := requireID("device EUI", dev.EUI); err != nil {
		return Device{}, fmt.Errorf("update device: %w", err)
	}
	if err := Validate(dev); err != nil {
		return Device{}, fmt.Errorf("update device: %w", err)
	}
	body, err := dev.Body().String()
	if err != nil {
		return Device{}, fmt.Errorf("update device: %w", err)
	}
	res, err := c.Put(ctx, resourcePath("applications", appEUI, "devices", dev.EUI), body, mods...)
	if err != nil {
		return Device{}, err
	}
	return decodeOne(res, deviceFromJSON)
}

// DeleteDevice removes a device from an application
func (c *Client) DeleteDevice(ctx context.Context, appEUI, devEUI string, mods ...func(*Req)) error {
	if err := requireID("application EUI", appEUI); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	if err := requireID("device EUI", devEUI); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	_, err := c.Delete(ctx, resourcePath("applications", appEUI, "devices", devEUI), mods...)
	return err
}

// ListDevices returns the devices of an application
func (c *Client) ListDevices(ctx context.Context, appEUI string, mods ...func(*Req)) ([]Device, error) {
	if err := requireID("application EUI", appEUI); err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	res, err := c.Get(ctx, resourcePath("applications", appEUI, "devices"), mods...)
	if err != nil {
		return nil, err
	}
	return decodeList(res, envelopeDevices, deviceFromJSON)
}

// GetDevice returns a single device
func (c *Client) GetDevice(ctx context.Context, appEUI, devEUI string, mods ...func(*Req)) (Device, error) {
	if err := requireID("application EUI", appEUI); err != nil {
		return Device{}, fmt.Errorf("get device: %w", err)
	}
	if err := requireID("device EUI", devEUI); err != nil {
		return Device{}, fmt.Errorf("get device: %w", err)
	}
	res, err := c.Get(ctx, resourcePath("applications", appEUI, "devices", devEUI), mods...)
	if err != nil {
		return Device{}, err
	}
	return decodeOne(res, deviceFromJSON)
}
