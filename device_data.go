// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// DeviceData is the metadata and payload of one uplink message
type DeviceData struct {
	DeviceEUI  string
	DevAddr    string
	GatewayEUI string
	AppEUI     string

	// Timestamp is the reception time in milliseconds since the Unix epoch
	Timestamp int64

	// HexData is the hex encoded payload
	HexData string

	Frequency float64
	DataRate  string
	RSSI      int
	SNR       float64
}

// Time returns Timestamp as a time.Time
func (d DeviceData) Time() time.Time {
	return time.UnixMilli(d.Timestamp)
}

// Payload decodes HexData
func (d DeviceData) Payload() ([]byte, error) {
	return hex.DecodeString(d.HexData)
}

func deviceDataFromJSON(r gjson.Result) DeviceData {
	return DeviceData{
		DeviceEUI:  r.Get("deviceEUI").String(),
		DevAddr:    r.Get("devAddr").String(),
		GatewayEUI: r.Get("gatewayEUI").String(),
		AppEUI:     r.Get("appEUI").String(),
		Timestamp:  r.Get("timestamp").Int(),
		HexData:    r.Get("data").String(),
		Frequency:  r.Get("frequency").Float(),
		DataRate:   r.Get("dataRate").String(),
		RSSI:       int(r.Get("rssi").Int()),
		SNR:        r.Get("snr").Float(),
	}
}

// GetDeviceData returns the buffered uplink messages of a device in the
// order the server lists them
func (c *Client) GetDeviceData(ctx context.Context, appEUI, devEUI string, mods ...func(*Req)) ([]DeviceData, error) {
	if err := requireID("application EUI", appEUI); err != nil {
		return nil, fmt.Errorf("get device data: %w", err)
	}
	if err := requireID("device EUI", devEUI); err != nil {
		return nil, fmt.Errorf("get device data: %w", err)
	}
	res, err := c.Get(ctx, resourcePath("applications", appEUI, "devices", devEUI, "data"), mods...)
	if err != nil {
		return nil, err
	}
	return decodeList(res, envelopeMessages, deviceDataFromJSON)
}
