// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/netascode/go-lassie"
)

// Names of the fixed nodes
const (
	ApplicationsName = "applications"
	GatewaysName     = "gateways"
	DevicesName      = "devices"
	MessagesName     = "messages"
)

// ResourceClient is the part of the Congress API the tree reads from.
// *lassie.Client satisfies it.
type ResourceClient interface {
	ListApplications(ctx context.Context, mods ...func(*lassie.Req)) ([]lassie.Application, error)
	ListDevices(ctx context.Context, appEUI string, mods ...func(*lassie.Req)) ([]lassie.Device, error)
	ListGateways(ctx context.Context, mods ...func(*lassie.Req)) ([]lassie.Gateway, error)
	GetDeviceData(ctx context.Context, appEUI, devEUI string, mods ...func(*lassie.Req)) ([]lassie.DeviceData, error)
}

var _ ResourceClient = (*lassie.Client)(nil)

// newRoot builds the root node with its fixed applications and gateways children
func newRoot(client ResourceClient) *Node {
	root := NewNode("", nil, nil)
	root.kind = fixedKind{children: []*Node{
		NewNode(ApplicationsName, root, applicationsKind{client: client}),
		NewNode(GatewaysName, root, gatewaysKind{client: client}),
	}}
	return root
}

// fixedKind returns the same child nodes on every call
type fixedKind struct {
	children []*Node
}

func (k fixedKind) Children(context.Context, *Node) ([]*Node, error) {
	return append([]*Node(nil), k.children...), nil
}

func (fixedKind) Attributes(context.Context) ([]string, error) {
	return nil, nil
}

// noAttributes is embedded by collection kinds
type noAttributes struct{}

func (noAttributes) Attributes(context.Context) ([]string, error) {
	return nil, nil
}

// noChildren is embedded by leaf kinds
type noChildren struct{}

func (noChildren) Children(context.Context, *Node) ([]*Node, error) {
	return nil, nil
}

type applicationsKind struct {
	noAttributes
	client ResourceClient
}

func (k applicationsKind) Children(ctx context.Context, n *Node) ([]*Node, error) {
	apps, err := k.client.ListApplications(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]*Node, 0, len(apps))
	for _, app := range apps {
		nodes = append(nodes, NewNode(app.EUI, n, applicationKind{client: k.client, app: app}))
	}
	return nodes, nil
}

type applicationKind struct {
	client ResourceClient
	app    lassie.Application
}

func (k applicationKind) Children(ctx context.Context, n *Node) ([]*Node, error) {
	return Static{
		Names: []string{DevicesName},
		Kinds: []Kind{devicesKind{client: k.client, appEUI: k.app.EUI}},
	}.Children(ctx, n)
}

func (k applicationKind) Attributes(context.Context) ([]string, error) {
	attrs := []string{fmt.Sprintf("applicationEUI: %s", k.app.EUI)}
	return append(attrs, tagLines(k.app.Tags)...), nil
}

type devicesKind struct {
	noAttributes
	client ResourceClient
	appEUI string
}

func (k devicesKind) Children(ctx context.Context, n *Node) ([]*Node, error) {
	devices, err := k.client.ListDevices(ctx, k.appEUI)
	if err != nil {
		return nil, err
	}
	nodes := make([]*Node, 0, len(devices))
	for _, dev := range devices {
		nodes = append(nodes, NewNode(dev.EUI, n, deviceKind{client: k.client, appEUI: k.appEUI, device: dev}))
	}
	return nodes, nil
}

type deviceKind struct {
	client ResourceClient
	appEUI string
	device lassie.Device
}

func (k deviceKind) Children(ctx context.Context, n *Node) ([]*Node, error) {
	return Static{
		Names: []string{MessagesName},
		Kinds: []Kind{messagesKind{client: k.client, appEUI: k.appEUI, devEUI: k.device.EUI}},
	}.Children(ctx, n)
}

func (k deviceKind) Attributes(context.Context) ([]string, error) {
	d := k.device
	return []string{
		labelLine("DeviceType:", d.DeviceType),
		labelLine("DeviceEUI:", d.EUI),
		labelLine("DevAddr:", d.DevAddr),
		labelLine("AppSKey:", d.AppSKey),
		labelLine("NwkSKey:", d.NwkSKey),
		labelLine("AppKey:", d.AppKey),
		labelLine("FCntUp:", d.FCntUp),
		labelLine("FCntDn:", d.FCntDn),
		labelLine("RelaxedCounter:", d.RelaxedCounter),
		labelLine("KeyWarning:", d.KeyWarning),
	}, nil
}

type messagesKind struct {
	noChildren
	client ResourceClient
	appEUI string
	devEUI string
}

func (k messagesKind) Attributes(ctx context.Context) ([]string, error) {
	data, err := k.client.GetDeviceData(ctx, k.appEUI, k.devEUI)
	if err != nil {
		return nil, err
	}
	attrs := make([]string, 0, len(data)+1)
	attrs = append(attrs, MessageRow("Data", "RSSI", "SNR", "Freq"))
	for _, d := range data {
		attrs = append(attrs, MessageRow(d.HexData, d.RSSI, d.SNR, d.Frequency))
	}
	return attrs, nil
}

type gatewaysKind struct {
	noAttributes
	client ResourceClient
}

func (k gatewaysKind) Children(ctx context.Context, n *Node) ([]*Node, error) {
	gateways, err := k.client.ListGateways(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]*Node, 0, len(gateways))
	for _, gw := range gateways {
		nodes = append(nodes, NewNode(gw.EUI, n, gatewayKind{gateway: gw}))
	}
	return nodes, nil
}

type gatewayKind struct {
	noChildren
	gateway lassie.Gateway
}

func (k gatewayKind) Attributes(context.Context) ([]string, error) {
	gw := k.gateway
	attrs := []string{
		fmt.Sprintf("GatewayEUI: %s", gw.EUI),
		fmt.Sprintf("IP: %s", gw.IP),
		fmt.Sprintf("StrictIP: %t", gw.StrictIP),
		fmt.Sprintf("Latitude: %v", gw.Latitude),
		fmt.Sprintf("Longitude: %v", gw.Longitude),
		fmt.Sprintf("Altitude: %v", gw.Altitude),
	}
	return append(attrs, tagLines(gw.Tags)...), nil
}

// tagLines renders a "Tags:" heading followed by "key = value" lines in key order
func tagLines(tags map[string]string) []string {
	lines := make([]string, 0, len(tags)+1)
	lines = append(lines, "Tags:")
	for _, k := range lassie.SortedTagKeys(tags) {
		lines = append(lines, fmt.Sprintf("%s = %s", k, tags[k]))
	}
	return lines
}

// labelLine pads the label so values line up in a column
func labelLine(label string, value any) string {
	return fmt.Sprintf("%-16s%v", label, value)
}

// MessageRow formats one row of the messages table: payload, RSSI, SNR and
// frequency in fixed width columns
func MessageRow(data, rssi, snr, freq any) string {
	return strings.TrimRight(fmt.Sprintf("%-40v %-20v %-10v %-10v", data, rssi, snr, freq), " ")
}
