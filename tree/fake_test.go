// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package tree

import (
	"context"
	"sync"

	"github.com/netascode/go-lassie"
)

// fakeClient serves canned records. Successive ListApplications calls walk
// through appsSeq, repeating the last entry.
type fakeClient struct {
	mu sync.Mutex

	appsSeq  [][]lassie.Application
	devices  map[string][]lassie.Device
	gateways []lassie.Gateway
	data     map[string][]lassie.DeviceData

	err   error
	calls map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		devices: map[string][]lassie.Device{},
		data:    map[string][]lassie.DeviceData{},
		calls:   map[string]int{},
	}
}

func (f *fakeClient) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeClient) record(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.calls[op]
}

func (f *fakeClient) ListApplications(_ context.Context, _ ...func(*lassie.Req)) ([]lassie.Application, error) {
	n := f.record("ListApplications")
	if f.err != nil {
		return nil, f.err
	}
	if len(f.appsSeq) == 0 {
		return nil, nil
	}
	if n > len(f.appsSeq) {
		n = len(f.appsSeq)
	}
	return f.appsSeq[n-1], nil
}

func (f *fakeClient) ListDevices(_ context.Context, appEUI string, _ ...func(*lassie.Req)) ([]lassie.Device, error) {
	f.record("ListDevices")
	if f.err != nil {
		return nil, f.err
	}
	return f.devices[appEUI], nil
}

func (f *fakeClient) ListGateways(_ context.Context, _ ...func(*lassie.Req)) ([]lassie.Gateway, error) {
	f.record("ListGateways")
	if f.err != nil {
		return nil, f.err
	}
	return f.gateways, nil
}

func (f *fakeClient) GetDeviceData(_ context.Context, appEUI, devEUI string, _ ...func(*lassie.Req)) ([]lassie.DeviceData, error) {
	f.record("GetDeviceData")
	if f.err != nil {
		return nil, f.err
	}
	return f.data[appEUI+"/"+devEUI], nil
}
