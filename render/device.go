// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: turtle RECEIVES the device from the host, it does NOT
// create one. The canvas texture, pipelines and buffers are allocated on
// the host's device so the composite pass can draw straight into the
// host's surface.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// ErrNoHALAccess is returned when a DeviceHandle does not expose the
// wgpu HAL device and queue.
var ErrNoHALAccess = errors.New("render: provider does not expose HAL device and queue")

// halProvider is implemented by hosts (e.g. gogpu) that expose their
// wgpu HAL objects next to the type-token interfaces of gpucontext.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// HALDevice extracts the hal.Device and hal.Queue behind a DeviceHandle.
// It returns ErrNoHALAccess if the handle does not implement
// HalDevice() any and HalQueue() any with HAL values.
func HALDevice(h DeviceHandle) (hal.Device, hal.Queue, error) {
	hp, ok := h.(halProvider)
	if !ok {
		return nil, nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, ErrNoHALAccess
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, ErrNoHALAccess
	}
	return device, queue, nil
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an unknown adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "null", Type: gpucontext.AdapterTypeUnknown}
}

var _ DeviceHandle = NullDeviceHandle{}
