// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}

	if handle.Device() != nil {
		t.Error("NullDeviceHandle.Device() should return nil")
	}
	if handle.Queue() != nil {
		t.Error("NullDeviceHandle.Queue() should return nil")
	}
	if handle.Adapter() != nil {
		t.Error("NullDeviceHandle.Adapter() should return nil")
	}
	if handle.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("NullDeviceHandle.SurfaceFormat() should return Undefined")
	}
}

func TestHALDeviceWithoutHALAccess(t *testing.T) {
	_, _, err := HALDevice(NullDeviceHandle{})
	if !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("HALDevice(NullDeviceHandle) error = %v, want ErrNoHALAccess", err)
	}
}

type halHandle struct {
	NullDeviceHandle
	device any
	queue  any
}

func (h halHandle) HalDevice() any { return h.device }
func (h halHandle) HalQueue() any  { return h.queue }

func TestHALDevice(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, _, err := HALDevice(halHandle{device: device, queue: "not a queue"}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("wrong queue type: error = %v, want ErrNoHALAccess", err)
	}
	if _, _, err := HALDevice(halHandle{device: 42}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("wrong device type: error = %v, want ErrNoHALAccess", err)
	}
}
