// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"testing"
)

// TestNewDispatcherNilDevice verifies construction rejects nil handles.
func TestNewDispatcherNilDevice(t *testing.T) {
	if _, err := NewDispatcher(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewDispatcher(nil, nil) = %v, want ErrNilDevice", err)
	}
}

// TestNewDispatcherFromProviderInvalid verifies provider validation.
func TestNewDispatcherFromProviderInvalid(t *testing.T) {
	tests := []struct {
		name     string
		provider any
	}{
		{"nil", nil},
		{"wrong_type", struct{}{}},
		{"null_handle", NullDeviceHandle{}},
		{"nil_handles", nilHalProvider{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDispatcherFromProvider(tt.provider)
			if !errors.Is(err, ErrInvalidProvider) {
				t.Errorf("NewDispatcherFromProvider(%T) = %v, want ErrInvalidProvider",
					tt.provider, err)
			}
		})
	}
}

// nilHalProvider exposes the HAL accessors but returns nil handles.
type nilHalProvider struct{}

func (nilHalProvider) HalDevice() any { return nil }
func (nilHalProvider) HalQueue() any  { return nil }

// TestStageString covers the stage names used in labels and logs.
func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StagePathReduce, "pathtag_reduce"},
		{StagePathScan, "pathtag_scan"},
		{StageFlatten, "flatten"},
		{StageClipLeaf, "clip_leaf"},
		{StagePathCountSetup, "path_count_setup"},
		{StageCoarse, "coarse"},
		{StageFine, "fine"},
		{Stage(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(tt.stage), got, tt.want)
		}
	}
}

// TestWGCount verifies dispatch ceiling division.
func TestWGCount(t *testing.T) {
	tests := []struct {
		n, size, want uint32
	}{
		{0, 256, 0},
		{1, 256, 1},
		{256, 256, 1},
		{257, 256, 2},
		{1024, 256, 4},
	}
	for _, tt := range tests {
		if got := wgCount(tt.n, tt.size); got != tt.want {
			t.Errorf("wgCount(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}
