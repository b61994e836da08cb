// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu executes the prepared render pipeline on a wgpu HAL device.
// It allocates the intermediate buffers a RenderConfiguration describes,
// uploads the uniform and scene data, and dispatches the compute stages
// with the workgroup counts the configuration prescribes.
//
// The package does not own the pipeline's shaders; the renderer registers
// WGSL sources per stage and they are compiled to SPIR-V via naga.
package gpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gputypes"
)

// Dispatcher errors.
var (
	// ErrNilDevice is returned when constructing without a device or queue.
	ErrNilDevice = errors.New("gpu: device and queue are required")

	// ErrNotReady is returned when dispatching before all stage shaders
	// are registered.
	ErrNotReady = errors.New("gpu: not all stage shaders registered")

	// ErrInvalidStage is returned for out-of-range stage values.
	ErrInvalidStage = errors.New("gpu: invalid stage")

	// ErrInvalidProvider is returned when a device provider does not
	// expose HAL handles.
	ErrInvalidProvider = errors.New("gpu: provider does not expose hal device and queue")

	// ErrGPUTimeout is returned when the GPU does not finish in time.
	ErrGPUTimeout = errors.New("gpu: timeout waiting for pipeline completion")
)

// fenceTimeout bounds the wait for pipeline completion.
const fenceTimeout = 5 * time.Second

// Dispatcher owns the compiled compute pipelines and runs the full
// pipeline for prepared scenes. Create one per device and reuse it
// across frames.
type Dispatcher struct {
	mu sync.RWMutex

	device hal.Device
	queue  hal.Queue

	modules   [StageCount]hal.ShaderModule
	bgLayouts [StageCount]hal.BindGroupLayout
	plLayouts [StageCount]hal.PipelineLayout
	pipelines [StageCount]hal.ComputePipeline
}

// NewDispatcher creates a dispatcher on the given HAL device and queue.
// Stage shaders must be registered with RegisterShader before Dispatch.
func NewDispatcher(device hal.Device, queue hal.Queue) (*Dispatcher, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Dispatcher{device: device, queue: queue}, nil
}

// NewDispatcherFromProvider creates a dispatcher from an external device
// provider. The provider must implement HalDevice() any and HalQueue()
// any returning hal.Device and hal.Queue; this is the integration point
// for hosts that share one GPU device across libraries.
func NewDispatcherFromProvider(provider any) (*Dispatcher, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrInvalidProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice() = %T", ErrInvalidProvider, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue() = %T", ErrInvalidProvider, hp.HalQueue())
	}
	return NewDispatcher(device, queue)
}

// RegisterShader compiles the WGSL source for one stage to SPIR-V and
// builds its pipeline. bindings describes the stage's bind group layout,
// matching the @group(0) annotations in the source. Re-registering a
// stage replaces its pipeline.
func (d *Dispatcher) RegisterShader(stage Stage, wgsl string, bindings []gputypes.BindGroupLayoutEntry) error {
	if stage < 0 || stage >= StageCount {
		return fmt.Errorf("%w: %d", ErrInvalidStage, stage)
	}

	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return fmt.Errorf("gpu: compile %s: %w", stage, err)
	}
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  stage.String(),
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("gpu: create shader module %s: %w", stage, err)
	}

	bgLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   stage.String() + "_bgl",
		Entries: bindings,
	})
	if err != nil {
		d.device.DestroyShaderModule(module)
		return fmt.Errorf("gpu: create bind group layout %s: %w", stage, err)
	}

	plLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            stage.String() + "_pl",
		BindGroupLayouts: []hal.BindGroupLayout{bgLayout},
	})
	if err != nil {
		d.device.DestroyBindGroupLayout(bgLayout)
		d.device.DestroyShaderModule(module)
		return fmt.Errorf("gpu: create pipeline layout %s: %w", stage, err)
	}

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  stage.String(),
		Layout: plLayout,
		Compute: hal.ComputeState{
			Module:     module,
			EntryPoint: "main",
		},
	})
	if err != nil {
		d.device.DestroyPipelineLayout(plLayout)
		d.device.DestroyBindGroupLayout(bgLayout)
		d.device.DestroyShaderModule(module)
		return fmt.Errorf("gpu: create compute pipeline %s: %w", stage, err)
	}

	d.mu.Lock()
	d.destroyStage(stage)
	d.modules[stage] = module
	d.bgLayouts[stage] = bgLayout
	d.plLayouts[stage] = plLayout
	d.pipelines[stage] = pipeline
	d.mu.Unlock()

	logger().Debug("gpu: stage pipeline created",
		"stage", stage.String(),
		"bindings", len(bindings),
		"spirvWords", len(spirv))
	return nil
}

// Ready reports whether every stage has a registered pipeline.
func (d *Dispatcher) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := Stage(0); i < StageCount; i++ {
		if d.pipelines[i] == nil {
			return false
		}
	}
	return true
}

// Close releases all pipelines and layouts. The dispatcher does not own
// the device and never destroys it.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := Stage(0); i < StageCount; i++ {
		d.destroyStage(i)
	}
}

// destroyStage releases one stage's resources. Caller holds d.mu.
func (d *Dispatcher) destroyStage(stage Stage) {
	if d.pipelines[stage] != nil {
		d.device.DestroyComputePipeline(d.pipelines[stage])
		d.pipelines[stage] = nil
	}
	if d.plLayouts[stage] != nil {
		d.device.DestroyPipelineLayout(d.plLayouts[stage])
		d.plLayouts[stage] = nil
	}
	if d.bgLayouts[stage] != nil {
		d.device.DestroyBindGroupLayout(d.bgLayouts[stage])
		d.bgLayouts[stage] = nil
	}
	if d.modules[stage] != nil {
		d.device.DestroyShaderModule(d.modules[stage])
		d.modules[stage] = nil
	}
}

// Package logger, propagated from the root package via SetLogger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

func logger() *slog.Logger { return loggerPtr.Load() }

// SetLogger replaces the package logger. Passing nil restores the no-op
// logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
