// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vellobridge"
)

// lineSoupBytes and segmentBytes are the per-element sizes of the lines
// and segments buffers, used to over-dispatch the count and tiling
// stages up to buffer capacity. The shaders bound early for excess
// threads.
const (
	lineSoupBytes = 20
	segmentBytes  = 20
	stageWGSize   = 256
)

// BindFunc supplies the bind group entries for one stage, matching the
// layout passed to RegisterShader for that stage.
type BindFunc func(stage Stage, bufs *Buffers) []gputypes.BindGroupEntry

// frameResources tracks per-dispatch GPU objects for cleanup.
type frameResources struct {
	device     hal.Device
	bindGroups []hal.BindGroup
	cmdBuf     hal.CommandBuffer
	fence      hal.Fence
}

func (r *frameResources) cleanup() {
	if r.fence != nil {
		r.device.DestroyFence(r.fence)
	}
	if r.cmdBuf != nil {
		r.device.FreeCommandBuffer(r.cmdBuf)
	}
	for _, g := range r.bindGroups {
		r.device.DestroyBindGroup(g)
	}
}

// Dispatch runs the full pipeline for one prepared scene and blocks
// until the GPU finishes. The stages execute in order with the workgroup
// counts from the configuration; stages with a zero count are skipped,
// as are the two-level scan stages when the configuration selects the
// small scan variant.
func (d *Dispatcher) Dispatch(cfg *vellobridge.RenderConfiguration, bufs *Buffers, bind BindFunc) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i := Stage(0); i < StageCount; i++ {
		if d.pipelines[i] == nil {
			return fmt.Errorf("%w: %s", ErrNotReady, i)
		}
	}
	if bufs == nil || bind == nil {
		return fmt.Errorf("gpu: buffers and bind function must not be nil")
	}

	info := cfg.WorkgroupCounts()
	sizes := cfg.BufferSizes()

	// The count and tiling stages are sized by the GPU bump allocator;
	// dispatch up to buffer capacity.
	lineWGs := wgCount(sizes.Lines/lineSoupBytes, stageWGSize)
	segWGs := wgCount(sizes.Segments/segmentBytes, stageWGSize)

	type stageDispatch struct {
		stage Stage
		wg    vellobridge.WorkgroupSize
		skip  bool
	}
	stages := []stageDispatch{
		{StagePathReduce, info.PathReduce, false},
		{StagePathReduce2, info.PathReduce2, !info.UseLargePathScan},
		{StagePathScan1, info.PathScan1, !info.UseLargePathScan},
		{StagePathScan, info.PathScan, false},
		{StageBboxClear, info.BboxClear, false},
		{StageFlatten, info.Flatten, false},
		{StageDrawReduce, info.DrawReduce, false},
		{StageDrawLeaf, info.DrawLeaf, false},
		{StageClipReduce, info.ClipReduce, false},
		{StageClipLeaf, info.ClipLeaf, false},
		{StageBinning, info.Binning, false},
		{StageTileAlloc, info.TileAlloc, false},
		{StagePathCountSetup, info.PathCountSetup, false},
		{StagePathCount, vellobridge.WorkgroupSize{X: lineWGs, Y: 1, Z: 1}, false},
		{StageBackdrop, info.Backdrop, false},
		{StageCoarse, info.Coarse, false},
		{StagePathTilingSetup, info.PathTilingSetup, false},
		{StagePathTiling, vellobridge.WorkgroupSize{X: segWGs, Y: 1, Z: 1}, false},
		{StageFine, info.Fine, false},
	}

	res := &frameResources{device: d.device}
	defer res.cleanup()

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "vello_pipeline",
	})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("vello_pipeline"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	for _, sd := range stages {
		if sd.skip || sd.wg.X == 0 || sd.wg.Y == 0 || sd.wg.Z == 0 {
			continue
		}

		bg, bgErr := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   sd.stage.String() + "_bg",
			Layout:  d.bgLayouts[sd.stage],
			Entries: bind(sd.stage, bufs),
		})
		if bgErr != nil {
			encoder.DiscardEncoding()
			return fmt.Errorf("gpu: create bind group %s: %w", sd.stage, bgErr)
		}
		res.bindGroups = append(res.bindGroups, bg)

		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{
			Label: sd.stage.String(),
		})
		pass.SetPipeline(d.pipelines[sd.stage])
		pass.SetBindGroup(0, bg, nil)
		pass.Dispatch(sd.wg.X, sd.wg.Y, sd.wg.Z)
		pass.End()

		logger().Debug("gpu: dispatched stage",
			"stage", sd.stage.String(),
			"workgroups", fmt.Sprintf("%dx%dx%d", sd.wg.X, sd.wg.Y, sd.wg.Z))
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	res.cmdBuf = cmdBuf

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	res.fence = fence

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	ok, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return fmt.Errorf("gpu: wait: %w", err)
	}
	if !ok {
		return ErrGPUTimeout
	}

	logger().Debug("gpu: pipeline complete")
	return nil
}

// wgCount is the ceiling division used for dispatch sizing.
func wgCount(n, wgSize uint32) uint32 {
	if n == 0 {
		return 0
	}
	return (n + wgSize - 1) / wgSize
}
