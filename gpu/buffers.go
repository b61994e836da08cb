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

// Buffers holds the GPU buffers for one prepared scene: the uploaded
// uniform and scene data plus every intermediate buffer the pipeline
// stages read and write.
type Buffers struct {
	// Config is the uniform configuration, bound at binding 0 of every
	// stage.
	Config hal.Buffer

	// Scene is the packed scene stream.
	Scene hal.Buffer

	PathReduced     hal.Buffer
	PathReduced2    hal.Buffer
	PathReducedScan hal.Buffer
	PathMonoids     hal.Buffer
	PathBboxes      hal.Buffer
	DrawReduced     hal.Buffer
	DrawMonoids     hal.Buffer
	Info            hal.Buffer
	ClipInps        hal.Buffer
	ClipEls         hal.Buffer
	ClipBics        hal.Buffer
	ClipBboxes      hal.Buffer
	DrawBboxes      hal.Buffer
	BumpAlloc       hal.Buffer
	IndirectCount   hal.Buffer
	BinHeaders      hal.Buffer
	Paths           hal.Buffer
	Lines           hal.Buffer
	BinData         hal.Buffer
	Tiles           hal.Buffer
	SegCounts       hal.Buffer
	Segments        hal.Buffer
	Ptcl            hal.Buffer

	// Output is the render target pixel buffer written by the fine stage,
	// packed RGBA8 per pixel.
	Output hal.Buffer
}

// Entry builds a bind group entry for one of the scene's buffers, for use
// when registering stage bindings.
func (b *Buffers) Entry(binding uint32, buf hal.Buffer) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding: binding,
		Resource: gputypes.BufferBinding{
			Buffer: buf.NativeHandle(),
			Offset: 0,
			Size:   0, // entire buffer
		},
	}
}

// AllocateBuffers creates all GPU buffers for a prepared scene, uploads
// the uniform configuration and packed scene, and zero-fills the buffers
// the pipeline mutates with atomics. The caller must call DestroyBuffers
// when the frame is done.
func (d *Dispatcher) AllocateBuffers(cfg *vellobridge.RenderConfiguration, targetWidth, targetHeight uint32) (*Buffers, error) {
	sizes := cfg.BufferSizes()
	bufs := &Buffers{}

	uniformCPU := gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
	storageCPU := gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst
	storageGPU := gputypes.BufferUsageStorage
	// Buffers mutated with atomics start zeroed each frame.
	storageZero := gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst
	storageOut := gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc

	type bufSpec struct {
		target   *hal.Buffer
		label    string
		size     uint64
		usage    gputypes.BufferUsage
		zeroInit bool
	}

	specs := []bufSpec{
		{&bufs.Config, "vello_config", uint64(cfg.ConfigUniformBufferSize()), uniformCPU, false},
		{&bufs.Scene, "vello_scene", uint64(cfg.SceneBufferSize()), storageCPU, false},
		{&bufs.PathReduced, "vello_path_reduced", uint64(sizes.PathReduced), storageGPU, false},
		{&bufs.PathReduced2, "vello_path_reduced2", uint64(sizes.PathReduced2), storageGPU, false},
		{&bufs.PathReducedScan, "vello_path_reduced_scan", uint64(sizes.PathReducedScan), storageGPU, false},
		{&bufs.PathMonoids, "vello_path_monoids", uint64(sizes.PathMonoids), storageGPU, false},
		{&bufs.PathBboxes, "vello_path_bboxes", uint64(sizes.PathBboxes), storageGPU, false},
		{&bufs.DrawReduced, "vello_draw_reduced", uint64(sizes.DrawReduced), storageGPU, false},
		{&bufs.DrawMonoids, "vello_draw_monoids", uint64(sizes.DrawMonoids), storageGPU, false},
		{&bufs.Info, "vello_info", uint64(sizes.Info), storageGPU, false},
		{&bufs.ClipInps, "vello_clip_inps", uint64(sizes.ClipInps), storageGPU, false},
		{&bufs.ClipEls, "vello_clip_els", uint64(sizes.ClipEls), storageGPU, false},
		{&bufs.ClipBics, "vello_clip_bics", uint64(sizes.ClipBics), storageGPU, false},
		{&bufs.ClipBboxes, "vello_clip_bboxes", uint64(sizes.ClipBboxes), storageGPU, false},
		{&bufs.DrawBboxes, "vello_draw_bboxes", uint64(sizes.DrawBboxes), storageGPU, false},
		{&bufs.BumpAlloc, "vello_bump_alloc", uint64(sizes.BumpAlloc), storageZero | gputypes.BufferUsageCopySrc, true},
		{&bufs.IndirectCount, "vello_indirect_count", uint64(sizes.IndirectCount), storageZero, true},
		{&bufs.BinHeaders, "vello_bin_headers", uint64(sizes.BinHeaders), storageGPU, false},
		{&bufs.Paths, "vello_paths", uint64(sizes.Paths), storageGPU, false},
		{&bufs.Lines, "vello_lines", uint64(sizes.Lines), storageGPU, false},
		{&bufs.BinData, "vello_bin_data", uint64(sizes.BinData), storageGPU, false},
		{&bufs.Tiles, "vello_tiles", uint64(sizes.Tiles), storageZero, true},
		{&bufs.SegCounts, "vello_seg_counts", uint64(sizes.SegCounts), storageGPU, false},
		{&bufs.Segments, "vello_segments", uint64(sizes.Segments), storageGPU, false},
		{&bufs.Ptcl, "vello_ptcl", uint64(sizes.Ptcl), storageZero, true},
		{&bufs.Output, "vello_output", uint64(targetWidth) * uint64(targetHeight) * 4, storageOut, false},
	}

	for _, s := range specs {
		buf, err := d.createBuffer(s.label, s.size, s.usage)
		if err != nil {
			d.DestroyBuffers(bufs)
			return nil, fmt.Errorf("gpu: create %s: %w", s.label, err)
		}
		*s.target = buf

		if s.zeroInit && s.size > 0 {
			d.queue.WriteBuffer(buf, 0, make([]byte, s.size))
		}
	}

	// Upload uniform config and scene.
	config := make([]byte, cfg.ConfigUniformBufferSize())
	cfg.WriteConfigUniformBuffer(config)
	d.queue.WriteBuffer(bufs.Config, 0, config)

	scene := make([]byte, cfg.SceneBufferSize())
	cfg.WriteSceneBuffer(scene)
	d.queue.WriteBuffer(bufs.Scene, 0, scene)

	logger().Debug("gpu: buffers allocated",
		"target", fmt.Sprintf("%dx%d", targetWidth, targetHeight),
		"sceneBytes", len(scene),
		"linesBytes", sizes.Lines,
		"segmentsBytes", sizes.Segments,
		"ptclBytes", sizes.Ptcl)

	return bufs, nil
}

// createBuffer creates one GPU buffer, clamping to the minimum binding
// size.
func (d *Dispatcher) createBuffer(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	const minBufSize = 4
	if size < minBufSize {
		size = minBufSize
	}
	return d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
}

// DestroyBuffers releases every buffer in bufs. Safe on partially
// allocated sets.
func (d *Dispatcher) DestroyBuffers(bufs *Buffers) {
	if bufs == nil {
		return
	}
	for _, b := range []hal.Buffer{
		bufs.Config, bufs.Scene,
		bufs.PathReduced, bufs.PathReduced2, bufs.PathReducedScan,
		bufs.PathMonoids, bufs.PathBboxes,
		bufs.DrawReduced, bufs.DrawMonoids, bufs.Info,
		bufs.ClipInps, bufs.ClipEls, bufs.ClipBics, bufs.ClipBboxes,
		bufs.DrawBboxes, bufs.BumpAlloc, bufs.IndirectCount,
		bufs.BinHeaders, bufs.Paths, bufs.Lines, bufs.BinData,
		bufs.Tiles, bufs.SegCounts, bufs.Segments, bufs.Ptcl,
		bufs.Output,
	} {
		if b != nil {
			d.device.DestroyBuffer(b)
		}
	}
	*bufs = Buffers{}
}
