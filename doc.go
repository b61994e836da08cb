// Package vellobridge translates host-side 2D path geometry, styles, and
// brushes into the packed scene representation consumed by a Vello-style
// GPU compute pipeline.
//
// The host supplies paths through a poll-style PathIterator and plain-data
// style descriptions (fill rule, stroke parameters, affine transform, solid
// brush). Each draw call drives the iterator exactly once, feeding both the
// scene encoder and a parallel memory-size estimator. PrepareRender resolves
// the accumulated encoding into two flat byte buffers (GPU uniform
// configuration and packed scene data) together with per-stage workgroup
// counts and worst-case intermediate buffer sizes.
//
// Basic usage:
//
//	enc := vellobridge.New()
//	enc.Fill(vellobridge.FillNonZero, vellobridge.Identity(),
//	    vellobridge.Brush{Kind: vellobridge.BrushSolid, Solid: red}, iter)
//	cfg := enc.PrepareRender(width, height, background)
//
//	scene := make([]byte, cfg.SceneBufferSize())
//	cfg.WriteSceneBuffer(scene)
//
// The gpu subpackage uploads the resulting buffers to a wgpu device and
// encodes the compute dispatches described by WorkgroupCounts.
package vellobridge
