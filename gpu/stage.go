// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import "fmt"

// Stage identifies one compute stage of the rendering pipeline, in
// dispatch order. The order matches the fields of
// vellobridge.DispatchInfo.
type Stage int

const (
	StagePathReduce Stage = iota
	StagePathReduce2
	StagePathScan1
	StagePathScan
	StageBboxClear
	StageFlatten
	StageDrawReduce
	StageDrawLeaf
	StageClipReduce
	StageClipLeaf
	StageBinning
	StageTileAlloc
	StagePathCountSetup
	StagePathCount
	StageBackdrop
	StageCoarse
	StagePathTilingSetup
	StagePathTiling
	StageFine

	// StageCount is the total number of pipeline stages.
	StageCount
)

// String returns the shader-style stage name.
func (s Stage) String() string {
	switch s {
	case StagePathReduce:
		return "pathtag_reduce"
	case StagePathReduce2:
		return "pathtag_reduce2"
	case StagePathScan1:
		return "pathtag_scan1"
	case StagePathScan:
		return "pathtag_scan"
	case StageBboxClear:
		return "bbox_clear"
	case StageFlatten:
		return "flatten"
	case StageDrawReduce:
		return "draw_reduce"
	case StageDrawLeaf:
		return "draw_leaf"
	case StageClipReduce:
		return "clip_reduce"
	case StageClipLeaf:
		return "clip_leaf"
	case StageBinning:
		return "binning"
	case StageTileAlloc:
		return "tile_alloc"
	case StagePathCountSetup:
		return "path_count_setup"
	case StagePathCount:
		return "path_count"
	case StageBackdrop:
		return "backdrop"
	case StageCoarse:
		return "coarse"
	case StagePathTilingSetup:
		return "path_tiling_setup"
	case StagePathTiling:
		return "path_tiling"
	case StageFine:
		return "fine"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}
