// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package encoding

import "encoding/binary"

// Tile dimensions of the fine rasterization grid.
const (
	TileWidth  = 16
	TileHeight = 16
)

// wgSize is the thread count of every compute stage workgroup.
const wgSize = 256

// Intermediate element sizes in bytes. These mirror the GPU-side struct
// layouts consumed by the compute stages.
const (
	sizePathMonoid   = 5 * 4 // transIx, pathSegIx, pathSegOffset, styleIx, pathIx
	sizePathBbox     = 6 * 4 // x0, y0, x1, y1, lineWidth, transIx
	sizeDrawMonoid   = 4 * 4 // pathIx, clipIx, sceneOffset, infoOffset
	sizeClip         = 2 * 4 // ix, pathIx
	sizeClipElement  = 8 * 4 // parentIx, pad x3, bbox
	sizeClipBic      = 2 * 4 // a, b
	sizeClipBbox     = 4 * 4
	sizeDrawBbox     = 4 * 4
	sizeBumpAlloc    = 8 * 4 // failed, binning, ptcl, tile, segCounts, segments, blend, lines
	sizeIndirect     = 4 * 4 // x, y, z, count
	sizeBinHeader    = 2 * 4 // elementCount, chunkOffset
	sizePath         = 5 * 4 // bbox (tile coords), tile offset
	sizeLineSoup     = 5 * 4 // pathIx, p0, p1
	sizeTile         = 2 * 4 // backdrop, segmentCountOrIx
	sizeSegmentCount = 2 * 4 // lineIx, counts
	sizePathSegment  = 5 * 4 // point0, point1, yEdge
)

// Initial allocations (element counts) for buffers sized by GPU bump
// allocation. PrepareRender replaces these with estimator tallies.
const (
	initialLinesAlloc     = 1 << 15
	initialBinDataAlloc   = 1 << 18
	initialTilesAlloc     = 1 << 16
	initialSegCountsAlloc = 1 << 16
	initialSegmentsAlloc  = 1 << 17
	initialPtclAlloc      = 1 << 17
)

// WorkgroupSize is the (x, y, z) dispatch size of one stage.
type WorkgroupSize [3]uint32

// WorkgroupCounts holds per-stage dispatch sizes in pipeline order.
type WorkgroupCounts struct {
	UseLargePathScan bool

	PathReduce      WorkgroupSize
	PathReduce2     WorkgroupSize
	PathScan1       WorkgroupSize
	PathScan        WorkgroupSize
	BboxClear       WorkgroupSize
	Flatten         WorkgroupSize
	DrawReduce      WorkgroupSize
	DrawLeaf        WorkgroupSize
	ClipReduce      WorkgroupSize
	ClipLeaf        WorkgroupSize
	Binning         WorkgroupSize
	TileAlloc       WorkgroupSize
	PathCountSetup  WorkgroupSize
	Backdrop        WorkgroupSize
	Coarse          WorkgroupSize
	PathTilingSetup WorkgroupSize
	Fine            WorkgroupSize
}

// newWorkgroupCounts derives the dispatch sizes from the scene layout and
// the tile grid.
func newWorkgroupCounts(layout *Layout, widthInTiles, heightInTiles uint32) WorkgroupCounts {
	tagWords := layout.PathTagWords()
	pathTagWGs := wgCount(tagWords, wgSize)

	// A single scan workgroup covers wgSize reduced blocks. Beyond that,
	// the two-level scan variant (reduce2 + scan1) takes over.
	useLarge := pathTagWGs > wgSize

	drawWGs := wgCount(layout.NumDrawObjects, wgSize)
	clipWGs := wgCount(layout.NumClips, wgSize)

	return WorkgroupCounts{
		UseLargePathScan: useLarge,

		PathReduce:  WorkgroupSize{pathTagWGs, 1, 1},
		PathReduce2: WorkgroupSize{wgCount(pathTagWGs, wgSize), 1, 1},
		PathScan1:   WorkgroupSize{wgCount(pathTagWGs, wgSize), 1, 1},
		PathScan:    WorkgroupSize{pathTagWGs, 1, 1},
		BboxClear:   WorkgroupSize{wgCount(layout.NumPaths, wgSize), 1, 1},
		// Flatten processes individual tags, four per tag word.
		Flatten:         WorkgroupSize{wgCount(tagWords*4, wgSize), 1, 1},
		DrawReduce:      WorkgroupSize{drawWGs, 1, 1},
		DrawLeaf:        WorkgroupSize{drawWGs, 1, 1},
		ClipReduce:      WorkgroupSize{clipWGs, 1, 1},
		ClipLeaf:        WorkgroupSize{clipWGs, 1, 1},
		Binning:         WorkgroupSize{drawWGs, 1, 1},
		TileAlloc:       WorkgroupSize{wgCount(layout.NumPaths, wgSize), 1, 1},
		PathCountSetup:  WorkgroupSize{1, 1, 1},
		Backdrop:        WorkgroupSize{layout.NumPaths, 1, 1},
		Coarse:          WorkgroupSize{wgCount(widthInTiles, TileWidth), wgCount(heightInTiles, TileHeight), 1},
		PathTilingSetup: WorkgroupSize{1, 1, 1},
		Fine:            WorkgroupSize{widthInTiles, heightInTiles, 1},
	}
}

// BufferSize is an element count paired with its element byte size.
type BufferSize struct {
	Len      uint32
	ElemSize uint32
}

// SizeInBytes returns the buffer's byte size.
func (b BufferSize) SizeInBytes() uint32 { return b.Len * b.ElemSize }

// BufferSizes holds the size of every intermediate pipeline buffer.
type BufferSizes struct {
	PathReduced     BufferSize
	PathReduced2    BufferSize
	PathReducedScan BufferSize
	PathMonoids     BufferSize
	PathBboxes      BufferSize
	DrawReduced     BufferSize
	DrawMonoids     BufferSize
	Info            BufferSize
	ClipInps        BufferSize
	ClipEls         BufferSize
	ClipBics        BufferSize
	ClipBboxes      BufferSize
	DrawBboxes      BufferSize
	BumpAlloc       BufferSize
	IndirectCount   BufferSize
	BinHeaders      BufferSize
	Paths           BufferSize
	Lines           BufferSize
	BinData         BufferSize
	Tiles           BufferSize
	SegCounts       BufferSize
	Segments        BufferSize
	Ptcl            BufferSize
}

// newBufferSizes computes exact sizes for the layout-derived buffers and
// initial allocations for the bump-allocated ones.
func newBufferSizes(layout *Layout, wgs *WorkgroupCounts) BufferSizes {
	tagWords := layout.PathTagWords()
	pathTagWGs := wgs.PathReduce[0]
	drawWGs := wgs.DrawReduce[0]
	clipWGs := wgs.ClipReduce[0]

	// Reduced block counts are padded to full workgroups so scan stages
	// never read out of bounds.
	return BufferSizes{
		PathReduced:     BufferSize{maxu32(pathTagWGs, 1), sizePathMonoid},
		PathReduced2:    BufferSize{maxu32(wgs.PathReduce2[0], 1), sizePathMonoid},
		PathReducedScan: BufferSize{maxu32(pathTagWGs, 1), sizePathMonoid},
		PathMonoids:     BufferSize{tagWords, sizePathMonoid},
		PathBboxes:      BufferSize{maxu32(layout.NumPaths, 1), sizePathBbox},
		DrawReduced:     BufferSize{maxu32(drawWGs, 1), sizeDrawMonoid},
		DrawMonoids:     BufferSize{maxu32(layout.NumDrawObjects, 1), sizeDrawMonoid},
		Info:            BufferSize{maxu32(layout.NumDrawObjects*2, 1), 4},
		ClipInps:        BufferSize{maxu32(layout.NumClips, 1), sizeClip},
		ClipEls:         BufferSize{maxu32(layout.NumClips, 1), sizeClipElement},
		ClipBics:        BufferSize{maxu32(clipWGs, 1), sizeClipBic},
		ClipBboxes:      BufferSize{maxu32(layout.NumClips, 1), sizeClipBbox},
		DrawBboxes:      BufferSize{maxu32(layout.NumDrawObjects, 1), sizeDrawBbox},
		BumpAlloc:       BufferSize{1, sizeBumpAlloc},
		IndirectCount:   BufferSize{1, sizeIndirect},
		BinHeaders:      BufferSize{maxu32(drawWGs*wgSize, wgSize), sizeBinHeader},
		Paths:           BufferSize{maxu32(layout.NumPaths, 1), sizePath},
		Lines:           BufferSize{initialLinesAlloc, sizeLineSoup},
		BinData:         BufferSize{initialBinDataAlloc, 4},
		Tiles:           BufferSize{initialTilesAlloc, sizeTile},
		SegCounts:       BufferSize{initialSegCountsAlloc, sizeSegmentCount},
		Segments:        BufferSize{initialSegmentsAlloc, sizePathSegment},
		Ptcl:            BufferSize{initialPtclAlloc, 4},
	}
}

// ConfigUniform is the uniform block uploaded to every compute stage. The
// field order matches the GPU-side Config struct; all fields are u32.
type ConfigUniform struct {
	WidthInTiles  uint32
	HeightInTiles uint32
	TargetWidth   uint32
	TargetHeight  uint32
	// BaseColor is the background color, packed premultiplied RGBA with
	// R in the low byte.
	BaseColor uint32

	// Scene layout.
	NumDrawObjects uint32
	NumPaths       uint32
	NumClips       uint32
	PathTagBase    uint32
	PathDataBase   uint32
	DrawTagBase    uint32
	DrawDataBase   uint32
	TransformBase  uint32
	StyleBase      uint32

	// Bump buffer capacities in elements, checked by the GPU allocator.
	LinesSize     uint32
	BinningSize   uint32
	TilesSize     uint32
	SegCountsSize uint32
	SegmentsSize  uint32
	PtclSize      uint32
}

// configUniformWords is the number of u32 fields in ConfigUniform.
const configUniformWords = 20

// SizeInBytes returns the serialized size of the uniform block.
func (ConfigUniform) SizeInBytes() int { return configUniformWords * 4 }

// Bytes serializes the uniform block little-endian in field order.
func (c *ConfigUniform) Bytes() []byte {
	fields := [configUniformWords]uint32{
		c.WidthInTiles, c.HeightInTiles, c.TargetWidth, c.TargetHeight,
		c.BaseColor,
		c.NumDrawObjects, c.NumPaths, c.NumClips,
		c.PathTagBase, c.PathDataBase, c.DrawTagBase, c.DrawDataBase,
		c.TransformBase, c.StyleBase,
		c.LinesSize, c.BinningSize, c.TilesSize,
		c.SegCountsSize, c.SegmentsSize, c.PtclSize,
	}
	buf := make([]byte, len(fields)*4)
	for i, f := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], f)
	}
	return buf
}

// RenderConfig bundles everything a renderer needs to execute the pipeline
// for one target: the uniform block, per-stage dispatch sizes, and buffer
// requirements.
type RenderConfig struct {
	Gpu             ConfigUniform
	WorkgroupCounts WorkgroupCounts
	BufferSizes     BufferSizes
}

// NewRenderConfig builds a render configuration for the given layout,
// target size, and background color (packed premultiplied RGBA).
func NewRenderConfig(layout *Layout, width, height, baseColor uint32) *RenderConfig {
	widthInTiles := wgCount(width, TileWidth)
	heightInTiles := wgCount(height, TileHeight)

	wgs := newWorkgroupCounts(layout, widthInTiles, heightInTiles)
	sizes := newBufferSizes(layout, &wgs)

	return &RenderConfig{
		Gpu: ConfigUniform{
			WidthInTiles:   widthInTiles,
			HeightInTiles:  heightInTiles,
			TargetWidth:    width,
			TargetHeight:   height,
			BaseColor:      baseColor,
			NumDrawObjects: layout.NumDrawObjects,
			NumPaths:       layout.NumPaths,
			NumClips:       layout.NumClips,
			PathTagBase:    layout.PathTagBase,
			PathDataBase:   layout.PathDataBase,
			DrawTagBase:    layout.DrawTagBase,
			DrawDataBase:   layout.DrawDataBase,
			TransformBase:  layout.TransformBase,
			StyleBase:      layout.StyleBase,
			LinesSize:      initialLinesAlloc,
			BinningSize:    initialBinDataAlloc,
			TilesSize:      initialTilesAlloc,
			SegCountsSize:  initialSegCountsAlloc,
			SegmentsSize:   initialSegmentsAlloc,
			PtclSize:       initialPtclAlloc,
		},
		WorkgroupCounts: wgs,
		BufferSizes:     sizes,
	}
}

// ApplyBumpEstimate replaces the bump-allocated buffer sizes and the
// corresponding uniform capacities with the estimator's tally.
func (c *RenderConfig) ApplyBumpEstimate(est BumpEstimate) {
	c.BufferSizes.Lines.Len = est.Lines
	c.BufferSizes.SegCounts.Len = est.SegCounts
	c.BufferSizes.Segments.Len = est.Segments
	c.BufferSizes.BinData.Len = est.BinData
	c.Gpu.LinesSize = est.Lines
	c.Gpu.SegCountsSize = est.SegCounts
	c.Gpu.SegmentsSize = est.Segments
	c.Gpu.BinningSize = est.BinData
}
