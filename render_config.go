package vellobridge

import "github.com/gogpu/vellobridge/internal/encoding"

// RenderConfiguration is the resolved output of an encoding: the packed
// scene, the GPU uniform configuration, per-stage dispatch sizes, and the
// byte size of every intermediate buffer. It is plain data; the host
// uploads the two buffers and dispatches the pipeline.
type RenderConfiguration struct {
	cfg   *encoding.RenderConfig
	scene []byte
}

// ConfigUniformBufferSize returns the byte size of the uniform buffer.
func (r *RenderConfiguration) ConfigUniformBufferSize() int {
	return r.cfg.Gpu.SizeInBytes()
}

// SceneBufferSize returns the byte size of the packed scene buffer.
func (r *RenderConfiguration) SceneBufferSize() int {
	return len(r.scene)
}

// WriteConfigUniformBuffer writes the uniform configuration into dst and
// reports success. When dst is smaller than ConfigUniformBufferSize, no
// bytes are written and the result is false.
func (r *RenderConfiguration) WriteConfigUniformBuffer(dst []byte) bool {
	buf := r.cfg.Gpu.Bytes()
	if len(dst) < len(buf) {
		return false
	}
	copy(dst, buf)
	return true
}

// WriteSceneBuffer writes the packed scene into dst and reports success.
// When dst is smaller than SceneBufferSize, no bytes are written and the
// result is false.
func (r *RenderConfiguration) WriteSceneBuffer(dst []byte) bool {
	if len(dst) < len(r.scene) {
		return false
	}
	copy(dst, r.scene)
	return true
}

// WorkgroupCounts returns the dispatch sizes for every pipeline stage.
func (r *RenderConfiguration) WorkgroupCounts() DispatchInfo {
	w := &r.cfg.WorkgroupCounts
	return DispatchInfo{
		UseLargePathScan: w.UseLargePathScan,
		PathReduce:       wgSize(w.PathReduce),
		PathReduce2:      wgSize(w.PathReduce2),
		PathScan1:        wgSize(w.PathScan1),
		PathScan:         wgSize(w.PathScan),
		BboxClear:        wgSize(w.BboxClear),
		Flatten:          wgSize(w.Flatten),
		DrawReduce:       wgSize(w.DrawReduce),
		DrawLeaf:         wgSize(w.DrawLeaf),
		ClipReduce:       wgSize(w.ClipReduce),
		ClipLeaf:         wgSize(w.ClipLeaf),
		Binning:          wgSize(w.Binning),
		TileAlloc:        wgSize(w.TileAlloc),
		PathCountSetup:   wgSize(w.PathCountSetup),
		Backdrop:         wgSize(w.Backdrop),
		Coarse:           wgSize(w.Coarse),
		PathTilingSetup:  wgSize(w.PathTilingSetup),
		Fine:             wgSize(w.Fine),
	}
}

// BufferSizes returns the required byte size of every intermediate buffer.
func (r *RenderConfiguration) BufferSizes() BufferSizes {
	s := &r.cfg.BufferSizes
	return BufferSizes{
		PathReduced:     s.PathReduced.SizeInBytes(),
		PathReduced2:    s.PathReduced2.SizeInBytes(),
		PathReducedScan: s.PathReducedScan.SizeInBytes(),
		PathMonoids:     s.PathMonoids.SizeInBytes(),
		PathBboxes:      s.PathBboxes.SizeInBytes(),
		DrawReduced:     s.DrawReduced.SizeInBytes(),
		DrawMonoids:     s.DrawMonoids.SizeInBytes(),
		Info:            s.Info.SizeInBytes(),
		ClipInps:        s.ClipInps.SizeInBytes(),
		ClipEls:         s.ClipEls.SizeInBytes(),
		ClipBics:        s.ClipBics.SizeInBytes(),
		ClipBboxes:      s.ClipBboxes.SizeInBytes(),
		DrawBboxes:      s.DrawBboxes.SizeInBytes(),
		BumpAlloc:       s.BumpAlloc.SizeInBytes(),
		IndirectCount:   s.IndirectCount.SizeInBytes(),
		BinHeaders:      s.BinHeaders.SizeInBytes(),
		Paths:           s.Paths.SizeInBytes(),
		Lines:           s.Lines.SizeInBytes(),
		BinData:         s.BinData.SizeInBytes(),
		Tiles:           s.Tiles.SizeInBytes(),
		SegCounts:       s.SegCounts.SizeInBytes(),
		Segments:        s.Segments.SizeInBytes(),
		Ptcl:            s.Ptcl.SizeInBytes(),
	}
}

func wgSize(w encoding.WorkgroupSize) WorkgroupSize {
	return WorkgroupSize{X: w[0], Y: w[1], Z: w[2]}
}
