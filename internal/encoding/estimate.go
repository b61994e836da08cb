// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package encoding

// Flattening tolerance used by the GPU flatten stage, in device pixels.
const flattenTolerance = 0.25

// Wang's formula constants for the number of lines needed to flatten a
// curve within tolerance: sqrt(n_ctrl * (n_ctrl - 1) / 8) / sqrt(tol).
const (
	wangQuadFactor  = 0.5       // sqrt(2 * 1 / 8)
	wangCubicFactor = 0.8660254 // sqrt(3 * 2 / 8)
)

// estimateMargin pads the tally against underestimation from the coarse
// per-line tile crossing bound.
const estimateMargin = 1.25

// BumpEstimate is the worst-case element count for each bump-allocated
// buffer, produced by BumpEstimator.Tally.
type BumpEstimate struct {
	Lines     uint32
	BinData   uint32
	SegCounts uint32
	Segments  uint32
}

// BumpEstimator accumulates a conservative upper bound on the GPU bump
// allocator's demand while the scene is encoded. The CPU cannot know the
// exact line and segment counts the flatten stage will produce, so each
// encoded segment contributes a Wang's-formula bound on its flattened
// line count and a tile-crossing bound on its segment count.
type BumpEstimator struct {
	lines    float32
	segments float32

	// pathLines and pathSegments track the current path's share of the
	// tally, so a stroke can double its own path without compounding
	// earlier paths.
	pathLines    float32
	pathSegments float32
}

// Reset clears the estimator for reuse.
func (b *BumpEstimator) Reset() {
	*b = BumpEstimator{}
}

// BeginPath marks the start of a new path. Segment counts recorded after
// this call belong to the new path for stroke expansion purposes.
func (b *BumpEstimator) BeginPath() {
	b.pathLines = 0
	b.pathSegments = 0
}

// CountLine tallies one line segment from p0 to p1 in path space under t.
func (b *BumpEstimator) CountLine(t Transform, p0, p1 Vec2) {
	scale := t.scaleBound()
	b.addLines(1, p0.sub(p1).length()*scale)
}

// CountQuad tallies one quadratic segment.
func (b *BumpEstimator) CountQuad(t Transform, p0, p1, p2 Vec2) {
	scale := t.scaleBound()
	// Wang's bound on the control polygon's max second difference.
	d := p0.sub(p1.mul(2)).add(p2)
	n := ceil32(wangQuadFactor * sqrt32(d.length()*scale/flattenTolerance))
	n = max32(n, 1)
	arc := (p1.sub(p0).length() + p2.sub(p1).length()) * scale
	b.addLines(n, arc)
}

// CountCubic tallies one cubic segment.
func (b *BumpEstimator) CountCubic(t Transform, p0, p1, p2, p3 Vec2) {
	scale := t.scaleBound()
	d1 := p0.sub(p1.mul(2)).add(p2)
	d2 := p1.sub(p2.mul(2)).add(p3)
	m := max32(d1.length(), d2.length())
	n := ceil32(wangCubicFactor * sqrt32(m*scale/flattenTolerance))
	n = max32(n, 1)
	arc := (p1.sub(p0).length() + p2.sub(p1).length() + p3.sub(p2).length()) * scale
	b.addLines(n, arc)
}

// CountStroke doubles the current path's tally (two parallel offset
// curves) and reserves lines for caps and joins. Call after all of the
// path's segments have been counted, with the segment count and the
// device-space stroke width.
func (b *BumpEstimator) CountStroke(t Transform, numSegments uint32, width float32) {
	b.lines += b.pathLines
	b.segments += b.pathSegments
	b.pathLines = 0
	b.pathSegments = 0
	if numSegments == 0 {
		return
	}
	// Round caps and joins flatten to arcs; bound each by the lines needed
	// for a half circle of the stroke radius at tolerance.
	scale := t.scaleBound()
	r := width * scale * 0.5
	arcLines := max32(2, ceil32(3.1415927/(2*acosApprox(1-flattenTolerance/max32(r, flattenTolerance)))))
	joints := float32(numSegments + 1) // n-1 joins plus 2 caps
	b.lines += joints * arcLines
	b.segments += joints * arcLines * (1 + ceil32(r)/float32(TileWidth))
}

// addLines records n flattened lines of total arc length totalLen (device
// pixels). Each line crosses at most len/tile + 2 tile boundaries, which
// bounds its segment output.
func (b *BumpEstimator) addLines(n, totalLen float32) {
	segs := n + totalLen/TileWidth + n
	b.lines += n
	b.segments += segs
	b.pathLines += n
	b.pathSegments += segs
}

// acosApprox is a cheap monotone approximation of acos on [0, 1], adequate
// for sizing arc subdivisions.
func acosApprox(x float32) float32 {
	if x <= 0 {
		return 1.5707964
	}
	if x >= 1 {
		return 1e-3
	}
	return sqrt32(2 * (1 - x))
}

// Append merges another estimator's tally, as when one encoding is
// appended to another. The other estimator's paths are complete, so its
// per-path counters are not carried over.
func (b *BumpEstimator) Append(other *BumpEstimator) {
	b.lines += other.lines
	b.segments += other.segments
}

// Tally returns the final buffer estimates with the safety margin applied.
func (b *BumpEstimator) Tally() BumpEstimate {
	lines := uint32(ceil32(b.lines * estimateMargin))
	segments := uint32(ceil32(b.segments * estimateMargin))
	// seg_counts holds one entry per (line, tile) crossing, bounded by the
	// segment estimate.
	segCounts := segments
	// bin_data receives one word per draw object per covered bin; the line
	// bound dominates in practice.
	binData := maxu32(initialBinDataAlloc, lines*2)
	return BumpEstimate{
		Lines:     maxu32(lines, 1),
		BinData:   binData,
		SegCounts: maxu32(segCounts, 1),
		Segments:  maxu32(segments, 1),
	}
}
