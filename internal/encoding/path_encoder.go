// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package encoding

import "math"

// pathState tracks the subpath state machine of a PathEncoder.
type pathState int

const (
	// pathStateStart: no subpath started.
	pathStateStart pathState = iota
	// pathStateMoveTo: a start point is pending but nothing emitted yet.
	pathStateMoveTo
	// pathStateNonemptySubpath: at least one segment has been emitted.
	pathStateNonemptySubpath
)

// PathEncoder encodes one path into the parent encoding's tag and data
// streams.
//
// The first point of each subpath is emitted as a LineToF32 tag carrying
// the start point; subsequent segments emit their own tag plus the points
// beyond the current point. Fills are closed implicitly at subpath
// boundaries and at Finish.
type PathEncoder struct {
	enc    *Encoding
	isFill bool

	state      pathState
	firstPoint [2]float32
	current    [2]float32

	numSegments uint32
}

// NewPathEncoder starts encoding a new path. isFill selects implicit
// closing behavior: fills always produce closed subpaths.
func (e *Encoding) NewPathEncoder(isFill bool) *PathEncoder {
	return &PathEncoder{enc: e, isFill: isFill}
}

// MoveTo begins a new subpath at (x, y), implicitly closing any open fill
// subpath.
func (p *PathEncoder) MoveTo(x, y float32) {
	if p.isFill && p.state == pathStateNonemptySubpath {
		p.closeSubpath()
	}
	p.firstPoint = [2]float32{x, y}
	p.current = p.firstPoint
	p.state = pathStateMoveTo
}

// LineTo appends a line segment to (x, y). Zero-length segments are
// dropped. Segments before any MoveTo are ignored.
func (p *PathEncoder) LineTo(x, y float32) {
	if p.state == pathStateStart {
		return
	}
	if x == p.current[0] && y == p.current[1] {
		return
	}
	p.startSegmentIfNeeded()
	p.emit(PathTagLineToF32, x, y)
	p.current = [2]float32{x, y}
	p.numSegments++
}

// QuadTo appends a quadratic segment with control point (cx, cy) ending at
// (x, y).
func (p *PathEncoder) QuadTo(cx, cy, x, y float32) {
	if p.state == pathStateStart {
		return
	}
	if cx == p.current[0] && cy == p.current[1] && x == cx && y == cy {
		return
	}
	p.startSegmentIfNeeded()
	p.emit(PathTagQuadToF32, cx, cy, x, y)
	p.current = [2]float32{x, y}
	p.numSegments++
}

// CubicTo appends a cubic segment with control points (c1x, c1y) and
// (c2x, c2y) ending at (x, y).
func (p *PathEncoder) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	if p.state == pathStateStart {
		return
	}
	if c1x == p.current[0] && c1y == p.current[1] &&
		c2x == c1x && c2y == c1y && x == c2x && y == c2y {
		return
	}
	p.startSegmentIfNeeded()
	p.emit(PathTagCubicToF32, c1x, c1y, c2x, c2y, x, y)
	p.current = [2]float32{x, y}
	p.numSegments++
}

// Close ends the current subpath, emitting the closing segment back to its
// start point when the subpath is open.
func (p *PathEncoder) Close() {
	if p.state != pathStateNonemptySubpath {
		p.state = pathStateStart
		return
	}
	p.closeSubpath()
}

// Finish completes the path. Open fill subpaths are closed first. When
// insertPathMarker is set and at least one segment was encoded, the path
// marker tag is appended and the parent encoding's path count advances.
// Returns the number of encoded segments.
func (p *PathEncoder) Finish(insertPathMarker bool) uint32 {
	if p.isFill && p.state == pathStateNonemptySubpath {
		p.closeSubpath()
	}
	if p.numSegments > 0 && insertPathMarker {
		p.enc.pathTags = append(p.enc.pathTags, PathTagPath)
		p.enc.numPaths++
	}
	p.enc.numPathSegments += p.numSegments
	return p.numSegments
}

// startSegmentIfNeeded emits the pending subpath start point before the
// first real segment.
func (p *PathEncoder) startSegmentIfNeeded() {
	if p.state != pathStateMoveTo {
		return
	}
	p.emit(PathTagLineToF32, p.firstPoint[0], p.firstPoint[1])
	p.state = pathStateNonemptySubpath
}

// closeSubpath emits a closing line when the current point differs from
// the subpath start and resets the state machine.
func (p *PathEncoder) closeSubpath() {
	if p.state == pathStateNonemptySubpath &&
		(p.current[0] != p.firstPoint[0] || p.current[1] != p.firstPoint[1]) {
		p.emit(PathTagLineToF32, p.firstPoint[0], p.firstPoint[1])
		p.numSegments++
	}
	p.current = p.firstPoint
	p.state = pathStateStart
}

// emit appends one tag and its coordinate payload.
func (p *PathEncoder) emit(tag uint8, coords ...float32) {
	p.enc.pathTags = append(p.enc.pathTags, tag)
	for _, c := range coords {
		p.enc.pathData = append(p.enc.pathData, math.Float32bits(c))
	}
}
