package vellobridge

import (
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// GlyphOutlineIterator adapts a go-text glyph outline to the path
// iteration interface, so shaped glyphs can be encoded like any other
// path. Outline coordinates are in font units with y up; pass a transform
// to Fill that applies the font scale and flips y.
type GlyphOutlineIterator struct {
	segments []font.Segment
	ix       int
}

// NewGlyphOutlineIterator returns an iterator over the outline's
// segments.
func NewGlyphOutlineIterator(outline font.GlyphOutline) *GlyphOutlineIterator {
	return &GlyphOutlineIterator{segments: outline.Segments}
}

// GlyphOutline extracts the outline of gid from the face. The second
// result is false when the glyph has no outline data (bitmap or SVG
// glyphs, or an invalid gid).
func GlyphOutline(face *font.Face, gid font.GID) (font.GlyphOutline, bool) {
	data := face.GlyphData(gid)
	outline, ok := data.(font.GlyphOutline)
	return outline, ok
}

// NextElement implements PathIterator.
func (g *GlyphOutlineIterator) NextElement(el *PathElement) bool {
	if g.ix >= len(g.segments) {
		return false
	}
	seg := g.segments[g.ix]
	g.ix++

	switch seg.Op {
	case ot.SegmentOpMoveTo:
		el.Verb = VerbMoveTo
		el.Points[0] = segPoint(seg.Args[0])
	case ot.SegmentOpLineTo:
		el.Verb = VerbLineTo
		el.Points[1] = segPoint(seg.Args[0])
	case ot.SegmentOpQuadTo:
		el.Verb = VerbQuadTo
		el.Points[1] = segPoint(seg.Args[0])
		el.Points[2] = segPoint(seg.Args[1])
	case ot.SegmentOpCubeTo:
		el.Verb = VerbCubicTo
		el.Points[1] = segPoint(seg.Args[0])
		el.Points[2] = segPoint(seg.Args[1])
		el.Points[3] = segPoint(seg.Args[2])
	default:
		// Unknown segment ops terminate iteration rather than feeding the
		// encoder garbage.
		return false
	}
	return true
}

func segPoint(p font.SegmentPoint) Point {
	return Point{X: p.X, Y: p.Y}
}
