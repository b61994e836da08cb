package vellobridge

import (
	"testing"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// TestPathIterate verifies recorded elements come back in order with the
// host point convention.
func TestPathIterate(t *testing.T) {
	var p Path
	p.MoveTo(1, 2).LineTo(3, 4).QuadTo(5, 6, 7, 8).CubicTo(9, 10, 11, 12, 13, 14).Close()

	it := p.Iterate()
	var el PathElement

	if !it.NextElement(&el) || el.Verb != VerbMoveTo || el.Points[0] != (Point{1, 2}) {
		t.Fatalf("element 0 = %+v, want MoveTo(1,2)", el)
	}
	if !it.NextElement(&el) || el.Verb != VerbLineTo {
		t.Fatalf("element 1 = %+v, want LineTo", el)
	}
	if el.Points[0] != (Point{1, 2}) || el.Points[1] != (Point{3, 4}) {
		t.Errorf("LineTo points = %v, want current (1,2) then (3,4)", el.Points)
	}
	if !it.NextElement(&el) || el.Verb != VerbQuadTo {
		t.Fatalf("element 2 = %+v, want QuadTo", el)
	}
	if el.Points[1] != (Point{5, 6}) || el.Points[2] != (Point{7, 8}) {
		t.Errorf("QuadTo points = %v", el.Points)
	}
	if !it.NextElement(&el) || el.Verb != VerbCubicTo {
		t.Fatalf("element 3 = %+v, want CubicTo", el)
	}
	if el.Points[3] != (Point{13, 14}) {
		t.Errorf("CubicTo end = %v, want (13,14)", el.Points[3])
	}
	if !it.NextElement(&el) || el.Verb != VerbClose {
		t.Fatalf("element 4 = %+v, want Close", el)
	}
	if it.NextElement(&el) {
		t.Error("iterator produced an element past the end")
	}
}

// TestPathIterateIndependent verifies iterators do not share position.
func TestPathIterateIndependent(t *testing.T) {
	var p Path
	p.MoveTo(0, 0).LineTo(1, 1)

	a, b := p.Iterate(), p.Iterate()
	var el PathElement
	a.NextElement(&el)
	a.NextElement(&el)
	if a.NextElement(&el) {
		t.Error("iterator a not exhausted")
	}
	if !b.NextElement(&el) || el.Verb != VerbMoveTo {
		t.Error("iterator b affected by iterator a")
	}
}

// TestPathHelpers verifies Rect and Circle produce closed subpaths.
func TestPathHelpers(t *testing.T) {
	var r Path
	r.Rect(0, 0, 10, 10)
	if len(r.elements) != 5 {
		t.Errorf("Rect elements = %d, want 5", len(r.elements))
	}
	if r.elements[4].Verb != VerbClose {
		t.Errorf("Rect last verb = %v, want Close", r.elements[4].Verb)
	}

	var c Path
	c.Circle(50, 50, 10)
	if len(c.elements) != 6 {
		t.Errorf("Circle elements = %d, want 6", len(c.elements))
	}
	for i := 1; i <= 4; i++ {
		if c.elements[i].Verb != VerbCubicTo {
			t.Errorf("Circle element %d = %v, want CubicTo", i, c.elements[i].Verb)
		}
	}

	c.Reset()
	if !c.IsEmpty() {
		t.Error("IsEmpty = false after Reset")
	}
}

// TestGlyphOutlineIterator converts synthetic outline segments and checks
// verb and point mapping.
func TestGlyphOutlineIterator(t *testing.T) {
	outline := font.GlyphOutline{Segments: []font.Segment{
		{Op: ot.SegmentOpMoveTo, Args: [3]font.SegmentPoint{{X: 100, Y: 0}}},
		{Op: ot.SegmentOpLineTo, Args: [3]font.SegmentPoint{{X: 200, Y: 0}}},
		{Op: ot.SegmentOpQuadTo, Args: [3]font.SegmentPoint{{X: 250, Y: 50}, {X: 200, Y: 100}}},
		{Op: ot.SegmentOpCubeTo, Args: [3]font.SegmentPoint{
			{X: 150, Y: 150}, {X: 100, Y: 150}, {X: 100, Y: 100}}},
	}}

	it := NewGlyphOutlineIterator(outline)
	var el PathElement

	if !it.NextElement(&el) || el.Verb != VerbMoveTo || el.Points[0] != (Point{100, 0}) {
		t.Fatalf("segment 0 = %+v, want MoveTo(100,0)", el)
	}
	if !it.NextElement(&el) || el.Verb != VerbLineTo || el.Points[1] != (Point{200, 0}) {
		t.Fatalf("segment 1 = %+v, want LineTo(200,0)", el)
	}
	if !it.NextElement(&el) || el.Verb != VerbQuadTo {
		t.Fatalf("segment 2 = %+v, want QuadTo", el)
	}
	if el.Points[1] != (Point{250, 50}) || el.Points[2] != (Point{200, 100}) {
		t.Errorf("QuadTo points = %v", el.Points)
	}
	if !it.NextElement(&el) || el.Verb != VerbCubicTo || el.Points[3] != (Point{100, 100}) {
		t.Fatalf("segment 3 = %+v, want CubicTo ending (100,100)", el)
	}
	if it.NextElement(&el) {
		t.Error("iterator produced an element past the end")
	}
}

// TestGlyphOutlineEncodes feeds a glyph outline through Fill.
func TestGlyphOutlineEncodes(t *testing.T) {
	outline := font.GlyphOutline{Segments: []font.Segment{
		{Op: ot.SegmentOpMoveTo, Args: [3]font.SegmentPoint{{X: 0, Y: 0}}},
		{Op: ot.SegmentOpLineTo, Args: [3]font.SegmentPoint{{X: 100, Y: 0}}},
		{Op: ot.SegmentOpLineTo, Args: [3]font.SegmentPoint{{X: 50, Y: 100}}},
	}}

	enc := New()
	// Scale down from font units and flip y, as a text renderer would.
	scale := Affine{Matrix: [6]float32{0.016, 0, 10, 0, -0.016, 30}}
	enc.Fill(FillNonZero, scale, solid(0, 0, 0, 1), NewGlyphOutlineIterator(outline))

	if enc.NumPaths() != 1 || enc.NumDrawObjects() != 1 {
		t.Errorf("paths=%d draws=%d, want 1 1", enc.NumPaths(), enc.NumDrawObjects())
	}
}
