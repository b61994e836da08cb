package vellobridge

// Path is a slice-backed path builder. It records elements in host form
// and hands them out through Iterate, so callers without their own
// iterator implementation can feed Fill, Stroke, and BeginClip.
//
// The zero value is an empty path ready for use.
type Path struct {
	elements []PathElement
	current  Point
	started  bool
}

// MoveTo begins a new subpath at (x, y).
func (p *Path) MoveTo(x, y float32) *Path {
	pt := Point{x, y}
	p.elements = append(p.elements, PathElement{
		Verb:   VerbMoveTo,
		Points: [4]Point{pt},
	})
	p.current = pt
	p.started = true
	return p
}

// LineTo appends a line to (x, y).
func (p *Path) LineTo(x, y float32) *Path {
	pt := Point{x, y}
	p.elements = append(p.elements, PathElement{
		Verb:   VerbLineTo,
		Points: [4]Point{p.current, pt},
	})
	p.current = pt
	return p
}

// QuadTo appends a quadratic curve through control point (cx, cy) to
// (x, y).
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	pt := Point{x, y}
	p.elements = append(p.elements, PathElement{
		Verb:   VerbQuadTo,
		Points: [4]Point{p.current, {cx, cy}, pt},
	})
	p.current = pt
	return p
}

// CubicTo appends a cubic curve through control points (c1x, c1y) and
// (c2x, c2y) to (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	pt := Point{x, y}
	p.elements = append(p.elements, PathElement{
		Verb:   VerbCubicTo,
		Points: [4]Point{p.current, {c1x, c1y}, {c2x, c2y}, pt},
	})
	p.current = pt
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.elements = append(p.elements, PathElement{
		Verb:   VerbClose,
		Points: [4]Point{p.current},
	})
	return p
}

// Rect appends a closed rectangle subpath.
func (p *Path) Rect(x0, y0, x1, y1 float32) *Path {
	return p.MoveTo(x0, y0).LineTo(x1, y0).LineTo(x1, y1).LineTo(x0, y1).Close()
}

// circleKappa is the cubic control distance approximating a quarter
// circle: 4/3 * (sqrt(2) - 1).
const circleKappa = 0.5522848

// Circle appends a closed circle subpath of four cubic arcs.
func (p *Path) Circle(cx, cy, r float32) *Path {
	k := r * circleKappa
	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	p.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	p.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	p.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	return p.Close()
}

// IsEmpty reports whether no elements have been recorded.
func (p *Path) IsEmpty() bool { return len(p.elements) == 0 }

// Reset clears the path for reuse.
func (p *Path) Reset() {
	p.elements = p.elements[:0]
	p.current = Point{}
	p.started = false
}

// Iterate returns a fresh single-pass iterator over the recorded
// elements. Multiple iterators over the same path are independent.
func (p *Path) Iterate() PathIterator {
	return &pathIter{elements: p.elements}
}

// pathIter walks a recorded element slice.
type pathIter struct {
	elements []PathElement
	ix       int
}

func (it *pathIter) NextElement(el *PathElement) bool {
	if it.ix >= len(it.elements) {
		return false
	}
	*el = it.elements[it.ix]
	it.ix++
	return true
}
