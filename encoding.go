package vellobridge

import (
	"fmt"

	"github.com/gogpu/vellobridge/internal/encoding"
)

// Blend word for clip layers: Mix::Clip in the high byte, SrcOver compose
// in the low byte.
const clipBlend = 0x80<<8 | 0x03

// Encoding accumulates a scene for GPU rendering: filled and stroked
// paths, clip layers, and solid-color brushes. Call PrepareRender once
// the scene is complete to obtain the GPU buffer layout.
//
// An Encoding is not safe for concurrent use.
type Encoding struct {
	enc *encoding.Encoding
	est encoding.BumpEstimator
}

// New creates an empty encoding.
func New() *Encoding {
	return &Encoding{enc: encoding.NewEncoding()}
}

// IsEmpty reports whether nothing has been encoded.
func (e *Encoding) IsEmpty() bool {
	return e.enc.IsEmpty()
}

// Reset clears the encoding for reuse without deallocating memory.
func (e *Encoding) Reset() {
	e.enc.Reset()
	e.est.Reset()
}

// Fill encodes a filled path. The iterator is consumed. Panics on an
// invalid fill rule, an unsupported brush kind, or an unknown path verb;
// those are integration errors, not recoverable conditions.
func (e *Encoding) Fill(fill Fill, transform Affine, brush Brush, iter PathIterator) {
	t := encoding.NewTransform(transform.Matrix)
	e.enc.EncodeTransform(t)
	e.enc.EncodeFillStyle(fillRule(fill))
	n := e.encodePath(t, iter, true)
	if n > 0 {
		e.encodeBrush(brush)
	}
}

// Stroke encodes a stroked path. The iterator is consumed. Panics on
// invalid cap or join values, an unsupported brush kind, or an unknown
// path verb.
func (e *Encoding) Stroke(stroke Stroke, transform Affine, brush Brush, iter PathIterator) {
	t := encoding.NewTransform(transform.Matrix)
	e.enc.EncodeTransform(t)
	e.enc.EncodeStrokeStyle(strokeStyle(stroke))
	n := e.encodePath(t, iter, false)
	if n > 0 {
		e.est.CountStroke(t, n, stroke.Width)
		e.encodeBrush(brush)
	}
}

// BeginClip pushes a clip layer bounded by the given path, which fills
// with the non-zero rule. Every draw until the matching EndClip is
// clipped to it.
func (e *Encoding) BeginClip(transform Affine, iter PathIterator) {
	t := encoding.NewTransform(transform.Matrix)
	e.enc.EncodeTransform(t)
	e.enc.EncodeFillStyle(encoding.FillRuleNonZero)
	e.encodePath(t, iter, true)
	e.enc.EncodeBeginClip(clipBlend, 1.0)
}

// EndClip pops the current clip layer. Calls without a matching BeginClip
// are ignored.
func (e *Encoding) EndClip() {
	e.enc.EncodeEndClip()
}

// Append concatenates another encoding's scene after this one, merging
// its memory estimate.
func (e *Encoding) Append(other *Encoding) {
	if other == nil {
		return
	}
	e.enc.Append(other.enc)
	e.est.Append(&other.est)
}

// NumPaths returns the number of encoded paths.
func (e *Encoding) NumPaths() uint32 { return e.enc.NumPaths() }

// NumDrawObjects returns the number of encoded draw objects.
func (e *Encoding) NumDrawObjects() uint32 { return e.enc.NumDrawObjects() }

// PrepareRender resolves the scene for a render target of the given pixel
// size and background color. The returned configuration carries the
// packed buffers, dispatch sizes, and buffer requirements; the encoding
// may be reused or reset afterwards.
func (e *Encoding) PrepareRender(width, height uint32, background Color) *RenderConfiguration {
	layout, scene := encoding.Resolve(e.enc)
	cfg := encoding.NewRenderConfig(&layout, width, height, packColor(background))
	cfg.ApplyBumpEstimate(e.est.Tally())

	Logger().Debug("prepared render",
		"width", width, "height", height,
		"paths", layout.NumPaths, "drawObjects", layout.NumDrawObjects,
		"sceneBytes", len(scene))

	return &RenderConfiguration{cfg: cfg, scene: scene}
}

// encodePath drives the iterator into the path encoder and the size
// estimator in lockstep and returns the encoded segment count.
func (e *Encoding) encodePath(t encoding.Transform, iter PathIterator, isFill bool) uint32 {
	p := e.enc.NewPathEncoder(isFill)
	e.est.BeginPath()

	var el PathElement
	var first, cur vec2OK
	for iter.NextElement(&el) {
		switch el.Verb {
		case VerbMoveTo:
			pt := el.Points[0]
			if isFill {
				e.estimateClose(t, first, cur)
			}
			p.MoveTo(pt.X, pt.Y)
			first = vec2OK{pt.X, pt.Y, true}
			cur = first
		case VerbLineTo:
			pt := el.Points[1]
			if cur.ok {
				e.est.CountLine(t, cur.v(), vec(pt))
			}
			p.LineTo(pt.X, pt.Y)
			cur = vec2OK{pt.X, pt.Y, cur.ok}
		case VerbQuadTo:
			c, pt := el.Points[1], el.Points[2]
			if cur.ok {
				e.est.CountQuad(t, cur.v(), vec(c), vec(pt))
			}
			p.QuadTo(c.X, c.Y, pt.X, pt.Y)
			cur = vec2OK{pt.X, pt.Y, cur.ok}
		case VerbCubicTo:
			c1, c2, pt := el.Points[1], el.Points[2], el.Points[3]
			if cur.ok {
				e.est.CountCubic(t, cur.v(), vec(c1), vec(c2), vec(pt))
			}
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
			cur = vec2OK{pt.X, pt.Y, cur.ok}
		case VerbClose:
			e.estimateClose(t, first, cur)
			p.Close()
			cur = first
		default:
			panic(fmt.Sprintf("vellobridge: unknown path verb %d", el.Verb))
		}
	}
	if isFill {
		e.estimateClose(t, first, cur)
	}
	return p.Finish(true)
}

// estimateClose tallies the implicit closing line of a subpath.
func (e *Encoding) estimateClose(t encoding.Transform, first, cur vec2OK) {
	if !first.ok || !cur.ok {
		return
	}
	if first.x == cur.x && first.y == cur.y {
		return
	}
	e.est.CountLine(t, cur.v(), first.v())
}

// encodeBrush encodes the brush for the path just emitted. Only solid
// colors are supported.
func (e *Encoding) encodeBrush(brush Brush) {
	if brush.Kind != BrushSolid {
		panic(fmt.Sprintf("vellobridge: unsupported brush kind %s", brush.Kind))
	}
	e.enc.EncodeSolidColor(packColor(brush.Solid))
}

// fillRule converts the host fill rule, panicking on invalid values.
func fillRule(f Fill) encoding.FillRule {
	switch f {
	case FillNonZero:
		return encoding.FillRuleNonZero
	case FillEvenOdd:
		return encoding.FillRuleEvenOdd
	default:
		panic(fmt.Sprintf("vellobridge: invalid fill rule %d", f))
	}
}

// strokeStyle converts host stroke parameters, panicking on invalid cap
// or join values.
func strokeStyle(s Stroke) encoding.StrokeStyle {
	c := capValue(s.Cap)
	return encoding.StrokeStyle{
		Width:      s.Width,
		MiterLimit: s.MiterLimit,
		StartCap:   c,
		EndCap:     c,
		Join:       joinValue(s.Join),
	}
}

func capValue(c CapStyle) uint32 {
	switch c {
	case CapButt:
		return 0
	case CapSquare:
		return 1
	case CapRound:
		return 2
	default:
		panic(fmt.Sprintf("vellobridge: invalid cap style %d", c))
	}
}

func joinValue(j JoinStyle) uint32 {
	switch j {
	case JoinBevel:
		return 0
	case JoinMiter:
		return 1
	case JoinRound:
		return 2
	default:
		panic(fmt.Sprintf("vellobridge: invalid join style %d", j))
	}
}

// packColor premultiplies and packs a color into RGBA8 with R in the low
// byte, the layout the fine stage consumes.
func packColor(c Color) uint32 {
	a := clamp01(c.A)
	r := channel(clamp01(c.R) * a)
	g := channel(clamp01(c.G) * a)
	b := channel(clamp01(c.B) * a)
	return r | g<<8 | b<<16 | channel(a)<<24
}

func channel(v float32) uint32 {
	return uint32(v*255 + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// vec2OK is a point with a validity flag, tracking the estimator's
// current position before any MoveTo has been seen.
type vec2OK struct {
	x, y float32
	ok   bool
}

func (p vec2OK) v() encoding.Vec2 { return encoding.Vec2{X: p.x, Y: p.y} }

func vec(p Point) encoding.Vec2 { return encoding.Vec2{X: p.X, Y: p.Y} }
