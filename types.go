package vellobridge

import "fmt"

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Point is a 2D point in host coordinates.
type Point struct {
	X, Y float32
}

// PathVerb identifies a path construction command.
type PathVerb uint8

// Path verb constants.
const (
	// VerbMoveTo begins a new subpath at the given point.
	VerbMoveTo PathVerb = iota
	// VerbLineTo draws a line to the given point.
	VerbLineTo
	// VerbQuadTo draws a quadratic Bezier curve.
	VerbQuadTo
	// VerbCubicTo draws a cubic Bezier curve.
	VerbCubicTo
	// VerbClose closes the current subpath.
	VerbClose
)

// String returns a human-readable name for the verb.
func (v PathVerb) String() string {
	switch v {
	case VerbMoveTo:
		return "MoveTo"
	case VerbLineTo:
		return "LineTo"
	case VerbQuadTo:
		return "QuadTo"
	case VerbCubicTo:
		return "CubicTo"
	case VerbClose:
		return "Close"
	default:
		return unknownStr
	}
}

// PathElement is one polled element of a host path.
//
// The point slots follow the host convention: Points[0] holds the current
// point (the destination for MoveTo), Points[1..3] hold the points consumed
// by the verb. LineTo uses Points[1]; QuadTo uses Points[1] (control) and
// Points[2] (end); CubicTo uses Points[1], Points[2] (controls) and
// Points[3] (end). Close uses no points.
type PathElement struct {
	Verb   PathVerb
	Points [4]Point
}

// PathIterator is the host's path source: a stateful, poll-style iterator.
//
// NextElement writes the next element into el and reports whether one was
// produced. A path is consumed exactly once, sequentially, and the iterator
// must not be accessed concurrently.
type PathIterator interface {
	NextElement(el *PathElement) bool
}

// Fill selects the fill rule for filled paths.
type Fill uint8

// Fill rule constants.
const (
	// FillNonZero uses the non-zero winding rule.
	FillNonZero Fill = iota
	// FillEvenOdd uses the even-odd rule.
	FillEvenOdd
)

// String returns a human-readable name for the fill rule.
func (f Fill) String() string {
	switch f {
	case FillNonZero:
		return "NonZero"
	case FillEvenOdd:
		return "EvenOdd"
	default:
		return unknownStr
	}
}

// CapStyle selects the line endpoint shape for strokes.
type CapStyle uint8

// Cap style constants.
const (
	CapButt CapStyle = iota
	CapSquare
	CapRound
)

// String returns a human-readable name for the cap style.
func (c CapStyle) String() string {
	switch c {
	case CapButt:
		return "Butt"
	case CapSquare:
		return "Square"
	case CapRound:
		return "Round"
	default:
		return unknownStr
	}
}

// JoinStyle selects the line join shape for strokes.
type JoinStyle uint8

// Join style constants.
const (
	JoinBevel JoinStyle = iota
	JoinMiter
	JoinRound
)

// String returns a human-readable name for the join style.
func (j JoinStyle) String() string {
	switch j {
	case JoinBevel:
		return "Bevel"
	case JoinMiter:
		return "Miter"
	case JoinRound:
		return "Round"
	default:
		return unknownStr
	}
}

// Stroke holds stroke parameters. Dash patterns are expanded by the host
// before path iteration, so no dash fields appear here.
type Stroke struct {
	Width      float32
	MiterLimit float32
	Cap        CapStyle
	Join       JoinStyle
}

// Affine is a 2D affine transform stored row-major as
//
//	| m0  m1  m2 |
//	| m3  m4  m5 |
//
// transforming a point (x, y) to (m0*x + m1*y + m2, m3*x + m4*y + m5).
type Affine struct {
	Matrix [6]float32
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{Matrix: [6]float32{1, 0, 0, 0, 1, 0}}
}

// Color is an RGBA color with premultiplication-free channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// BrushKind identifies the paint source type.
type BrushKind uint8

// Brush kind constants. Only solid color brushes are supported; the other
// kinds are reserved and rejected as unsupported input.
const (
	BrushSolid BrushKind = iota
	BrushLinearGradient
	BrushRadialGradient
	BrushImage
)

// String returns a human-readable name for the brush kind.
func (k BrushKind) String() string {
	switch k {
	case BrushSolid:
		return "Solid"
	case BrushLinearGradient:
		return "LinearGradient"
	case BrushRadialGradient:
		return "RadialGradient"
	case BrushImage:
		return "Image"
	default:
		return unknownStr
	}
}

// Brush is a paint source for fill and stroke operations.
type Brush struct {
	Kind  BrushKind
	Solid Color
}

// WorkgroupSize is a 3D compute dispatch size.
type WorkgroupSize struct {
	X, Y, Z uint32
}

// DispatchInfo describes the workgroup counts for every stage of the
// compute pipeline, in dispatch order.
type DispatchInfo struct {
	// UseLargePathScan selects the two-level path tag scan variant for
	// scenes whose tag stream exceeds a single scan workgroup's reach.
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

// BufferSizes reports the byte size required for every intermediate GPU
// buffer of the compute pipeline. The bump-allocated entries (Lines,
// BinData, SegCounts, Segments) come from the size estimator rather than
// exact layout arithmetic.
type BufferSizes struct {
	PathReduced     uint32
	PathReduced2    uint32
	PathReducedScan uint32
	PathMonoids     uint32
	PathBboxes      uint32
	DrawReduced     uint32
	DrawMonoids     uint32
	Info            uint32
	ClipInps        uint32
	ClipEls         uint32
	ClipBics        uint32
	ClipBboxes      uint32
	DrawBboxes      uint32
	BumpAlloc       uint32
	IndirectCount   uint32
	BinHeaders      uint32
	Paths           uint32
	Lines           uint32
	BinData         uint32
	Tiles           uint32
	SegCounts       uint32
	Segments        uint32
	Ptcl            uint32
}

// String returns a compact summary of the dominant buffer requirements.
func (b BufferSizes) String() string {
	return fmt.Sprintf("BufferSizes[lines=%d segments=%d tiles=%d ptcl=%d binData=%d]",
		b.Lines, b.Segments, b.Tiles, b.Ptcl, b.BinData)
}
