// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package encoding

import "math"

// styleStride is the number of u32 words per style entry.
// Word 0 holds the flags, word 1 the line width bits, word 2 the miter
// limit bits. Fill styles carry zero width and miter words so the stream
// stride stays fixed.
const styleStride = 3

// Style flag bits (word 0).
const (
	// styleFlagStroke marks a stroke style; clear means fill.
	styleFlagStroke uint32 = 1 << 0
	// styleFlagEvenOdd selects the even-odd fill rule; clear means non-zero.
	styleFlagEvenOdd uint32 = 1 << 1

	styleJoinShift     = 2
	styleStartCapShift = 4
	styleEndCapShift   = 6
	styleCapJoinMask   = 0x3
)

// Join values within the style flags.
const (
	styleJoinBevel uint32 = 0
	styleJoinMiter uint32 = 1
	styleJoinRound uint32 = 2
)

// Cap values within the style flags.
const (
	styleCapButt   uint32 = 0
	styleCapSquare uint32 = 1
	styleCapRound  uint32 = 2
)

// FillRule selects the winding rule for filled paths.
type FillRule uint8

// Fill rules.
const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// StrokeStyle carries stroke parameters into the style stream. The cap and
// join fields use the style flag values above.
type StrokeStyle struct {
	Width      float32
	MiterLimit float32
	StartCap   uint32
	EndCap     uint32
	Join       uint32
}

// fillStyleWords returns the style stream words for a fill.
func fillStyleWords(rule FillRule) [styleStride]uint32 {
	var flags uint32
	if rule == FillRuleEvenOdd {
		flags |= styleFlagEvenOdd
	}
	return [styleStride]uint32{flags, 0, 0}
}

// strokeStyleWords returns the style stream words for a stroke.
func strokeStyleWords(s StrokeStyle) [styleStride]uint32 {
	flags := styleFlagStroke |
		(s.Join&styleCapJoinMask)<<styleJoinShift |
		(s.StartCap&styleCapJoinMask)<<styleStartCapShift |
		(s.EndCap&styleCapJoinMask)<<styleEndCapShift
	return [styleStride]uint32{
		flags,
		math.Float32bits(s.Width),
		math.Float32bits(s.MiterLimit),
	}
}
