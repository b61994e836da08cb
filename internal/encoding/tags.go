// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Path and draw tag values for the packed scene stream.
//
// The values match the Vello shader constants (vello_shaders pathtag.rs and
// drawtag.rs) so the packed scene is consumable by the standard compute
// stages.

package encoding

// Path tag bytes. Four tags are packed per u32 word, LSB first.
const (
	// PathTagLineToF32 marks a line segment; consumes one point (2 f32).
	PathTagLineToF32 uint8 = 0x9
	// PathTagQuadToF32 marks a quadratic segment; consumes two points.
	PathTagQuadToF32 uint8 = 0xA
	// PathTagCubicToF32 marks a cubic segment; consumes three points.
	PathTagCubicToF32 uint8 = 0xB
	// PathTagPath marks the end of a path.
	PathTagPath uint8 = 0x10
	// PathTagTransform marks a transform stream advance.
	PathTagTransform uint8 = 0x20
	// PathTagStyle marks a style stream advance.
	PathTagStyle uint8 = 0x40
)

// Draw tags. One u32 per draw object. The low bits encode per-object
// scene/info stream strides consumed by the draw_leaf stage.
const (
	DrawTagNop       uint32 = 0
	DrawTagColor     uint32 = 0x44
	DrawTagBeginClip uint32 = 0x9
	DrawTagEndClip   uint32 = 0x21
)

// packPathTags packs raw tag bytes into u32 words, 4 tags per word,
// LSB first: word = tag0 | tag1<<8 | tag2<<16 | tag3<<24.
func packPathTags(rawTags []uint8) []uint32 {
	numWords := (len(rawTags) + 3) / 4
	words := make([]uint32, numWords)
	for i, tag := range rawTags {
		words[i/4] |= uint32(tag) << (uint(i%4) * 8)
	}
	return words
}
