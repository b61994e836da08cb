// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package encoding

import (
	"encoding/binary"
	"testing"
)

// testScene builds a small encoding with one filled triangle.
func testScene() *Encoding {
	enc := NewEncoding()
	enc.EncodeTransform(IdentityTransform())
	enc.EncodeFillStyle(FillRuleNonZero)
	p := enc.NewPathEncoder(true)
	p.MoveTo(10, 10)
	p.LineTo(90, 50)
	p.LineTo(10, 90)
	p.Finish(true)
	enc.EncodeSolidColor(0xFF0000FF)
	return enc
}

// TestResolveLayout verifies the packed stream offsets and padding.
func TestResolveLayout(t *testing.T) {
	enc := testScene()
	layout, data := Resolve(enc)

	if layout.NumPaths != 1 || layout.NumDrawObjects != 1 || layout.NumClips != 0 {
		t.Errorf("layout counts = paths %d draws %d clips %d, want 1 1 0",
			layout.NumPaths, layout.NumDrawObjects, layout.NumClips)
	}
	if layout.PathTagBase != 0 {
		t.Errorf("PathTagBase = %d, want 0", layout.PathTagBase)
	}

	tagWords := layout.PathTagWords()
	if tagWords%pathReduceWG != 0 {
		t.Errorf("tag words = %d, not a multiple of %d", tagWords, pathReduceWG)
	}
	if tagWords < pathReduceWG {
		t.Errorf("tag words = %d, want at least %d", tagWords, pathReduceWG)
	}

	// 4 points = 8 coordinate words.
	if layout.DrawTagBase != layout.PathDataBase+8 {
		t.Errorf("DrawTagBase = %d, want %d", layout.DrawTagBase, layout.PathDataBase+8)
	}
	if layout.DrawDataBase != layout.DrawTagBase+1 {
		t.Errorf("DrawDataBase = %d, want %d", layout.DrawDataBase, layout.DrawTagBase+1)
	}
	if layout.TransformBase != layout.DrawDataBase+1 {
		t.Errorf("TransformBase = %d, want %d", layout.TransformBase, layout.DrawDataBase+1)
	}
	if layout.StyleBase != layout.TransformBase+6 {
		t.Errorf("StyleBase = %d, want %d", layout.StyleBase, layout.TransformBase+6)
	}
	if layout.EndBase != layout.StyleBase+styleStride {
		t.Errorf("EndBase = %d, want %d", layout.EndBase, layout.StyleBase+styleStride)
	}
	if uint32(len(data)) != layout.EndBase*4 {
		t.Errorf("data len = %d bytes, want %d", len(data), layout.EndBase*4)
	}
}

// TestResolvePackedContents reads values back out of the byte buffer.
func TestResolvePackedContents(t *testing.T) {
	enc := testScene()
	layout, data := Resolve(enc)

	word := func(ix uint32) uint32 {
		return binary.LittleEndian.Uint32(data[ix*4:])
	}

	// First tag word: transform, style, lineto, lineto packed LSB first.
	wantWord0 := uint32(PathTagTransform) |
		uint32(PathTagStyle)<<8 |
		uint32(PathTagLineToF32)<<16 |
		uint32(PathTagLineToF32)<<24
	if got := word(layout.PathTagBase); got != wantWord0 {
		t.Errorf("tag word 0 = 0x%08X, want 0x%08X", got, wantWord0)
	}

	if got := word(layout.DrawTagBase); got != DrawTagColor {
		t.Errorf("draw tag = 0x%X, want 0x%X", got, DrawTagColor)
	}
	if got := word(layout.DrawDataBase); got != 0xFF0000FF {
		t.Errorf("draw data = 0x%08X, want 0xFF0000FF", got)
	}

	// Identity transform words: 1 0 0 1 0 0 as f32 bits.
	one := uint32(0x3F800000)
	wantTransform := [6]uint32{one, 0, 0, one, 0, 0}
	for i, want := range wantTransform {
		if got := word(layout.TransformBase + uint32(i)); got != want {
			t.Errorf("transform word %d = 0x%08X, want 0x%08X", i, got, want)
		}
	}

	// Fill non-zero style: all zero flags.
	if got := word(layout.StyleBase); got != 0 {
		t.Errorf("style flags = 0x%X, want 0", got)
	}
}

// TestResolveEmpty verifies an empty encoding still yields a padded tag
// stream so the dispatch sizes stay valid.
func TestResolveEmpty(t *testing.T) {
	layout, data := Resolve(NewEncoding())
	if layout.PathTagWords() != pathReduceWG {
		t.Errorf("empty tag words = %d, want %d", layout.PathTagWords(), pathReduceWG)
	}
	if uint32(len(data)) != layout.EndBase*4 {
		t.Errorf("data len = %d, want %d", len(data), layout.EndBase*4)
	}
	for i, b := range data {
		if b != 0 {
			t.Fatalf("data[%d] = %d, want 0", i, b)
		}
	}
}
