// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package encoding

import (
	"encoding/binary"
	"math"
)

// pathReduceWG is the workgroup size of the path tag reduce stage. The
// packed tag stream is padded to a multiple of this so every reduce
// workgroup reads a full block.
const pathReduceWG = 256

// Layout describes the offsets (in u32 words) of each stream within the
// packed scene buffer.
type Layout struct {
	NumDrawObjects uint32
	NumPaths       uint32
	NumClips       uint32
	PathTagBase    uint32
	PathDataBase   uint32
	DrawTagBase    uint32
	DrawDataBase   uint32
	TransformBase  uint32
	StyleBase      uint32
	// EndBase is the total packed size in u32 words.
	EndBase uint32
}

// PathTagWords returns the padded path tag word count.
func (l *Layout) PathTagWords() uint32 {
	return l.PathDataBase - l.PathTagBase
}

// Resolve packs the encoding into a flat little-endian byte buffer and
// returns its layout. Only solid-color draw objects are supported; the
// caller guarantees this by construction (gradient and image brushes are
// rejected at the boundary).
//
// Buffer order: pathTags (padded) | pathData | drawTags | drawData |
// transforms | styles.
func Resolve(enc *Encoding) (Layout, []byte) {
	tagWords := packPathTags(enc.pathTags)

	paddedTagWords := wgCount(uint32(len(tagWords)), pathReduceWG) * pathReduceWG
	if paddedTagWords == 0 {
		paddedTagWords = pathReduceWG
	}

	layout := Layout{
		NumDrawObjects: enc.numDrawObjects,
		NumPaths:       enc.numPaths,
		NumClips:       enc.numClips,
	}

	offset := uint32(0)
	layout.PathTagBase = offset
	offset += paddedTagWords
	layout.PathDataBase = offset
	offset += uint32(len(enc.pathData))
	layout.DrawTagBase = offset
	offset += uint32(len(enc.drawTags))
	layout.DrawDataBase = offset
	offset += uint32(len(enc.drawData))
	layout.TransformBase = offset
	offset += uint32(len(enc.transforms)) * 6
	layout.StyleBase = offset
	offset += uint32(len(enc.styles))
	layout.EndBase = offset

	words := make([]uint32, offset)
	copy(words[layout.PathTagBase:], tagWords)
	copy(words[layout.PathDataBase:], enc.pathData)
	copy(words[layout.DrawTagBase:], enc.drawTags)
	copy(words[layout.DrawDataBase:], enc.drawData)
	w := layout.TransformBase
	for _, t := range enc.transforms {
		for _, f := range t.words() {
			words[w] = math.Float32bits(f)
			w++
		}
	}
	copy(words[layout.StyleBase:], enc.styles)

	buf := make([]byte, len(words)*4)
	for i, word := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], word)
	}
	return layout, buf
}
