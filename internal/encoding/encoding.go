// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package encoding implements the scene encoding engine for the Vello-style
// compute pipeline: dual-stream command encoding (tags + data), path
// encoding, scene resolution into flat GPU buffers, render configuration,
// and worst-case memory estimation.
//
// Reference layout: vello_encoding (encoding.rs, resolve.rs, config.rs).
package encoding

import "math"

// Encoding accumulates the dual-stream scene representation: a compact
// path tag stream with separate data streams for coordinates, draw
// commands, transforms, and styles.
type Encoding struct {
	// pathTags is the raw (unpacked) path command stream, 1 byte each.
	pathTags []uint8

	// pathData holds path coordinates as float32 bits.
	pathData []uint32

	// drawTags holds one tag per draw object.
	drawTags []uint32

	// drawData holds draw parameters (packed colors, clip blend words).
	drawData []uint32

	// transforms is the transform stream, advanced by PathTagTransform.
	transforms []Transform

	// styles is the style stream, styleStride words per entry.
	styles []uint32

	numPaths        uint32
	numPathSegments uint32
	numDrawObjects  uint32
	numClips        uint32
	numOpenClips    uint32
}

// NewEncoding creates an empty encoding.
func NewEncoding() *Encoding {
	return &Encoding{
		pathTags: make([]uint8, 0, 64),
		pathData: make([]uint32, 0, 256),
		drawTags: make([]uint32, 0, 16),
		drawData: make([]uint32, 0, 16),
	}
}

// Reset clears the encoding for reuse without deallocating memory.
func (e *Encoding) Reset() {
	e.pathTags = e.pathTags[:0]
	e.pathData = e.pathData[:0]
	e.drawTags = e.drawTags[:0]
	e.drawData = e.drawData[:0]
	e.transforms = e.transforms[:0]
	e.styles = e.styles[:0]
	e.numPaths = 0
	e.numPathSegments = 0
	e.numDrawObjects = 0
	e.numClips = 0
	e.numOpenClips = 0
}

// IsEmpty reports whether no path commands have been encoded.
func (e *Encoding) IsEmpty() bool {
	return len(e.pathTags) == 0
}

// NumPaths returns the number of completed paths.
func (e *Encoding) NumPaths() uint32 { return e.numPaths }

// NumDrawObjects returns the number of draw objects.
func (e *Encoding) NumDrawObjects() uint32 { return e.numDrawObjects }

// NumClips returns the number of clip operations (begin + end).
func (e *Encoding) NumClips() uint32 { return e.numClips }

// NumPathSegments returns the number of encoded path segments.
func (e *Encoding) NumPathSegments() uint32 { return e.numPathSegments }

// EncodeTransform appends a transform to the stream and marks it in the
// tag stream.
func (e *Encoding) EncodeTransform(t Transform) {
	e.pathTags = append(e.pathTags, PathTagTransform)
	e.transforms = append(e.transforms, t)
}

// EncodeFillStyle appends a fill style entry.
func (e *Encoding) EncodeFillStyle(rule FillRule) {
	e.encodeStyleWords(fillStyleWords(rule))
}

// EncodeStrokeStyle appends a stroke style entry.
func (e *Encoding) EncodeStrokeStyle(s StrokeStyle) {
	e.encodeStyleWords(strokeStyleWords(s))
}

func (e *Encoding) encodeStyleWords(words [styleStride]uint32) {
	e.pathTags = append(e.pathTags, PathTagStyle)
	e.styles = append(e.styles, words[:]...)
}

// EncodeSolidColor appends a solid color draw object. The color is packed
// premultiplied RGBA with R in the low byte.
func (e *Encoding) EncodeSolidColor(packed uint32) {
	e.drawTags = append(e.drawTags, DrawTagColor)
	e.drawData = append(e.drawData, packed)
	e.numDrawObjects++
}

// EncodeBeginClip pushes a clip with the given blend word and alpha. The
// most recently encoded path becomes the clip path.
func (e *Encoding) EncodeBeginClip(blend uint32, alpha float32) {
	e.drawTags = append(e.drawTags, DrawTagBeginClip)
	e.drawData = append(e.drawData, blend, math.Float32bits(alpha))
	e.numClips++
	e.numOpenClips++
	e.numDrawObjects++
}

// EncodeEndClip pops the current clip. Unbalanced end-clips are ignored.
func (e *Encoding) EncodeEndClip() {
	if e.numOpenClips == 0 {
		return
	}
	e.drawTags = append(e.drawTags, DrawTagEndClip)
	// An end clip does not consume a path, but still counts one so the
	// draw object and path indices stay aligned across the pipeline.
	e.numPaths++
	e.numClips++
	e.numOpenClips--
	e.numDrawObjects++
}

// Append concatenates another encoding after this one. The streams are
// position-independent (tags advance stream cursors), so concatenation is
// direct with no index fixup.
func (e *Encoding) Append(other *Encoding) {
	if other == nil || other.IsEmpty() {
		return
	}
	e.pathTags = append(e.pathTags, other.pathTags...)
	e.pathData = append(e.pathData, other.pathData...)
	e.drawTags = append(e.drawTags, other.drawTags...)
	e.drawData = append(e.drawData, other.drawData...)
	e.transforms = append(e.transforms, other.transforms...)
	e.styles = append(e.styles, other.styles...)
	e.numPaths += other.numPaths
	e.numPathSegments += other.numPathSegments
	e.numDrawObjects += other.numDrawObjects
	e.numClips += other.numClips
	e.numOpenClips += other.numOpenClips
}
