// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package encoding

import "math"

// Vec2 is a small 2D vector used by the encoder and estimator.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) add(o Vec2) Vec2    { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) sub(o Vec2) Vec2    { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

func ceil32(x float32) float32 { return float32(math.Ceil(float64(x))) }
func sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func maxu32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// wgCount performs the ceiling division used for workgroup dispatch sizing.
func wgCount(n, wgSize uint32) uint32 {
	if n == 0 {
		return 0
	}
	return (n + wgSize - 1) / wgSize
}
