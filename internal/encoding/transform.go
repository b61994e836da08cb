// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package encoding

// Transform is the engine's affine transform representation: a 2x2 matrix
// stored column-major plus a translation vector. This is the layout the
// transform stream uses on the GPU.
type Transform struct {
	Matrix      [4]float32
	Translation [2]float32
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return Transform{Matrix: [4]float32{1, 0, 0, 1}}
}

// NewTransform converts a row-major 2x3 affine matrix
// [m0 m1 m2; m3 m4 m5] into the engine representation.
func NewTransform(m [6]float32) Transform {
	return Transform{
		Matrix:      [4]float32{m[0], m[3], m[1], m[4]},
		Translation: [2]float32{m[2], m[5]},
	}
}

// Apply transforms the point (x, y).
func (t Transform) Apply(x, y float32) (float32, float32) {
	return t.Matrix[0]*x + t.Matrix[2]*y + t.Translation[0],
		t.Matrix[1]*x + t.Matrix[3]*y + t.Translation[1]
}

// scaleBound returns an upper bound on the scale factor the transform
// applies to any direction, used to scale flattening tolerance estimates.
// The bound is the larger column norm, which is within sqrt(2) of the true
// operator norm. That slack is fine for worst-case estimation.
func (t Transform) scaleBound() float32 {
	c0 := Vec2{t.Matrix[0], t.Matrix[1]}.length()
	c1 := Vec2{t.Matrix[2], t.Matrix[3]}.length()
	return max32(c0, c1)
}

// words returns the six f32 values in stream order (matrix then translation).
func (t Transform) words() [6]float32 {
	return [6]float32{
		t.Matrix[0], t.Matrix[1], t.Matrix[2], t.Matrix[3],
		t.Translation[0], t.Translation[1],
	}
}
