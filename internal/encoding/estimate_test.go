// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package encoding

import "testing"

// TestEstimatorLine verifies the per-line tally.
func TestEstimatorLine(t *testing.T) {
	var est BumpEstimator
	est.CountLine(IdentityTransform(), Vec2{0, 0}, Vec2{100, 0})
	tally := est.Tally()

	if tally.Lines < 1 {
		t.Errorf("Lines = %d, want >= 1", tally.Lines)
	}
	// A 100px horizontal line crosses at least 100/16 tile columns.
	if tally.Segments < 7 {
		t.Errorf("Segments = %d, want >= 7", tally.Segments)
	}
	if tally.SegCounts < tally.Segments {
		t.Errorf("SegCounts = %d < Segments = %d", tally.SegCounts, tally.Segments)
	}
}

// TestEstimatorCurvesScaleWithSize verifies larger curves get more lines.
func TestEstimatorCurvesScaleWithSize(t *testing.T) {
	var small, large BumpEstimator
	id := IdentityTransform()
	small.CountCubic(id, Vec2{0, 0}, Vec2{3, 5}, Vec2{7, 5}, Vec2{10, 0})
	large.CountCubic(id, Vec2{0, 0}, Vec2{300, 500}, Vec2{700, 500}, Vec2{1000, 0})

	if large.Tally().Lines <= small.Tally().Lines {
		t.Errorf("large curve lines (%d) <= small curve lines (%d)",
			large.Tally().Lines, small.Tally().Lines)
	}
}

// TestEstimatorTransformScale verifies the transform scale feeds the bound.
func TestEstimatorTransformScale(t *testing.T) {
	var unit, scaled BumpEstimator
	q0, q1, q2 := Vec2{0, 0}, Vec2{50, 80}, Vec2{100, 0}
	unit.CountQuad(IdentityTransform(), q0, q1, q2)
	scaled.CountQuad(NewTransform([6]float32{8, 0, 0, 0, 8, 0}), q0, q1, q2)

	if scaled.Tally().Lines <= unit.Tally().Lines {
		t.Errorf("scaled lines (%d) <= unit lines (%d)",
			scaled.Tally().Lines, unit.Tally().Lines)
	}
}

// TestEstimatorStroke verifies strokes at least double the fill tally and
// reserve cap/join lines.
func TestEstimatorStroke(t *testing.T) {
	id := IdentityTransform()

	var fill BumpEstimator
	fill.CountLine(id, Vec2{0, 0}, Vec2{100, 0})
	fillTally := fill.Tally()

	var stroke BumpEstimator
	stroke.CountLine(id, Vec2{0, 0}, Vec2{100, 0})
	stroke.CountStroke(id, 1, 4)
	strokeTally := stroke.Tally()

	if strokeTally.Lines < 2*fillTally.Lines {
		t.Errorf("stroke lines = %d, want >= %d", strokeTally.Lines, 2*fillTally.Lines)
	}
	if strokeTally.Segments <= 2*fillTally.Segments {
		t.Errorf("stroke segments = %d, want > %d (cap/join allowance)",
			strokeTally.Segments, 2*fillTally.Segments)
	}
}

// TestEstimatorStrokeAfterFill verifies a stroke doubles only its own
// path's tally, leaving earlier paths' estimates alone.
func TestEstimatorStrokeAfterFill(t *testing.T) {
	id := IdentityTransform()

	countFill := func(b *BumpEstimator) {
		b.BeginPath()
		for i := 0; i < 100; i++ {
			b.CountLine(id, Vec2{float32(i), 0}, Vec2{float32(i + 1), 0})
		}
	}
	countStroke := func(b *BumpEstimator) {
		b.BeginPath()
		b.CountLine(id, Vec2{0, 0}, Vec2{10, 0})
		b.CountStroke(id, 1, 4)
	}

	var fillOnly, strokeOnly, mixed BumpEstimator
	countFill(&fillOnly)
	countStroke(&strokeOnly)
	countFill(&mixed)
	countStroke(&mixed)

	fillLines := fillOnly.Tally().Lines
	strokeLines := strokeOnly.Tally().Lines
	mixedLines := mixed.Tally().Lines

	// The mixed tally is the sum of the parts, up to ceiling rounding.
	if want := fillLines + strokeLines; mixedLines > want || mixedLines < want-1 {
		t.Errorf("mixed lines = %d, want %d or %d (fill %d + stroke %d)",
			mixedLines, want-1, want, fillLines, strokeLines)
	}
}

// TestEstimatorManyStrokes verifies repeated strokes accumulate linearly.
func TestEstimatorManyStrokes(t *testing.T) {
	id := IdentityTransform()

	var one BumpEstimator
	one.BeginPath()
	one.CountLine(id, Vec2{0, 0}, Vec2{100, 0})
	one.CountStroke(id, 1, 4)
	solo := one.Tally()

	var est BumpEstimator
	for i := 0; i < 64; i++ {
		est.BeginPath()
		est.CountLine(id, Vec2{0, 0}, Vec2{100, 0})
		est.CountStroke(id, 1, 4)
	}
	tally := est.Tally()

	if tally.Lines > 64*solo.Lines || tally.Lines < 64*solo.Lines-64 {
		t.Errorf("64-stroke lines = %d, want about %d", tally.Lines, 64*solo.Lines)
	}
	if tally.Segments > 64*solo.Segments || tally.Segments < 64*solo.Segments-64 {
		t.Errorf("64-stroke segments = %d, want about %d", tally.Segments, 64*solo.Segments)
	}
}

// TestEstimatorAppendAndReset verifies tally merging and reuse.
func TestEstimatorAppendAndReset(t *testing.T) {
	id := IdentityTransform()

	var a, b BumpEstimator
	a.CountLine(id, Vec2{0, 0}, Vec2{50, 0})
	b.CountLine(id, Vec2{0, 0}, Vec2{50, 0})

	single := a.Tally()
	a.Append(&b)
	merged := a.Tally()
	if merged.Lines != 2*single.Lines {
		t.Errorf("merged lines = %d, want %d", merged.Lines, 2*single.Lines)
	}

	a.Reset()
	tally := a.Tally()
	// Floors only after reset.
	if tally.Lines != 1 || tally.Segments != 1 || tally.SegCounts != 1 {
		t.Errorf("reset tally = %+v, want unit floors", tally)
	}
}

// TestEstimatorEmptyTallyFloors verifies the empty tally never produces a
// zero-sized buffer.
func TestEstimatorEmptyTallyFloors(t *testing.T) {
	var est BumpEstimator
	tally := est.Tally()
	if tally.Lines == 0 || tally.Segments == 0 || tally.SegCounts == 0 || tally.BinData == 0 {
		t.Errorf("empty tally has zero entry: %+v", tally)
	}
}
