// math/math_test.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestClamp(t *testing.T) {
	type testCase struct {
		x, low, high, expected int
	}
	for _, tc := range []testCase{
		{x: 1, low: 0, high: 2, expected: 1},
		{x: -1, low: 0, high: 2, expected: 0},
		{x: 3, low: 0, high: 2, expected: 2},
		{x: 0, low: 0, high: 2, expected: 0},
		{x: 2, low: 0, high: 2, expected: 2},
	} {
		if r := Clamp(tc.x, tc.low, tc.high); r != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.x, tc.low, tc.high, r, tc.expected)
		}
	}
}

func TestExtent2D(t *testing.T) {
	e := Extent2DFromPoints([][2]float32{{2, 1}, {0, 5}, {3, 4}})

	if e.P0 != ([2]float32{0, 1}) || e.P1 != ([2]float32{3, 5}) {
		t.Errorf("unexpected bounds: %+v", e)
	}
	if e.Width() != 3 || e.Height() != 4 {
		t.Errorf("got width %f height %f, expected 3, 4", e.Width(), e.Height())
	}
	if c := e.Center(); c != ([2]float32{1.5, 3}) {
		t.Errorf("got center %+v, expected (1.5, 3)", c)
	}
	if !e.Inside([2]float32{1, 2}) {
		t.Errorf("(1,2) reported outside %+v", e)
	}
	if e.Inside([2]float32{4, 2}) {
		t.Errorf("(4,2) reported inside %+v", e)
	}

	off := e.Offset([2]float32{1, -1})
	if off.P0 != ([2]float32{1, 0}) || off.P1 != ([2]float32{4, 4}) {
		t.Errorf("unexpected offset bounds: %+v", off)
	}
}

func TestMatrix3Ortho(t *testing.T) {
	m := Identity3x3().Ortho(0, 20, 0, 40)

	// Corners of the ortho region map to NDC corners.
	if p := m.TransformPoint([2]float32{0, 0}); p != ([2]float32{-1, -1}) {
		t.Errorf("(0,0) transformed to %+v, expected (-1,-1)", p)
	}
	if p := m.TransformPoint([2]float32{20, 40}); p != ([2]float32{1, 1}) {
		t.Errorf("(20,40) transformed to %+v, expected (1,1)", p)
	}
	if p := m.TransformPoint([2]float32{10, 20}); p != ([2]float32{0, 0}) {
		t.Errorf("(10,20) transformed to %+v, expected (0,0)", p)
	}
}

func TestCirclePoints(t *testing.T) {
	pts := CirclePoints(90)
	if len(pts) != 90 {
		t.Fatalf("got %d points, expected 90", len(pts))
	}
	for _, p := range pts {
		if d := Abs(Length2f(p) - 1); d > 1e-5 {
			t.Errorf("point %+v is %f from the unit circle", p, d)
		}
	}
}
