// panes/arena_test.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package panes

import (
	"testing"

	"github.com/hfinley/centerline/arena"
	"github.com/hfinley/centerline/math"
	"github.com/hfinley/centerline/renderer"
)

func TestDiagramTransformFits(t *testing.T) {
	b := arena.Bounds()
	for _, extent := range []math.Extent2D{
		{P0: [2]float32{0, 0}, P1: [2]float32{800, 600}},
		{P0: [2]float32{0, 0}, P1: [2]float32{300, 900}},
		{P0: [2]float32{0, 0}, P1: [2]float32{100, 100}},
	} {
		scale, offset := diagramTransform(extent)
		w, h := scale*b.Width(), scale*b.Height()
		if w > extent.Width()+0.5 || h > extent.Height()+0.5 {
			t.Errorf("%+v: diagram %vx%v overflows pane", extent, w, h)
		}
		// Centered: equal margins on both axes.
		if mx := extent.Width() - w; math.Abs(offset[0]-mx/2) > 0.5 {
			t.Errorf("%+v: x offset %v, expected %v", extent, offset[0], mx/2)
		}
		if my := extent.Height() - h; math.Abs(offset[1]-my/2) > 0.5 {
			t.Errorf("%+v: y offset %v, expected %v", extent, offset[1], my/2)
		}
	}
}

func TestAddVisibleSegments(t *testing.T) {
	s, err := arena.LoadStore(nil, nil)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	td, err := s.GetTest("usdf-intro-a")
	if err != nil {
		t.Fatalf("GetTest: %v", err)
	}

	identity := func(p [2]float32) [2]float32 { return p }

	vis := arena.MakeVisibilitySet()
	ld := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(ld)
	if n, err := addVisibleSegments(ld, td, vis, 1, identity); err != nil {
		t.Fatalf("addVisibleSegments: %v", err)
	} else if n != 8 {
		t.Errorf("drew %d segments with everything visible, expected 8", n)
	}

	// Hiding the circle step drops exactly one segment.
	vis.Toggle(3, false)
	ld2 := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(ld2)
	if n, _ := addVisibleSegments(ld2, td, vis, 1, identity); n != 7 {
		t.Errorf("drew %d segments with step 3 hidden, expected 7", n)
	}
}

func TestAddVisibleSegmentsUnknownMarker(t *testing.T) {
	td := &arena.TestDefinition{
		Id:       "bad",
		Name:     "bad",
		Segments: []arena.Segment{{Step: 1, Line: []string{"A", "Q"}}},
	}

	ld := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(ld)
	identity := func(p [2]float32) [2]float32 { return p }
	if _, err := addVisibleSegments(ld, td, arena.MakeVisibilitySet(), 1, identity); err == nil {
		t.Errorf("expected an error for an unknown marker")
	}
}
