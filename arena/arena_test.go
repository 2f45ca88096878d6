// arena/arena_test.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package arena

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func loadTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := LoadStore(nil, nil)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	return s
}

func TestMarkerPositions(t *testing.T) {
	if n := len(Markers()); n != 11 {
		t.Errorf("geometry table has %d markers, expected 11", n)
	}

	for _, tc := range []struct {
		id  string
		pos [2]float32
	}{
		{id: "A", pos: [2]float32{10, 0}},
		{id: "C", pos: [2]float32{10, 40}},
		{id: "X", pos: [2]float32{10, 20}},
		{id: "K", pos: [2]float32{0, 6}},
		{id: "M", pos: [2]float32{20, 34}},
	} {
		p, err := MarkerPosition(tc.id)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.id, err)
		}
		if p != tc.pos {
			t.Errorf("%s: got %+v, expected %+v", tc.id, p, tc.pos)
		}
	}

	if _, err := MarkerPosition("Q"); !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("expected ErrUnknownMarker for Q, got %v", err)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	for _, m := range Markers() {
		if p := Unproject(Project(m.Position)); p != m.Position {
			t.Errorf("%s: round trip gave %+v, expected %+v", m.Id, p, m.Position)
		}
	}
}

// Every marker referenced by any shipped test must be in the geometry
// table; unknown letters are an authoring defect that must fail loudly.
func TestShippedContentMarkers(t *testing.T) {
	s := loadTestStore(t)
	for _, id := range s.TestIds() {
		td, err := s.GetTest(id)
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		for _, seg := range td.Segments {
			for _, mid := range seg.Line {
				if _, err := MarkerPosition(mid); err != nil {
					t.Errorf("%s: step %d: %v", id, seg.Step, err)
				}
			}
			if seg.IsCircle() {
				if _, err := MarkerPosition(seg.Circle); err != nil {
					t.Errorf("%s: step %d: %v", id, seg.Step, err)
				}
			}
		}
	}
}

func TestStoreSeededContent(t *testing.T) {
	s := loadTestStore(t)

	ids := s.TestIds()
	if !slices.Contains(ids, "usdf-intro-a") {
		t.Fatalf("usdf-intro-a missing from store ids %v", ids)
	}

	td, err := s.GetTest("usdf-intro-a")
	if err != nil {
		t.Fatalf("GetTest: %v", err)
	}
	if len(td.Rows) != 9 {
		t.Errorf("got %d rows, expected 9", len(td.Rows))
	}
	if len(td.Segments) != 8 {
		t.Errorf("got %d segments, expected 8", len(td.Segments))
	}

	// Step 3 is the circle right at B, the marker at the middle of the
	// right rail.
	var step3 []Segment
	for _, seg := range td.Segments {
		if seg.Step == 3 {
			step3 = append(step3, seg)
		}
	}
	if len(step3) != 1 || !step3[0].IsCircle() || step3[0].Circle != "B" || step3[0].Direction != "right" {
		t.Errorf("unexpected step 3 segments: %+v", step3)
	}

	// Step 9 has a row but no segments.
	if steps := td.SegmentSteps(); !slices.Equal(steps, []int{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("got segment steps %v, expected 1..8", steps)
	}
}

func TestStoreUnknownId(t *testing.T) {
	s := loadTestStore(t)
	if _, err := s.GetTest("nope"); !errors.Is(err, ErrUnknownTest) {
		t.Errorf("expected ErrUnknownTest, got %v", err)
	}
}

// The store hands out copies; mutating one must not affect what the store
// returns next.
func TestStoreCopies(t *testing.T) {
	s := loadTestStore(t)
	td, _ := s.GetTest("usdf-intro-a")
	td.Segments[0].Line[0] = "Q"
	td.Rows[0].Directive = "scribbled on"

	td2, _ := s.GetTest("usdf-intro-a")
	if td2.Segments[0].Line[0] == "Q" || td2.Rows[0].Directive == "scribbled on" {
		t.Errorf("mutation of a returned test leaked into the store")
	}
}

func TestVisibilityToggle(t *testing.T) {
	vis := MakeVisibilitySet()

	for step := 1; step <= 9; step++ {
		if !vis.IsVisible(step) {
			t.Errorf("step %d hidden initially", step)
		}
	}

	vis.Toggle(3, false)
	vis.Toggle(3, false) // idempotent
	if vis.IsVisible(3) {
		t.Errorf("step 3 still visible after hide")
	}
	if !vis.IsVisible(1) {
		t.Errorf("hiding step 3 affected step 1")
	}

	vis.Toggle(3, true)
	vis.Toggle(3, true)
	if !vis.IsVisible(3) {
		t.Errorf("step 3 still hidden after show")
	}
}

func TestVisibilitySetAll(t *testing.T) {
	s := loadTestStore(t)
	td, _ := s.GetTest("usdf-intro-a")

	vis := MakeVisibilitySet()
	vis.SetAll(false, td)

	for step := 1; step <= 8; step++ {
		if vis.IsVisible(step) {
			t.Errorf("step %d visible after hide all", step)
		}
	}
	// Step 9 only has a row; there is nothing to hide.
	if !vis.IsVisible(9) {
		t.Errorf("rows-only step 9 was hidden by hide all")
	}

	vis.SetAll(true, td)
	for step := 1; step <= 9; step++ {
		if !vis.IsVisible(step) {
			t.Errorf("step %d hidden after show all", step)
		}
	}
}

func TestVisibilityResetOnTestChange(t *testing.T) {
	vis := MakeVisibilitySet()
	vis.Toggle(2, false)
	vis.Toggle(5, false)

	vis.Reset()
	for step := 1; step <= 9; step++ {
		if !vis.IsVisible(step) {
			t.Errorf("step %d hidden after reset", step)
		}
	}
}

func TestGroupRowsFirstSeenOrder(t *testing.T) {
	td := &TestDefinition{
		Id:   "grouping",
		Name: "grouping",
		Rows: []StepRow{
			{Step: 2, Location: "A", Directive: "a"},
			{Step: 2, Location: "X", Directive: "b"},
			{Step: 5, Location: "C", Directive: "c"},
			{Step: 1, Location: "E", Directive: "d"},
			{Step: 2, Location: "B", Directive: "e"}, // joins the existing step 2 group
		},
	}

	groups := td.GroupRows()
	steps := make([]int, len(groups))
	for i, g := range groups {
		steps[i] = g.Step
	}
	if !slices.Equal(steps, []int{2, 5, 1}) {
		t.Fatalf("got group order %v, expected [2 5 1]", steps)
	}
	if len(groups[0].Rows) != 3 {
		t.Errorf("step 2 group has %d rows, expected 3", len(groups[0].Rows))
	}
	if groups[0].Rows[2].Directive != "e" {
		t.Errorf("late row didn't join its group: %+v", groups[0].Rows)
	}
}

func TestValidateRejectsBadContent(t *testing.T) {
	for _, tc := range []struct {
		name string
		td   TestDefinition
	}{
		{
			name: "unknown marker in line",
			td: TestDefinition{Id: "t", Name: "t",
				Rows:     []StepRow{{Step: 1, Location: "A", Directive: "x"}},
				Segments: []Segment{{Step: 1, Line: []string{"A", "Z"}}}},
		},
		{
			name: "unknown circle marker",
			td: TestDefinition{Id: "t", Name: "t",
				Rows:     []StepRow{{Step: 1, Location: "A", Directive: "x"}},
				Segments: []Segment{{Step: 1, Circle: "Z", Direction: "left"}}},
		},
		{
			name: "one-marker line",
			td: TestDefinition{Id: "t", Name: "t",
				Rows:     []StepRow{{Step: 1, Location: "A", Directive: "x"}},
				Segments: []Segment{{Step: 1, Line: []string{"A"}}}},
		},
		{
			name: "both variants",
			td: TestDefinition{Id: "t", Name: "t",
				Rows:     []StepRow{{Step: 1, Location: "A", Directive: "x"}},
				Segments: []Segment{{Step: 1, Line: []string{"A", "C"}, Circle: "B", Direction: "left"}}},
		},
		{
			name: "bad direction",
			td: TestDefinition{Id: "t", Name: "t",
				Rows:     []StepRow{{Step: 1, Location: "A", Directive: "x"}},
				Segments: []Segment{{Step: 1, Circle: "B", Direction: "clockwise"}}},
		},
		{
			name: "no rows",
			td:   TestDefinition{Id: "t", Name: "t"},
		},
	} {
		if err := tc.td.validate(); err == nil {
			t.Errorf("%s: validation passed unexpectedly", tc.name)
		}
	}
}

// Hiding step 3 of the seeded test must omit exactly the circle at B: the
// other seven segments and all eleven letters are still drawn.
func TestDiagramHidesToggledStep(t *testing.T) {
	s := loadTestStore(t)
	td, _ := s.GetTest("usdf-intro-a")

	vis := MakeVisibilitySet()
	vis.Toggle(3, false)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, td, vis); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	svg := buf.String()

	polylines := strings.Count(svg, "<polyline")
	circles := strings.Count(svg, "  <circle")
	if polylines+circles != 7 {
		t.Errorf("got %d polylines + %d circles, expected 7 total", polylines, circles)
	}
	if circles != 1 {
		t.Errorf("got %d circles, expected 1 (the circle at E)", circles)
	}
	if labels := strings.Count(svg, "<text"); labels != 11 {
		t.Errorf("got %d marker labels, expected 11", labels)
	}

	// All eight segments come back once step 3 is shown again.
	vis.Toggle(3, true)
	buf.Reset()
	if err := WriteSVG(&buf, td, vis); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	svg = buf.String()
	if n := strings.Count(svg, "<polyline") + strings.Count(svg, "  <circle"); n != 8 {
		t.Errorf("got %d segments, expected 8", n)
	}
}

func TestLoadTestFileZstd(t *testing.T) {
	td := &TestDefinition{
		Id:   "packed",
		Name: "Packed Test",
		Rows: []StepRow{{Step: 1, Location: "A", Directive: "Enter working walk"}},
		Segments: []Segment{
			{Step: 1, Line: []string{"A", "X"}},
		},
	}
	b, err := json.Marshal(td)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "packed.json.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	if _, err := zw.Write(b); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	f.Close()

	got, err := LoadTestFile(path)
	if err != nil {
		t.Fatalf("LoadTestFile: %v", err)
	}
	if got.Id != td.Id || len(got.Segments) != 1 || got.Segments[0].Line[1] != "X" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
