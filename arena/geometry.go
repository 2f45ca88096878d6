// arena/geometry.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package arena

import (
	"errors"
	"fmt"

	"github.com/hfinley/centerline/math"
)

// Arena coordinates are in meters in a standard small dressage arena: x
// runs 0..20 across the arena's width and y runs 0..40 along its length.
// A is at the middle of the y=0 short end where the rider enters and C is
// opposite it; the rail letters sit 6 and 20 meters from each short end
// and D, X and G sit on the centerline.
const (
	Width  = 20
	Length = 40
)

// CircleRadius is the radius of every drawn circle figure: half the
// arena's width, i.e. a standard 20 meter circle.
const CircleRadius = Width / 2

type Marker struct {
	Id       string
	Position [2]float32
}

// markers is the geometry table, in the order labels are drawn.  All
// positions are domain constants; nothing is ever computed from input.
var markers = []Marker{
	{Id: "A", Position: [2]float32{10, 0}},
	{Id: "K", Position: [2]float32{0, 6}},
	{Id: "E", Position: [2]float32{0, 20}},
	{Id: "H", Position: [2]float32{0, 34}},
	{Id: "C", Position: [2]float32{10, 40}},
	{Id: "M", Position: [2]float32{20, 34}},
	{Id: "B", Position: [2]float32{20, 20}},
	{Id: "F", Position: [2]float32{20, 6}},
	{Id: "D", Position: [2]float32{10, 6}},
	{Id: "X", Position: [2]float32{10, 20}},
	{Id: "G", Position: [2]float32{10, 34}},
}

var markerPositions = func() map[string][2]float32 {
	m := make(map[string][2]float32)
	for _, mk := range markers {
		m[mk.Id] = mk.Position
	}
	return m
}()

// ErrUnknownMarker indicates authored content that references a letter
// that isn't in the geometry table; this is a data defect, not something
// to recover from at draw time.
var ErrUnknownMarker = errors.New("unknown arena marker")

// MarkerPosition returns the arena coordinates of the given letter.
func MarkerPosition(id string) ([2]float32, error) {
	p, ok := markerPositions[id]
	if !ok {
		return [2]float32{}, fmt.Errorf("%q: %w", id, ErrUnknownMarker)
	}
	return p, nil
}

// Markers returns the full geometry table in drawing order.
func Markers() []Marker {
	m := make([]Marker, len(markers))
	copy(m, markers)
	return m
}

///////////////////////////////////////////////////////////////////////////
// Coordinate projection

// Padding is the fixed margin added around the arena when its coordinates
// are projected onto a drawing surface; it leaves room for the letter
// labels outside the rail.
const Padding = 4

// Project maps a point in arena coordinates to diagram coordinates by
// applying the padding offset.  It is exactly reversed by Unproject.
func Project(p [2]float32) [2]float32 {
	return math.Add2f(p, [2]float32{Padding, Padding})
}

// Unproject reverses Project.
func Unproject(p [2]float32) [2]float32 {
	return math.Sub2f(p, [2]float32{Padding, Padding})
}

// Bounds returns the diagram bounds: the arena plus padding on all sides.
func Bounds() math.Extent2D {
	return math.Extent2D{P0: [2]float32{0, 0},
		P1: [2]float32{Width + 2*Padding, Length + 2*Padding}}
}

// LabelPosition gives the spot where a marker's letter is drawn: just
// outside the rail for the side letters, below/above the arena for A and
// C, and nudged off the centerline for the interior letters D, X and G.
func LabelPosition(m Marker) [2]float32 {
	const off = 2
	p := m.Position
	switch {
	case p[0] == 0:
		p[0] -= off
	case p[0] == Width:
		p[0] += off
	case p[1] == 0:
		p[1] -= off
	case p[1] == Length:
		p[1] += off
	default:
		// Centerline letters sit inside the arena, so just set them a
		// little off the line they mark.
		p[0] += off / 2
	}
	return Project(p)
}
