// panes/arena.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package panes

import (
	"github.com/hfinley/centerline/arena"
	"github.com/hfinley/centerline/log"
	"github.com/hfinley/centerline/math"
	"github.com/hfinley/centerline/platform"
	"github.com/hfinley/centerline/renderer"
)

// Colors used for the diagram; the background is paper white so that what
// is on screen matches the printed/exported version.
var (
	diagramBackgroundColor = renderer.RGB{R: 1, G: 1, B: 1}
	diagramRailColor       = renderer.RGB{R: 0.1, G: 0.1, B: 0.1}
	diagramGuideColor      = renderer.RGB{R: 0.7, G: 0.7, B: 0.7}
	diagramSegmentColor    = renderer.RGBFromHex(0xdc143c)
	diagramLabelColor      = renderer.RGB{R: 0.1, G: 0.1, B: 0.1}
)

// circleTessellation is the segment count used when circles are drawn.
const circleTessellation = 90

// ArenaPane draws the arena diagram for the currently selected test:
// rail, guide lines, letter labels and the path segments of the steps
// that are currently visible.
type ArenaPane struct {
	test       *arena.TestDefinition
	visibility *arena.VisibilitySet

	font *renderer.Font
	lg   *log.Logger
}

func NewArenaPane() *ArenaPane {
	return &ArenaPane{
		visibility: arena.MakeVisibilitySet(),
	}
}

func (ap *ArenaPane) Name() string { return "arena" }

func (ap *ArenaPane) Activate(r renderer.Renderer, p platform.Platform, lg *log.Logger) {
	ap.lg = lg
	if ap.font == nil {
		ap.font = renderer.GetDefaultFont()
	}
}

// SetTest installs the test whose diagram is drawn. Changing the test
// resets step visibility; every step of the new test starts visible.
func (ap *ArenaPane) SetTest(td *arena.TestDefinition) {
	ap.test = td
	ap.visibility.Reset()
}

func (ap *ArenaPane) Test() *arena.TestDefinition { return ap.test }

// Visibility exposes the per-step visibility set so that the step table
// checkboxes and the show/hide all buttons can drive it.
func (ap *ArenaPane) Visibility() *arena.VisibilitySet { return ap.visibility }

// diagramTransform returns the scale and offset that map projected
// diagram coordinates into the pane, preserving the diagram's aspect
// ratio and centering it.
func diagramTransform(paneExtent math.Extent2D) (scale float32, offset [2]float32) {
	b := arena.Bounds()
	w, h := paneExtent.Width(), paneExtent.Height()
	if w <= 0 || h <= 0 {
		return 1, [2]float32{}
	}
	scale = min(w/b.Width(), h/b.Height())
	offset = [2]float32{(w - scale*b.Width()) / 2, (h - scale*b.Height()) / 2}
	return
}

func (ap *ArenaPane) Draw(ctx *Context, cb *renderer.CommandBuffer) {
	ctx.SetWindowCoordinateMatrices(cb)

	scale, offset := diagramTransform(ctx.PaneExtent)
	// xform maps projected diagram coordinates to pane coordinates.
	xform := func(p [2]float32) [2]float32 {
		return math.Add2f(math.Scale2f(p, scale), offset)
	}

	// Paper-white background behind the whole diagram.
	quad := renderer.GetTrianglesDrawBuilder()
	defer renderer.ReturnTrianglesDrawBuilder(quad)
	b := arena.Bounds()
	quad.AddQuad(xform(b.P0), xform([2]float32{b.P1[0], b.P0[1]}),
		xform(b.P1), xform([2]float32{b.P0[0], b.P1[1]}))
	cb.SetRGB(diagramBackgroundColor)
	quad.GenerateCommands(cb)

	// The quarter lines and the centerline are drawn first so that the
	// rail and the figures sit on top of them.
	guides := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(guides)
	for _, x := range []float32{arena.Width / 4, arena.Width / 2, 3 * arena.Width / 4} {
		guides.AddLine(xform(arena.Project([2]float32{x, 0})),
			xform(arena.Project([2]float32{x, arena.Length})))
	}
	cb.LineWidth(1, ctx.DPIScale)
	cb.SetRGB(diagramGuideColor)
	guides.GenerateCommands(cb)

	rail := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(rail)
	rail.AddLineLoop([][2]float32{
		xform(arena.Project([2]float32{0, 0})),
		xform(arena.Project([2]float32{arena.Width, 0})),
		xform(arena.Project([2]float32{arena.Width, arena.Length})),
		xform(arena.Project([2]float32{0, arena.Length}))})
	cb.LineWidth(2, ctx.DPIScale)
	cb.SetRGB(diagramRailColor)
	rail.GenerateCommands(cb)

	if ap.test != nil {
		segs := renderer.GetLinesDrawBuilder()
		defer renderer.ReturnLinesDrawBuilder(segs)
		if _, err := addVisibleSegments(segs, ap.test, ap.visibility, scale, xform); err != nil {
			// Validation at load time is supposed to make this impossible.
			ctx.Lg.Errorf("%s: %v", ap.test.Id, err)
			return
		}
		cb.SetRGB(diagramSegmentColor)
		segs.GenerateCommands(cb)
	}

	// Letter labels last, on top of everything.
	if ap.font != nil {
		td := renderer.GetTextDrawBuilder()
		defer renderer.ReturnTextDrawBuilder(td)
		style := renderer.TextStyle{Font: ap.font, Color: diagramLabelColor}
		for _, m := range arena.Markers() {
			td.AddTextCentered(m.Id, xform(arena.LabelPosition(m)), style)
		}
		td.GenerateCommands(cb)
	}
}

// addVisibleSegments adds the path segments of the visible steps to the
// given lines builder, in their stored order, and returns how many were
// drawn.
func addVisibleSegments(ld *renderer.LinesDrawBuilder, test *arena.TestDefinition,
	vis *arena.VisibilitySet, scale float32, xform func([2]float32) [2]float32) (int, error) {
	n := 0
	for _, seg := range test.Segments {
		if !vis.IsVisible(seg.Step) {
			continue
		}

		if seg.IsCircle() {
			p, err := arena.MarkerPosition(seg.Circle)
			if err != nil {
				return n, err
			}
			ld.AddCircle(xform(arena.Project(p)), scale*arena.CircleRadius, circleTessellation)
		} else {
			pts := make([][2]float32, len(seg.Line))
			for i, id := range seg.Line {
				p, err := arena.MarkerPosition(id)
				if err != nil {
					return n, err
				}
				pts[i] = xform(arena.Project(p))
			}
			ld.AddLineStrip(pts)
		}
		n++
	}
	return n, nil
}
