// panes/panes.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package panes

import (
	"time"

	"github.com/hfinley/centerline/log"
	"github.com/hfinley/centerline/math"
	"github.com/hfinley/centerline/platform"
	"github.com/hfinley/centerline/renderer"
)

// Panes (should) mostly operate in window coordinates: (0,0) is lower
// left, just in their own pane, oblivious to the full window size.  Higher
// level code will handle positioning the panes in the main window.
type Pane interface {
	Name() string

	Activate(r renderer.Renderer, p platform.Platform, lg *log.Logger)

	Draw(ctx *Context, cb *renderer.CommandBuffer)
}

var UIControlColor renderer.RGB = renderer.RGB{R: 0.2754237, G: 0.2754237, B: 0.2754237}
var UITextColor renderer.RGB = renderer.RGB{R: 0.85, G: 0.85, B: 0.85}
var UIErrorColor renderer.RGB = renderer.RGBFromHex(0xE94242)

type Context struct {
	PaneExtent math.Extent2D

	Platform platform.Platform
	Renderer renderer.Renderer
	Mouse    *platform.MouseState
	Keyboard *platform.KeyboardState
	Now      time.Time
	Lg       *log.Logger

	MenuBarHeight float32
	DPIScale      float32
}

func (ctx *Context) InitializeMouse(fullDisplayExtent math.Extent2D, p platform.Platform) {
	ctx.Mouse = p.GetMouse()

	// Convert to pane coordinates:
	// platform gives us the mouse position w.r.t. the full window, so we need
	// to subtract out displayExtent.p0 to get coordinates w.r.t. the
	// current pane.  Further, it has (0,0) in the upper left corner of the
	// window, so we need to flip y w.r.t. the full window resolution.
	ctx.Mouse.Pos[0] = ctx.Mouse.Pos[0] - ctx.PaneExtent.P0[0]
	ctx.Mouse.Pos[1] = fullDisplayExtent.P1[1] - 1 - ctx.PaneExtent.P0[1] - ctx.Mouse.Pos[1]

	// Negate y to go to pane coordinates
	ctx.Mouse.Wheel[1] *= -1
	ctx.Mouse.DragDelta[1] *= -1
}

func (ctx *Context) SetWindowCoordinateMatrices(cb *renderer.CommandBuffer) {
	w := float32(int(ctx.PaneExtent.Width() + 0.5))
	h := float32(int(ctx.PaneExtent.Height() + 0.5))
	cb.LoadProjectionMatrix(math.Identity3x3().Ortho(0, w, 0, h))
	cb.LoadModelViewMatrix(math.Identity3x3())
}
