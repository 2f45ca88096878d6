// main.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/hfinley/centerline/arena"
	"github.com/hfinley/centerline/log"
	"github.com/hfinley/centerline/math"
	"github.com/hfinley/centerline/panes"
	"github.com/hfinley/centerline/platform"
	"github.com/hfinley/centerline/renderer"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/apenwarr/fixconsole"
)

var (
	logLevel  = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir    = flag.String("logdir", "", "log file directory")
	testFiles = flag.String("tests", "", "comma-separated list of additional test definition JSON files")
	listTests = flag.Bool("listtests", false, "list the available tests and exit")
	svgTest   = flag.String("svg", "", "write an SVG diagram for the given test id to stdout and exit")
)

func init() {
	// OpenGL and GLFW require that their calls all come from the same
	// thread that created the window; Go's runtime will otherwise happily
	// move goroutines between hardware threads, so the main thread must be
	// locked at startup time.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		// Not sure this will actually appear, but what else are we going
		// to do...
		fmt.Printf("FixConsole: %v\n", err)
	}

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)

	var extra []string
	if *testFiles != "" {
		extra = strings.Split(*testFiles, ",")
	}

	// Command-line modes that don't need a window.
	if *listTests || *svgTest != "" {
		store, err := arena.LoadStore(extra, lg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		if *listTests {
			for _, id := range store.TestIds() {
				fmt.Printf("%-20s %s\n", id, store.TestName(id))
			}
		} else {
			td, err := store.GetTest(*svgTest)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			if err := arena.WriteSVG(os.Stdout, td, arena.MakeVisibilitySet()); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
		}
		os.Exit(0)
	}

	var stats Stats

	defer lg.CatchCrash()

	go func() {
		t := time.Tick(15 * time.Second)
		for {
			<-t
			// Try to more aggressively return freed memory to the OS.
			debug.FreeOSMemory()
		}
	}()

	///////////////////////////////////////////////////////////////////////
	// Global initialization and set up. Note that there are some subtle
	// inter-dependencies in the following; the order is carefully crafted.

	_ = imguiInit()

	config, configErr := LoadOrMakeDefaultConfig(lg)

	plat, err := platform.New(&config.Config, lg)
	if err != nil {
		panic(fmt.Sprintf("Unable to create application window: %v", err))
	}
	imgui.CurrentPlatformIO().SetClipboardHandler(plat.GetClipboard())

	render, err := renderer.NewOpenGL2Renderer(lg)
	if err != nil {
		panic(fmt.Sprintf("Unable to initialize OpenGL: %v", err))
	}

	renderer.FontsInit(render)

	uiInit(render, plat, config, lg)

	if configErr != nil {
		ShowErrorDialog(plat, lg,
			"Unable to load saved configuration; falling back to defaults: %v", configErr)
	}

	// Bad authored test content is a fatal data error; report it and stop
	// rather than drawing diagrams with segments quietly missing.
	store, err := arena.LoadStore(extra, lg)
	if err != nil {
		ShowFatalErrorDialog(render, plat, lg, "Unable to load test definitions: %v", err)
	}

	arenaPane := panes.NewArenaPane()
	arenaPane.Activate(render, plat, lg)

	// Restore the previously selected test; fall back to the first one if
	// it is gone (or nothing was saved).
	if _, err := store.GetTest(config.SelectedTestId); err != nil {
		config.SelectedTestId = store.TestIds()[0]
	}
	if td, err := store.GetTest(config.SelectedTestId); err == nil {
		arenaPane.SetTest(td)
	}

	lg.Info("Starting main loop")

	stats.startTime = time.Now()

	for {
		title := "centerline"
		if td := arenaPane.Test(); td != nil {
			title += ": " + td.Name
		}
		plat.SetWindowTitle(title)

		plat.ProcessEvents()

		stats.redraws++

		plat.NewFrame()
		imgui.NewFrame()

		stats.drawDiagram = drawDiagramPane(arenaPane, plat, render, lg)
		stats.drawUI = uiDraw(store, arenaPane, config, plat, render, lg)

		// Wait for vsync
		plat.PostRender()

		// Periodically log current memory use, etc.
		if stats.redraws%18000 == 9000 { // Every 5min at 60fps, starting 2.5min after launch
			lg.Info("performance", "stats", stats)
		}

		if plat.ShouldStop() && !hasActiveModalDialogs() {
			// Do this while we're still running the event loop.
			config.SaveIfChanged(plat, lg)
			break
		}
	}

	render.Dispose()
	plat.Dispose()
}

// drawDiagramPane renders the arena diagram into the part of the window
// below the menu bar.
func drawDiagramPane(ap *panes.ArenaPane, p platform.Platform, r renderer.Renderer,
	lg *log.Logger) renderer.RendererStats {
	displaySize := p.DisplaySize()

	// Area left for actually drawing the diagram
	paneExtent := math.Extent2D{
		P0: [2]float32{0, 0},
		P1: [2]float32{displaySize[0], displaySize[1] - ui.menuBarHeight},
	}

	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	cb.ClearRGB(renderer.RGB{R: 1, G: 1, B: 1})

	ctx := panes.Context{
		PaneExtent:    paneExtent,
		Platform:      p,
		Renderer:      r,
		Now:           time.Now(),
		Lg:            lg,
		MenuBarHeight: ui.menuBarHeight,
		DPIScale:      p.DPIScale(),
	}
	if !imgui.CurrentIO().WantCaptureKeyboard() {
		ctx.Keyboard = p.GetKeyboard()
	}
	if !imgui.CurrentIO().WantCaptureMouse() {
		fullDisplayExtent := math.Extent2D{P1: displaySize}
		ctx.InitializeMouse(fullDisplayExtent, p)
	}

	// Set the scissor rectangle and viewport to the pixels the pane
	// covers so that it can draw in its own coordinate system without
	// stepping on the menu bar.
	cb.SetDrawBounds(paneExtent, p.FramebufferSize()[1]/displaySize[1])

	ap.Draw(&ctx, cb)

	cb.ResetState()

	return r.RenderCommandBuffer(cb)
}
