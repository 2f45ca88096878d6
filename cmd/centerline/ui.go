// ui.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"os"
	"runtime"
	"strconv"

	"github.com/hfinley/centerline/arena"
	"github.com/hfinley/centerline/log"
	"github.com/hfinley/centerline/panes"
	"github.com/hfinley/centerline/platform"
	"github.com/hfinley/centerline/renderer"
	"github.com/hfinley/centerline/util"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/ncruces/zenity"
	"github.com/pkg/browser"
)

var ui struct {
	font *renderer.Font

	menuBarHeight float32

	showAboutDialog bool
	showSettings    bool
}

func imguiInit() *imgui.Context {
	context := imgui.CreateContext()
	imgui.CurrentIO().SetIniFilename("")

	// Disable the nav windowing popup (Ctrl+Tab/Cmd+Tab window switcher) by
	// clearing the shortcut keys that trigger it.
	context.SetConfigNavWindowingKeyNext(imgui.KeyChord(imgui.KeyNone))
	context.SetConfigNavWindowingKeyPrev(imgui.KeyChord(imgui.KeyNone))

	// General imgui styling
	style := imgui.CurrentStyle()
	style.SetFrameRounding(2.)
	style.SetWindowRounding(4.)
	style.SetPopupRounding(4.)
	style.SetScrollbarSize(6.)
	style.ScaleAllSizes(1.25)

	return context
}

func uiInit(r renderer.Renderer, p platform.Platform, config *Config, lg *log.Logger) {
	if runtime.GOOS == "windows" {
		imgui.CurrentStyle().ScaleAllSizes(p.DPIScale())
	}

	ui.font = renderer.GetFont(renderer.FontIdentifier{Name: renderer.DefaultFontName, Size: config.UIFontSize})
	if ui.font == nil {
		ui.font = renderer.GetDefaultFont()
	}
}

func uiDraw(store *arena.Store, ap *panes.ArenaPane, config *Config, p platform.Platform,
	r renderer.Renderer, lg *log.Logger) renderer.RendererStats {
	imgui.PushFont(&ui.font.Ifont)
	if imgui.BeginMainMenuBar() {
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.CurrentStyle().Colors()[imgui.ColMenuBarBg])

		uiDrawTestSelector(store, ap, config)

		td := ap.Test()
		if td == nil {
			imgui.BeginDisabled()
		}

		if imgui.Button("Show All") {
			ap.Visibility().SetAll(true, td)
		}
		if imgui.IsItemHovered() {
			imgui.SetTooltip("Show the full path of the test")
		}

		if imgui.Button("Hide All") {
			ap.Visibility().SetAll(false, td)
		}
		if imgui.IsItemHovered() {
			imgui.SetTooltip("Hide the path of every step")
		}

		if imgui.Button("Print") {
			printDiagram(td, ap.Visibility(), lg)
		}
		if imgui.IsItemHovered() {
			imgui.SetTooltip("Open the diagram in the system viewer for printing")
		}

		if imgui.Button("Export...") {
			exportDiagram(td, ap.Visibility(), p, lg)
		}
		if imgui.IsItemHovered() {
			imgui.SetTooltip("Save the diagram as an SVG file")
		}

		if td == nil {
			imgui.EndDisabled()
		}

		if imgui.Button("Load Tests...") {
			loadTestFile(store, ap, config, p, lg)
		}
		if imgui.IsItemHovered() {
			imgui.SetTooltip("Load a test definition from a JSON file")
		}

		if imgui.Button("Settings") {
			ui.showSettings = !ui.showSettings
		}
		if imgui.IsItemHovered() {
			imgui.SetTooltip("Open settings window")
		}

		if imgui.Button("About") {
			ui.showAboutDialog = !ui.showAboutDialog
		}
		if imgui.IsItemHovered() {
			imgui.SetTooltip("Display information about centerline")
		}

		// Full-screen toggle goes at the right edge of the menu bar.
		fsText := util.Select(p.IsFullScreen(), "Windowed", "Full Screen")
		style := imgui.CurrentStyle()
		width := imgui.CalcTextSize(fsText).X + 2*style.FramePadding().X
		imgui.SetCursorPos(imgui.Vec2{p.DisplaySize()[0] - width - 15, 0})
		if imgui.Button(fsText) {
			p.EnableFullScreen(!p.IsFullScreen())
		}
		if imgui.IsItemHovered() {
			imgui.SetTooltip(util.Select(p.IsFullScreen(), "Exit", "Enter") + " full-screen mode")
		}

		imgui.PopStyleColor()

		imgui.EndMainMenuBar()
	}
	ui.menuBarHeight = imgui.CursorPos().Y - 1

	uiDrawStepWindow(ap, p)
	uiDrawSettingsWindow(config, p)

	drawActiveDialogBoxes()

	imgui.PopFont()

	// Finalize and submit the imgui draw lists
	imgui.Render()
	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	renderer.GenerateImguiCommandBuffer(cb, p.DisplaySize(), p.FramebufferSize(), lg)
	return r.RenderCommandBuffer(cb)
}

func uiDrawTestSelector(store *arena.Store, ap *panes.ArenaPane, config *Config) {
	preview := "Select test..."
	if config.SelectedTestId != "" {
		preview = store.TestName(config.SelectedTestId)
	}

	imgui.SetNextItemWidth(350)
	if imgui.BeginComboV("##test", preview, imgui.ComboFlagsHeightLarge) {
		for _, id := range store.TestIds() {
			if imgui.SelectableBoolV(store.TestName(id), id == config.SelectedTestId, 0, imgui.Vec2{}) {
				if td, err := store.GetTest(id); err == nil {
					ap.SetTest(td)
					config.SelectedTestId = id
				}
			}
		}
		imgui.EndCombo()
	}
}

// uiDrawStepWindow draws the step table for the active test: one row per
// step sheet row, grouped by step, with a checkbox on each group's first
// row that controls whether that step's path is drawn.
func uiDrawStepWindow(ap *panes.ArenaPane, p platform.Platform) {
	td := ap.Test()
	if td == nil {
		return
	}

	imgui.SetNextWindowSizeConstraints(imgui.Vec2{300, 100}, imgui.Vec2{-1, float32(p.WindowSize()[1]) * 19 / 20})
	imgui.BeginV(td.Name+"##steps", nil, imgui.WindowFlagsAlwaysAutoResize)

	vis := ap.Visibility()
	flags := imgui.TableFlagsBordersV | imgui.TableFlagsBordersOuterH | imgui.TableFlagsRowBg |
		imgui.TableFlagsSizingStretchProp
	if imgui.BeginTableV("steps", 4, flags, imgui.Vec2{}, 0) {
		imgui.TableSetupColumn("Step")
		imgui.TableSetupColumn("Location")
		imgui.TableSetupColumn("Directive")
		imgui.TableSetupColumn("Ideas")
		imgui.TableHeadersRow()

		for _, g := range td.GroupRows() {
			for i, row := range g.Rows {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				if i == 0 {
					shown := vis.IsVisible(g.Step)
					if imgui.Checkbox(strconv.Itoa(g.Step)+"##step", &shown) {
						vis.Toggle(g.Step, shown)
					}
				}
				imgui.TableNextColumn()
				imgui.Text(row.Location)
				imgui.TableNextColumn()
				imgui.Text(row.Directive)
				imgui.TableNextColumn()
				imgui.Text(row.Ideas)
			}
		}
		imgui.EndTable()
	}
	imgui.End()
}

func uiDrawSettingsWindow(config *Config, p platform.Platform) {
	if !ui.showSettings {
		return
	}

	imgui.BeginV("Settings", &ui.showSettings, imgui.WindowFlagsAlwaysAutoResize)

	if imgui.BeginComboV("UI Font Size", strconv.Itoa(config.UIFontSize), imgui.ComboFlagsHeightLarge) {
		sizes := renderer.AvailableFontSizes(renderer.DefaultFontName)
		for _, size := range sizes {
			if imgui.SelectableBoolV(strconv.Itoa(size), size == config.UIFontSize, 0, imgui.Vec2{}) {
				config.UIFontSize = size
				ui.font = renderer.GetFont(renderer.FontIdentifier{Name: renderer.DefaultFontName, Size: size})
			}
		}
		imgui.EndCombo()
	}

	imgui.Separator()

	if imgui.CollapsingHeaderBoolPtr("Display", nil) {
		if imgui.Checkbox("Enable anti-aliasing", &config.EnableMSAA) {
			uiShowModalDialog(NewModalDialogBox(
				&MessageModalClient{
					title: "Alert",
					message: "You must restart centerline for changes to the anti-aliasing " +
						"mode to take effect.",
				}, p), true)
		}

		imgui.Checkbox("Start in full-screen", &config.StartInFullScreen)

		monitorNames := p.GetAllMonitorNames()
		if config.FullScreenMonitor >= len(monitorNames) {
			config.FullScreenMonitor = 0
		}
		if imgui.BeginComboV("Monitor", monitorNames[config.FullScreenMonitor], imgui.ComboFlagsHeightLarge) {
			for index, monitor := range monitorNames {
				if imgui.SelectableBoolV(monitor, monitor == monitorNames[config.FullScreenMonitor], 0, imgui.Vec2{}) {
					config.FullScreenMonitor = index

					p.EnableFullScreen(p.IsFullScreen())
				}
			}

			imgui.EndCombo()
		}
	}

	imgui.End()
}

// printDiagram writes the current diagram to a temporary SVG file and
// hands it to the system viewer.  There is no feedback beyond the viewer
// opening; failures are only logged.
func printDiagram(td *arena.TestDefinition, vis *arena.VisibilitySet, lg *log.Logger) {
	f, err := os.CreateTemp("", "centerline-*.svg")
	if err != nil {
		lg.Errorf("unable to create temporary SVG file: %v", err)
		return
	}

	if err := arena.WriteSVG(f, td, vis); err != nil {
		lg.Errorf("%s: %v", f.Name(), err)
		f.Close()
		return
	}
	f.Close()

	lg.Infof("%s: wrote diagram for printing", f.Name())
	if err := browser.OpenFile(f.Name()); err != nil {
		lg.Errorf("%s: unable to open in viewer: %v", f.Name(), err)
	}
}

// loadTestFile asks for a test definition file and adds it to the
// Store; on success the new test becomes the active one.
func loadTestFile(store *arena.Store, ap *panes.ArenaPane, config *Config, p platform.Platform, lg *log.Logger) {
	path, err := zenity.SelectFile(
		zenity.Title("Select Test JSON File"),
		zenity.FileFilters{
			{
				Name:     "Test Definition Files",
				Patterns: []string{"*.json", "*.zst"},
			},
		})
	if err != nil {
		if err != zenity.ErrCanceled {
			ShowErrorDialog(p, lg, "Unable to select file: %v", err)
		}
		return
	}

	td, err := arena.LoadTestFile(path)
	if err != nil {
		ShowErrorDialog(p, lg, "%v", err)
		return
	}
	if err := store.Add(td); err != nil {
		ShowErrorDialog(p, lg, "%s: %v", path, err)
		return
	}
	lg.Infof("%s: loaded test %q", path, td.Id)

	if td, err := store.GetTest(td.Id); err == nil {
		ap.SetTest(td)
		config.SelectedTestId = td.Id
	}
}

func exportDiagram(td *arena.TestDefinition, vis *arena.VisibilitySet, p platform.Platform, lg *log.Logger) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save SVG Diagram"),
		zenity.ConfirmOverwrite(),
		zenity.Filename(td.Id+".svg"),
		zenity.FileFilters{
			{
				Name:     "SVG Files",
				Patterns: []string{"*.svg"},
			},
		})
	if err != nil {
		if err != zenity.ErrCanceled {
			ShowErrorDialog(p, lg, "Unable to select file: %v", err)
		}
		return
	}

	f, err := os.Create(path)
	if err != nil {
		ShowErrorDialog(p, lg, "Unable to create %s: %v", path, err)
		return
	}
	defer f.Close()

	if err := arena.WriteSVG(f, td, vis); err != nil {
		ShowErrorDialog(p, lg, "Error writing %s: %v", path, err)
		return
	}
	lg.Infof("%s: exported diagram", path)
}

///////////////////////////////////////////////////////////////////////////
// "about" dialog box

func showAboutDialog() {
	flags := imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings
	imgui.BeginV("About centerline...", &ui.showAboutDialog, flags)

	center := func(s string) {
		// https://stackoverflow.com/a/67855985
		ww := imgui.WindowSize().X
		tw := imgui.CalcTextSize(s).X
		imgui.SetCursorPos(imgui.Vec2{(ww - tw) * 0.5, imgui.CursorPosY()})
		imgui.Text(s)
	}

	center("centerline")
	center("dressage test diagrams")
	center("(c) 2026 centerline contributors")
	center("Licensed under the GPL, Version 3")
	if imgui.IsItemHovered() && imgui.IsMouseClickedBool(imgui.MouseButton(0)) {
		browser.OpenURL("https://www.gnu.org/licenses/gpl-3.0.html")
	}

	imgui.End()
}
