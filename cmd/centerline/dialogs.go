// dialogs.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"os"

	"github.com/hfinley/centerline/log"
	"github.com/hfinley/centerline/platform"
	"github.com/hfinley/centerline/renderer"
	"github.com/hfinley/centerline/util"

	"github.com/AllenDang/cimgui-go/imgui"
)

var activeModalDialogs []*ModalDialogBox

func hasActiveModalDialogs() bool {
	return len(activeModalDialogs) > 0
}

func uiShowModalDialog(d *ModalDialogBox, atFront bool) {
	if atFront {
		activeModalDialogs = append([]*ModalDialogBox{d}, activeModalDialogs...)
	} else {
		activeModalDialogs = append(activeModalDialogs, d)
	}
}

func drawActiveDialogBoxes() {
	for len(activeModalDialogs) > 0 {
		d := activeModalDialogs[0]
		if !d.closed {
			d.Draw()
			break
		} else {
			activeModalDialogs = activeModalDialogs[1:]
		}
	}

	if ui.showAboutDialog {
		showAboutDialog()
	}
}

func setCursorForRightButtons(text []string) {
	style := imgui.CurrentStyle()
	width := float32(0)

	for i, t := range text {
		width += imgui.CalcTextSize(t).X + 2*style.FramePadding().X
		if i > 0 {
			// space between buttons
			width += style.ItemSpacing().X
		}
	}
	offset := imgui.ContentRegionAvail().X - width
	imgui.SetCursorPos(imgui.Vec2{offset, imgui.CursorPosY()})
}

///////////////////////////////////////////////////////////////////////////

type ModalDialogBox struct {
	closed, isOpen bool
	client         ModalDialogClient
	platform       platform.Platform
}

type ModalDialogButton struct {
	text     string
	disabled bool
	action   func() bool
}

type ModalDialogClient interface {
	Title() string
	Opening()
	Buttons() []ModalDialogButton
	Draw() int /* returns index of equivalently-clicked button; out of range if none */
}

func NewModalDialogBox(c ModalDialogClient, p platform.Platform) *ModalDialogBox {
	return &ModalDialogBox{client: c, platform: p}
}

func (m *ModalDialogBox) Draw() {
	if m.closed {
		return
	}

	title := fmt.Sprintf("%s##%p", m.client.Title(), m)
	imgui.OpenPopupStr(title)

	windowSize := m.platform.WindowSize()

	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings
	maxHeight := float32(windowSize[1]) * 19 / 20
	imgui.SetNextWindowSizeConstraints(imgui.Vec2{300, 50}, imgui.Vec2{-1, maxHeight})

	// Position the window near the top of the screen so that it doesn't
	// extend below the bottom.
	topMargin := float32(windowSize[1]) * 0.05
	imgui.SetNextWindowPosV(imgui.Vec2{float32(windowSize[0]) / 2, topMargin}, imgui.CondAlways, imgui.Vec2{0.5, 0})

	if imgui.BeginPopupModalV(title, nil, flags) {
		if !m.isOpen {
			imgui.SetKeyboardFocusHere()
			m.client.Opening()
			m.isOpen = true
		}

		selIndex := m.client.Draw()
		imgui.Text("\n") // spacing

		buttons := m.client.Buttons()

		if len(buttons) > 0 {
			// First, figure out where to start drawing so the buttons end up right-justified.
			// https://github.com/ocornut/imgui/discussions/3862
			var allButtonText []string
			for _, b := range buttons {
				allButtonText = append(allButtonText, b.text)
			}
			setCursorForRightButtons(allButtonText)
		}

		for i, b := range buttons {
			if b.disabled {
				imgui.BeginDisabled()
			}
			if i > 0 {
				imgui.SameLine()
			}
			if (imgui.Button(b.text) || i == selIndex) && !b.disabled {
				if b.action == nil || b.action() {
					imgui.CloseCurrentPopup()
					m.closed = true
					m.isOpen = false
				}
			}
			if b.disabled {
				imgui.EndDisabled()
			}
		}
		imgui.EndPopup()
	}
}

type MessageModalClient struct {
	title   string
	message string
}

func (m *MessageModalClient) Title() string { return m.title }
func (m *MessageModalClient) Opening()      {}

func (m *MessageModalClient) Buttons() []ModalDialogButton {
	return []ModalDialogButton{{text: "Ok", action: func() bool { return true }}}
}

func (m *MessageModalClient) Draw() int {
	text, _ := util.WrapText(m.message, 80, 0, true)
	imgui.Text("\n\n" + text + "\n\n")
	return -1
}

type ErrorModalClient struct {
	message string
}

func (e *ErrorModalClient) Title() string { return "Centerline Error" }
func (e *ErrorModalClient) Opening()      {}

func (e *ErrorModalClient) Buttons() []ModalDialogButton {
	var b []ModalDialogButton
	b = append(b, ModalDialogButton{text: "Ok", action: func() bool {
		return true
	}})
	return b
}

func (e *ErrorModalClient) Draw() int {
	text, _ := util.WrapText(e.message, 80, 0, true)
	imgui.Text("\n\n" + text + "\n\n")
	return -1
}

func ShowErrorDialog(p platform.Platform, lg *log.Logger, s string, args ...any) {
	d := NewModalDialogBox(&ErrorModalClient{message: fmt.Sprintf(s, args...)}, p)
	uiShowModalDialog(d, true)

	lg.Errorf(s, args...)
}

func ShowFatalErrorDialog(r renderer.Renderer, p platform.Platform, lg *log.Logger, s string, args ...any) {
	lg.Errorf(s, args...)

	d := NewModalDialogBox(&ErrorModalClient{message: fmt.Sprintf(s, args...)}, p)

	for !d.closed {
		p.ProcessEvents()
		p.NewFrame()
		imgui.NewFrame()
		imgui.PushFont(&ui.font.Ifont)
		d.Draw()
		imgui.PopFont()

		imgui.Render()
		var cb renderer.CommandBuffer
		renderer.GenerateImguiCommandBuffer(&cb, p.DisplaySize(), p.FramebufferSize(), lg)
		r.RenderCommandBuffer(&cb)

		p.PostRender()
	}
	os.Exit(1)
}
