// platform/keymouse.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

type MouseState struct {
	Pos           [2]float32
	Down          [MouseButtonCount]bool
	Clicked       [MouseButtonCount]bool
	Released      [MouseButtonCount]bool
	DoubleClicked [MouseButtonCount]bool
	Dragging      [MouseButtonCount]bool
	DragDelta     [2]float32
	Wheel         [2]float32
}

const (
	MouseButtonPrimary imgui.MouseButton = iota
	MouseButtonSecondary
	MouseButtonTertiary
	MouseButtonCount
)

func (ms *MouseState) SetCursor(id imgui.MouseCursor) {
	imgui.SetMouseCursor(id)
}

func (g *glfwPlatform) GetMouse() *MouseState {
	io := imgui.CurrentIO()
	pos := imgui.MousePos()
	wx, wy := io.MouseWheelH(), io.MouseWheel()

	m := &MouseState{
		Pos:   [2]float32{pos.X, pos.Y},
		Wheel: [2]float32{wx, wy},
	}

	for b := MouseButtonPrimary; b < MouseButtonCount; b++ {
		m.Down[b] = imgui.IsMouseDown(b)
		m.Released[b] = imgui.IsMouseReleased(b)
		m.Clicked[b] = imgui.IsMouseClickedBool(b)
		m.DoubleClicked[b] = imgui.IsMouseDoubleClicked(b)
		m.Dragging[b] = imgui.IsMouseDraggingV(b, 0)
		if m.Dragging[b] {
			delta := imgui.MouseDragDeltaV(b, 0.)
			m.DragDelta = [2]float32{delta.X, delta.Y}
			imgui.ResetMouseDragDeltaV(b)
		}
	}

	return m
}

type KeyboardState struct {
	Input string
	// A key shows up here once each time it is pressed (though repeatedly
	// if key repeat kicks in.)
	Pressed map[imgui.Key]interface{}
}

func (g *glfwPlatform) GetKeyboard() *KeyboardState {
	keyboard := &KeyboardState{
		Pressed: make(map[imgui.Key]interface{}),
	}

	keyboard.Input = g.InputCharacters()

	for _, k := range []imgui.Key{imgui.KeyEnter, imgui.KeyKeypadEnter, imgui.KeyDownArrow,
		imgui.KeyUpArrow, imgui.KeyLeftArrow, imgui.KeyRightArrow, imgui.KeyHome, imgui.KeyEnd,
		imgui.KeyBackspace, imgui.KeyDelete, imgui.KeyEscape, imgui.KeyTab, imgui.KeyPageUp,
		imgui.KeyPageDown, imgui.KeySpace} {
		if imgui.IsKeyPressedBool(k) {
			if k == imgui.KeyKeypadEnter {
				k = imgui.KeyEnter
			}
			keyboard.Pressed[k] = nil
		}
	}

	return keyboard
}

func (k *KeyboardState) KeyShift() bool {
	return imgui.CurrentIO().KeyShift()
}
func (k *KeyboardState) KeyControl() bool {
	return imgui.CurrentIO().KeyCtrl()
}
func (k *KeyboardState) KeyAlt() bool {
	return imgui.CurrentIO().KeyAlt()
}
func (k *KeyboardState) KeySuper() bool {
	return imgui.CurrentIO().KeySuper()
}

func (k *KeyboardState) WasPressed(key imgui.Key) bool {
	_, ok := k.Pressed[key]
	return ok
}
