// Package debugui provides Dear ImGui windows for inspecting a running game.
// Windows are registered on an Overlay, which is itself a loop.System.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Hosts should not forward keys to the game while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay defers the render functions of its windows to the end of the tick,
// after the game systems have run.
type Overlay struct {
	items []func()
	Input InputState
}

// NewOverlay creates an overlay with no windows.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Add registers a render function, called once per tick.
func (o *Overlay) Add(render func()) {
	o.items = append(o.items, render)
}

// Execute updates the input state and queues every render function.
func (o *Overlay) Execute(frame *loop.Frame) {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, render := range o.items {
		frame.Commands.Defer(render)
	}
}
