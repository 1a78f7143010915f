// Package debugui provides a Dear ImGui inspector for running scenes. Each
// window is an entity carrying an ImguiItem; ImguiSystem queues their render
// functions every frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/input"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem copies ImGui's capture flags into ImguiInputState and defers
// every ImguiItem's render function until the frame's commands flush.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Render)
	}
}

// Keyboard hides key presses from the scene while an ImGui widget has
// keyboard focus.
type Keyboard struct {
	input.Keyboard
}

func (k Keyboard) AppendPressedKeys(dst []input.Key) []input.Key {
	if imgui.CurrentIO().WantCaptureKeyboard() {
		return dst
	}
	return k.Keyboard.AppendPressedKeys(dst)
}
