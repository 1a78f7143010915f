// Package input snapshots the keyboard once per frame into a singleton that
// scene systems read.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/puppet/ecs"
)

// Key identifies a keyboard key.
type Key = ebiten.Key

// Keyboard reports which keys are currently held.
type Keyboard interface {
	// AppendPressedKeys appends the held keys to dst and returns the result.
	AppendPressedKeys(dst []Key) []Key
}

// EbitenKeyboard reads the real keyboard through Ebitengine.
type EbitenKeyboard struct{}

func (EbitenKeyboard) AppendPressedKeys(dst []Key) []Key {
	return inpututil.AppendPressedKeys(dst)
}

const keyCount = int(ebiten.KeyMax) + 1

// State is the keyboard as of the current frame, plus the previous frame so
// edges can be detected.
type State struct {
	Frame    uint64
	current  [keyCount]bool
	previous [keyCount]bool
}

// PushKey reports whether key is held this frame.
func (s *State) PushKey(key Key) bool {
	return validKey(key) && s.current[key]
}

// TriggerKey reports whether key went down this frame.
func (s *State) TriggerKey(key Key) bool {
	return validKey(key) && s.current[key] && !s.previous[key]
}

// ReleaseKey reports whether key went up this frame.
func (s *State) ReleaseKey(key Key) bool {
	return validKey(key) && !s.current[key] && s.previous[key]
}

// Axis returns -1 when negative is held, +1 when only positive is held, and
// 0 otherwise. negative wins when both are held.
func (s *State) Axis(negative, positive Key) float32 {
	switch {
	case s.PushKey(negative):
		return -1
	case s.PushKey(positive):
		return 1
	}
	return 0
}

// Advance records held as the new current frame.
func (s *State) Advance(held []Key) {
	s.previous = s.current
	s.current = [keyCount]bool{}
	for _, k := range held {
		if validKey(k) {
			s.current[k] = true
		}
	}
	s.Frame++
}

func validKey(key Key) bool {
	return key >= 0 && int(key) < keyCount
}

// System polls the keyboard into the State singleton. It should run before
// any system that reads input.
type System struct {
	Keyboard Keyboard
	State    ecs.Singleton[State]

	buf []Key
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil || s.Keyboard == nil {
		return
	}
	s.buf = s.Keyboard.AppendPressedKeys(s.buf[:0])
	state.Advance(s.buf)
}
