package input

import "slices"

// Scripted is a Keyboard driven by code instead of hardware. The headless
// benchmark and tests use it.
type Scripted struct {
	held []Key
}

// Hold presses keys until released.
func (k *Scripted) Hold(keys ...Key) {
	for _, key := range keys {
		if !slices.Contains(k.held, key) {
			k.held = append(k.held, key)
		}
	}
}

// Release lets go of keys.
func (k *Scripted) Release(keys ...Key) {
	k.held = slices.DeleteFunc(k.held, func(key Key) bool {
		return slices.Contains(keys, key)
	})
}

// ReleaseAll lets go of every key.
func (k *Scripted) ReleaseAll() {
	k.held = k.held[:0]
}

func (k *Scripted) AppendPressedKeys(dst []Key) []Key {
	return append(dst, k.held...)
}
