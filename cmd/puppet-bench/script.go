package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/input"
)

const phaseFrames = 60

// keyScript cycles through groups of held keys, one group per phase, so
// every control path of the scene runs during the benchmark.
type keyScript struct {
	phases [][]input.Key
}

func newKeyScript(sceneName string) keyScript {
	switch sceneName {
	case "scatter":
		return keyScript{phases: [][]input.Key{
			{ebiten.KeyW, ebiten.KeyArrowLeft},
			{ebiten.KeySpace},
			{ebiten.KeyS, ebiten.KeyArrowRight},
			{},
		}}
	case "cube":
		return keyScript{phases: [][]input.Key{
			{ebiten.KeyW, ebiten.KeyArrowUp},
			{ebiten.KeyS, ebiten.KeyArrowDown},
			{},
		}}
	}
	return keyScript{phases: [][]input.Key{
		{ebiten.KeyArrowLeft, ebiten.KeyU, ebiten.KeyJ},
		{ebiten.KeyArrowRight, ebiten.KeyI, ebiten.KeyK},
		{},
	}}
}

// apply sets keys to the group held on the given frame.
func (s keyScript) apply(keys *input.Scripted, frame int64) {
	if frame%phaseFrames != 0 {
		return
	}
	keys.ReleaseAll()
	keys.Hold(s.phases[(frame/phaseFrames)%int64(len(s.phases))]...)
}
