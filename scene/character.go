package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/input"
	"github.com/plus3/puppet/transform"
)

const (
	characterSpeed = 0.2
	chestRotSpeed  = 0.05
	hipRotSpeed    = 0.05
)

type joint struct {
	id          PartId
	parent      PartId
	translation mgl32.Vec3
}

// skeleton lists parents before children.
var skeleton = []joint{
	{Root, -1, mgl32.Vec3{0, 0, 0}},
	{Spine, Root, mgl32.Vec3{0, 4.5, 0}},
	{Chest, Spine, mgl32.Vec3{0, -3, 0}},
	{Head, Chest, mgl32.Vec3{0, 3, 0}},
	{ArmL, Chest, mgl32.Vec3{-3, 0, 0}},
	{ArmR, Chest, mgl32.Vec3{3, 0, 0}},
	{Hip, Spine, mgl32.Vec3{0, -6, 0}},
	{LegL, Hip, mgl32.Vec3{-3, -3, 0}},
	{LegR, Hip, mgl32.Vec3{3, -3, 0}},
}

// Root and Spine only carry the others.
func drawnPart(id PartId) bool {
	return id != Root && id != Spine
}

// NewCharacter builds the jointed character scene.
func NewCharacter(env Env) *Scene {
	return newScene("character", env, func(s *Scene, env *Env) []ecs.System {
		var refs [PartCount]*ecs.EntityRef
		for _, j := range skeleton {
			components := []any{Part{Id: j.id}, transform.New(j.translation)}
			if j.parent >= 0 {
				components = append(components, transform.Parent{Ref: refs[j.parent]})
			}
			if drawnPart(j.id) {
				components = append(components, Cube{Texture: s.texture})
			}
			refs[j.id] = s.storage.CreateEntityRef(s.storage.Spawn(components...))
		}
		return []ecs.System{&CharacterControlSystem{}}
	})
}

// CharacterControlSystem walks the character left and right and twists its
// chest and hip around Y.
type CharacterControlSystem struct {
	Keys  ecs.Singleton[input.State]
	Parts ecs.Query[struct {
		*Part
		*transform.WorldTransform
	}]
}

func (c *CharacterControlSystem) Execute(frame *ecs.UpdateFrame) {
	keys := c.Keys.Get()
	if keys == nil {
		return
	}

	var move mgl32.Vec3
	if keys.PushKey(ebiten.KeyArrowLeft) {
		move = mgl32.Vec3{-characterSpeed, 0, 0}
	} else if keys.PushKey(ebiten.KeyArrowRight) {
		move = mgl32.Vec3{characterSpeed, 0, 0}
	}

	for p := range c.Parts.Iter() {
		switch p.Part.Id {
		case Root:
			p.Translation = p.Translation.Add(move)
		case Chest:
			p.Rotation[1] += chestRotSpeed * keys.Axis(ebiten.KeyU, ebiten.KeyI)
		case Hip:
			p.Rotation[1] += hipRotSpeed * keys.Axis(ebiten.KeyJ, ebiten.KeyK)
		}
	}
}
