package render

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/texture"
)

// Sprite is a screen-space textured quad.
type Sprite struct {
	Texture  texture.Handle
	Position mgl32.Vec2
	Size     mgl32.Vec2 // zero means the texture's own size
	Anchor   mgl32.Vec2 // 0,0 is top-left, 1,1 is bottom-right
	Rotation float32
	Color    color.Color // nil means white
}

// DrawSprite draws s immediately. It must be called inside a sprite phase.
func (r *Renderer) DrawSprite(s *Sprite) error {
	if err := r.require(PhaseSprites); err != nil {
		return fmt.Errorf("draw sprite: %w", err)
	}

	tw, th := r.textures.Size(s.Texture)
	if tw == 0 || th == 0 {
		return nil
	}
	size := s.Size
	if size.X() == 0 && size.Y() == 0 {
		size = mgl32.Vec2{float32(tw), float32(th)}
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(-float64(s.Anchor.X())*float64(tw), -float64(s.Anchor.Y())*float64(th))
	opts.GeoM.Scale(float64(size.X())/float64(tw), float64(size.Y())/float64(th))
	opts.GeoM.Rotate(float64(s.Rotation))
	opts.GeoM.Translate(float64(s.Position.X()), float64(s.Position.Y()))
	if s.Color != nil {
		opts.ColorScale.ScaleWithColor(s.Color)
	}

	r.target.DrawImage(r.textures.Image(s.Texture), opts)
	r.stats.Sprites++
	return nil
}
