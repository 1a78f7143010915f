package scene

import (
	"fmt"

	"github.com/plus3/puppet/texture"
)

// PartId names a joint of the character.
type PartId int

const (
	Root PartId = iota
	Spine
	Chest
	Head
	ArmL
	ArmR
	Hip
	LegL
	LegR

	PartCount
)

var partNames = [PartCount]string{"Root", "Spine", "Chest", "Head", "ArmL", "ArmR", "Hip", "LegL", "LegR"}

func (p PartId) String() string {
	if p < 0 || p >= PartCount {
		return fmt.Sprintf("PartId(%d)", int(p))
	}
	return partNames[p]
}

// Part tags a character entity with its joint.
type Part struct {
	Id PartId
}

// Cube marks an entity that is drawn as a textured cube.
type Cube struct {
	Texture texture.Handle
}
