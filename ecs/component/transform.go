package component

import "github.com/jakecoffman/cp"

// Transform is a world position. The ground plane is (X, Z); Y is height
// above it and only affects presentation.
type Transform struct {
	X float64
	Y float64
	Z float64
}

var TransformComponent = NewComponent[Transform]()

// Ground projects the position onto the ground plane as (x, z).
func (t *Transform) Ground() cp.Vector {
	if t == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: t.X, Y: t.Z}
}

// SetGround moves the transform on the ground plane, keeping its height.
func (t *Transform) SetGround(v cp.Vector) {
	t.X = v.X
	t.Z = v.Y
}

// GroundDistance is the ground-plane distance between two transforms.
func GroundDistance(a, b *Transform) float64 {
	return a.Ground().Distance(b.Ground())
}
