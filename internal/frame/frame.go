package frame

import "fmt"

// Frame is the globally unique name of a coordinate reference frame.
type Frame string

// Alias is a node-local name for a frame. It is resolved to a global Frame
// through the node's Selection.
type Alias string

// Transform is a directed relationship between two global frames.
type Transform struct {
	From Frame
	To   Frame
}

// IsIdentity reports whether the transform maps a frame onto itself.
func (t Transform) IsIdentity() bool {
	return t.From == t.To
}

// Reverse returns the transform in the opposite direction.
func (t Transform) Reverse() Transform {
	return Transform{From: t.To, To: t.From}
}

func (t Transform) String() string {
	return fmt.Sprintf("%s => %s", t.From, t.To)
}

// LocalTransform is a Transform expressed with node-local aliases.
type LocalTransform struct {
	From Alias
	To   Alias
}

func (t LocalTransform) String() string {
	return fmt.Sprintf("%s => %s", t.From, t.To)
}

// Vector3 is a translation in meters.
type Vector3 [3]float64

// Quaternion is a rotation stored as (x, y, z, w).
type Quaternion struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
	W float64 `json:"w" yaml:"w"`
}

// IdentityRotation is the rotation that leaves every vector unchanged.
var IdentityRotation = Quaternion{W: 1}
