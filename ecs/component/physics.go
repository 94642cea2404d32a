package component

import "github.com/jakecoffman/cp"

// CharacterBody stores the Chipmunk2D body that resolves an entity's
// footprint on the ground plane. Chipmunk X/Y map to world X/Z; world Y is
// integrated separately under gravity.
type CharacterBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Width  float64
	Depth  float64
	Height float64
	Static bool

	VelocityY float64
	Grounded  bool
}

// Ready reports whether the physics system has created the body.
func (b *CharacterBody) Ready() bool {
	return b != nil && b.Body != nil
}

var CharacterBodyComponent = NewComponent[CharacterBody]()
