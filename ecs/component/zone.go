package component

import "github.com/go-gl/mathgl/mgl64"

// Zone is a sphere around Center whose script runs when the player
// crosses its boundary.
type Zone struct {
	Name   string
	Center mgl64.Vec3
	Radius float64
	// Script is a prefabs/scripts path defining onEnter and onExit.
	Script string

	Inside bool
}

var ZoneComponent = NewComponent[Zone]()
