package component

import "github.com/go-gl/mathgl/mgl64"

// OrbitCamera is a camera circling Target. Polar angles are measured from
// the +Y axis.
type OrbitCamera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3

	MinPolar    float64
	MaxPolar    float64
	MinDistance float64
	MaxDistance float64

	EnablePan    bool
	EnableZoom   bool
	EnableRotate bool

	RotateSpeed float64
	ZoomSpeed   float64
}

var OrbitCameraComponent = NewComponent[OrbitCamera]()

// CameraFollow places the camera behind the player when Enabled.
type CameraFollow struct {
	Enabled bool
	// Target is the last point the camera was aimed at in follow mode.
	Target     mgl64.Vec3
	Distance   float64
	Height     float64
	LookHeight float64
	Smoothing  float64
}

var CameraFollowComponent = NewComponent[CameraFollow]()
