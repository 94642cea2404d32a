package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LerpVec3 moves a toward b by fraction t.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Flatten drops the vertical component of v and normalizes the rest.
// It returns false when nothing is left to normalize.
func Flatten(v mgl64.Vec3) (mgl64.Vec3, bool) {
	v[1] = 0
	l := v.Len()
	if l < 1e-9 {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// Yaw returns the rotation of angle radians about Up.
func Yaw(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, Up)
}

// RotateTowards turns q toward target by at most step radians.
func RotateTowards(q, target mgl64.Quat, step float64) mgl64.Quat {
	if q.Len() < 1e-9 {
		q = mgl64.QuatIdent()
	}
	d := q.Dot(target)
	if d < 0 {
		target = target.Scale(-1)
		d = -d
	}
	angle := 2 * math.Acos(math.Min(1, d))
	if angle < 1e-9 {
		return target
	}
	t := math.Min(1, step/angle)
	return mgl64.QuatSlerp(q, target, t).Normalize()
}

// AngleBetween returns the rotation angle separating a and b.
func AngleBetween(a, b mgl64.Quat) float64 {
	return 2 * math.Acos(math.Min(1, math.Abs(a.Dot(b))))
}
