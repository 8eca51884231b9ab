// Package geom provides the small amount of 3D math room generation needs:
// vectors, yaw-only rotations, side orientation and pivot offsets.
// Y is up; yaw is measured in degrees around Y.
package geom

import "math"

// Vec3 is a point or direction in world space
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// One is the unit scale
var One = Vec3{1, 1, 1}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * k
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{v.X * k, v.Y * k, v.Z * k}
}

// WithY returns a copy of v with Y replaced
func (v Vec3) WithY(y float64) Vec3 {
	return Vec3{v.X, y, v.Z}
}

// Quat is a rotation quaternion
type Quat struct {
	X, Y, Z, W float64
}

// FromYaw returns the rotation of yawDeg degrees around Y
func FromYaw(yawDeg float64) Quat {
	half := yawDeg * math.Pi / 360
	return Quat{Y: math.Sin(half), W: math.Cos(half)}
}

// Transform is a position plus yaw, as read from an anchor
type Transform struct {
	Position Vec3    `json:"position"`
	Yaw      float64 `json:"yaw"`
}

// NormalizeYaw wraps a yaw into [0, 360)
func NormalizeYaw(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// RotateOffset2D rotates a local (x, z) offset into a yaw frame.
// Y of the result is always 0; callers add vertical offsets themselves.
func RotateOffset2D(x, z, yawDeg float64) Vec3 {
	r := yawDeg * math.Pi / 180
	c, s := math.Cos(r), math.Sin(r)
	return Vec3{X: x*c - z*s, Y: 0, Z: x*s + z*c}
}

// ApplyPivot offsets p by a pivot whose X/Z are expressed in the yaw frame
func ApplyPivot(p Vec3, pivot Vec3, yawDeg float64) Vec3 {
	off := RotateOffset2D(pivot.X, pivot.Z, yawDeg)
	return Vec3{p.X + off.X, p.Y + pivot.Y, p.Z + off.Z}
}

// DiskJitter maps two uniform draws to a point uniformly distributed over a
// disk of the given radius. u picks the angle, v the radial distance; the
// square root keeps areal density uniform.
func DiskJitter(radius, u, v float64) (x, z float64) {
	if radius <= 0 {
		return 0, 0
	}
	theta := u * 2 * math.Pi
	r := radius * math.Sqrt(v)
	return r * math.Cos(theta), r * math.Sin(theta)
}

// SnapY returns p with Y replaced by y
func SnapY(p Vec3, y float64) Vec3 {
	return p.WithY(y)
}
