package prox

import "math"

// Vector2 is a point or direction in the vehicle's horizontal body
// frame. X points forward, Y points right, which matches bearing 0 =
// forward with angles increasing clockwise.
type Vector2 struct {
	X float32
	Y float32
}

// IsZero reports whether both components are exactly zero. The zero
// vector doubles as the "not yet computed" sentinel for lazily derived
// sector edge vectors.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Scale returns the vector multiplied by m.
func (v Vector2) Scale(m float32) Vector2 {
	return Vector2{X: v.X * m, Y: v.Y * m}
}

// Length returns the Euclidean magnitude.
func (v Vector2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// wrap360 wraps an angle in degrees into [0, 360).
func wrap360(angleDeg float32) float32 {
	res := float32(math.Mod(float64(angleDeg), 360))
	if res < 0 {
		res += 360
	}
	return res
}

// wrap180 wraps an angle in degrees into (-180, 180].
func wrap180(angleDeg float32) float32 {
	res := wrap360(angleDeg)
	if res > 180 {
		res -= 360
	}
	return res
}

// wrapInt360 wraps an integer angle in degrees into [0, 360).
func wrapInt360(angleDeg int) int {
	angleDeg %= 360
	if angleDeg < 0 {
		angleDeg += 360
	}
	return angleDeg
}
