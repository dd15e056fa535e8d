// Package geometry provides the primitive kernel used by the ray caster:
// vectors, points, lines with a parameter domain, planes, triangles,
// cylinders and affine transforms.
//
// Every comparison that depends on a tolerance takes an explicit eps
// argument. Eps is the default. Two values equal under a loose eps may
// differ under a tighter one, so equality is not transitive.
package geometry

import "math"

// Eps is the default comparison tolerance
const Eps = 1e-9

// IsZero reports whether |x| <= eps
func IsZero(x, eps float64) bool {
	return math.Abs(x) <= eps
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
