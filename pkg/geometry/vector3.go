package geometry

import "math"

// Vector3 represents a direction and magnitude in 3D space
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Div divides the vector by a scalar
func (v Vector3) Div(scalar float64) Vector3 {
	return Vector3{
		X: v.X / scalar,
		Y: v.Y / scalar,
		Z: v.Z / scalar,
	}
}

// Neg returns the vector pointing the other way
func (v Vector3) Neg() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// IsZero reports whether every component is within eps of zero
func (v Vector3) IsZero(eps float64) bool {
	return IsZero(v.X, eps) && IsZero(v.Y, eps) && IsZero(v.Z, eps)
}

// Normalize returns a unit vector in the same direction.
// A vector within eps of zero is returned unchanged.
func (v Vector3) Normalize(eps float64) Vector3 {
	if v.IsZero(eps) {
		return v
	}
	return v.Mul(1.0 / v.Length())
}

// Equal reports whether the vectors match component-wise within eps
func (v Vector3) Equal(other Vector3, eps float64) bool {
	return IsZero(v.X-other.X, eps) && IsZero(v.Y-other.Y, eps) && IsZero(v.Z-other.Z, eps)
}

// IsParallel reports whether the cross product vanishes component-wise within eps.
// Opposite vectors are parallel too.
func (v Vector3) IsParallel(other Vector3, eps float64) bool {
	return v.Cross(other).IsZero(eps)
}

// IsOpposite reports whether the vectors are parallel and point in opposite directions
func (v Vector3) IsOpposite(other Vector3, eps float64) bool {
	return v.IsParallel(other, eps) && v.Dot(other) < 0
}

// IsOrthogonal reports whether |v·other| <= eps
func (v Vector3) IsOrthogonal(other Vector3, eps float64) bool {
	return IsZero(v.Dot(other), eps)
}

// AngleTo returns the angle between two vectors in radians, in [0, π].
// Zero-length input yields 0.
func (v Vector3) AngleTo(other Vector3) float64 {
	denom := v.Length() * other.Length()
	if denom == 0 {
		return 0
	}
	return math.Acos(Clamp(v.Dot(other)/denom, -1, 1))
}

// ProjectOnto returns the component of v along other
func (v Vector3) ProjectOnto(other Vector3) Vector3 {
	l2 := other.LengthSquared()
	if l2 == 0 {
		return Vector3{}
	}
	return other.Mul(v.Dot(other) / l2)
}

// AnyOrthogonal returns some vector orthogonal to v (not normalized)
func (v Vector3) AnyOrthogonal(eps float64) Vector3 {
	if IsZero(v.X, eps) {
		if !IsZero(v.Y, eps) {
			return Vector3{X: 0, Y: v.Z, Z: -v.Y}
		}
		return Vector3{X: 1, Y: 0, Z: 0}
	}
	return Vector3{X: v.Y, Y: -v.X, Z: 0}
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}
