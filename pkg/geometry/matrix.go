package geometry

import "math"

// Matrix4 is a row-major affine transform acting on column vectors:
// TransformPoint(p) = M * [p 1]^T. a.Mul(b) applies b first.
type Matrix4 [4][4]float64

// Identity returns the identity transform
func Identity() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a transform moving points by v
func Translation(v Vector3) Matrix4 {
	m := Identity()
	m[0][3], m[1][3], m[2][3] = v.X, v.Y, v.Z
	return m
}

// Scaling returns a transform scaling each axis
func Scaling(v Vector3) Matrix4 {
	m := Identity()
	m[0][0], m[1][1], m[2][2] = v.X, v.Y, v.Z
	return m
}

// RotationX rotates counter-clockwise about +X by theta radians
func RotationX(theta float64) Matrix4 {
	s, c := math.Sincos(theta)
	m := Identity()
	m[1][1], m[1][2] = c, -s
	m[2][1], m[2][2] = s, c
	return m
}

// RotationY rotates counter-clockwise about +Y by theta radians
func RotationY(theta float64) Matrix4 {
	s, c := math.Sincos(theta)
	m := Identity()
	m[0][0], m[0][2] = c, s
	m[2][0], m[2][2] = -s, c
	return m
}

// RotationZ rotates counter-clockwise about +Z by theta radians
func RotationZ(theta float64) Matrix4 {
	s, c := math.Sincos(theta)
	m := Identity()
	m[0][0], m[0][1] = c, -s
	m[1][0], m[1][1] = s, c
	return m
}

// Rotation rotates about an arbitrary axis through the origin (Rodrigues)
func Rotation(axis Vector3, theta float64) Matrix4 {
	a := axis.Normalize(Eps)
	s, c := math.Sincos(theta)
	k := 1 - c
	return Matrix4{
		{c + a.X*a.X*k, a.X*a.Y*k - a.Z*s, a.X*a.Z*k + a.Y*s, 0},
		{a.Y*a.X*k + a.Z*s, c + a.Y*a.Y*k, a.Y*a.Z*k - a.X*s, 0},
		{a.Z*a.X*k - a.Y*s, a.Z*a.Y*k + a.X*s, c + a.Z*a.Z*k, 0},
		{0, 0, 0, 1},
	}
}

// Basis maps local coordinates (x, y, z) to origin + x*u + y*v + z*w
func Basis(u, v, w Vector3, origin Point3) Matrix4 {
	return Matrix4{
		{u.X, v.X, w.X, origin.X},
		{u.Y, v.Y, w.Y, origin.Y},
		{u.Z, v.Z, w.Z, origin.Z},
		{0, 0, 0, 1},
	}
}

// Mul returns m*other, the transform applying other first and then m
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// TransformPoint applies the full affine transform to p
func (m Matrix4) TransformPoint(p Point3) Point3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 0 && w != 1 {
		return Point3{X: x / w, Y: y / w, Z: z / w}
	}
	return Point3{X: x, Y: y, Z: z}
}

// TransformVector applies the linear part of the transform to v
func (m Matrix4) TransformVector(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix
func (m Matrix4) Transpose() Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Equal compares all entries within eps
func (m Matrix4) Equal(other Matrix4, eps float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !IsZero(m[i][j]-other[i][j], eps) {
				return false
			}
		}
	}
	return true
}

// Inverse returns the inverse using Gauss-Jordan elimination with partial
// pivoting. Singular matrices report false.
func (m Matrix4) Inverse() (Matrix4, bool) {
	a := m
	inv := Identity()
	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return Matrix4{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		p := a[col][col]
		for j := 0; j < 4; j++ {
			a[col][j] /= p
			inv[col][j] /= p
		}
		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 4; j++ {
				a[row][j] -= f * a[col][j]
				inv[row][j] -= f * inv[col][j]
			}
		}
	}
	return inv, true
}

// NormalMatrix returns the transform for normals: the inverse transpose of
// the linear part. Singular transforms fall back to the matrix itself.
func (m Matrix4) NormalMatrix() Matrix4 {
	linear := m
	linear[0][3], linear[1][3], linear[2][3] = 0, 0, 0
	inv, ok := linear.Inverse()
	if !ok {
		return linear
	}
	return inv.Transpose()
}
