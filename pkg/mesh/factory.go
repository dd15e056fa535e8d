package mesh

import (
	"errors"
	"math"

	"github.com/philipparndt/meshray/pkg/geometry"
)

// MaxCylinderSides caps the side count of generated cylinders
const MaxCylinderSides = 1 << 16

// Cube creates an axis-aligned cube with the given side length
func Cube(center geometry.Point3, side float64) (*Mesh, error) {
	return Cuboid(center, side, side, side)
}

// Cuboid creates an axis-aligned box. Each face has its own four points so
// that it carries a flat outward normal; faces are ordered +X, +Y, -X, -Y,
// +Z, -Z and each face is one surface of two triangles.
func Cuboid(center geometry.Point3, sx, sy, sz float64) (*Mesh, error) {
	if sx <= 0 || sy <= 0 || sz <= 0 {
		return nil, errors.New("cuboid sizes must be positive")
	}
	hx, hy, hz := sx/2, sy/2, sz/2
	corner := func(x, y, z float64) geometry.Point3 {
		return center.Add(geometry.NewVector3(x*hx, y*hy, z*hz))
	}

	a := corner(1, -1, -1)
	b := corner(1, -1, 1)
	c := corner(1, 1, 1)
	d := corner(1, 1, -1)
	e := corner(-1, -1, 1)
	f := corner(-1, 1, 1)
	g := corner(-1, -1, -1)
	k := corner(-1, 1, -1)

	faces := []struct {
		corners [4]geometry.Point3
		normal  geometry.Vector3
	}{
		{[4]geometry.Point3{a, d, c, b}, geometry.NewVector3(1, 0, 0)},
		{[4]geometry.Point3{d, k, f, c}, geometry.NewVector3(0, 1, 0)},
		{[4]geometry.Point3{k, g, e, f}, geometry.NewVector3(-1, 0, 0)},
		{[4]geometry.Point3{g, a, b, e}, geometry.NewVector3(0, -1, 0)},
		{[4]geometry.Point3{b, c, f, e}, geometry.NewVector3(0, 0, 1)},
		{[4]geometry.Point3{g, k, d, a}, geometry.NewVector3(0, 0, -1)},
	}

	m := &Mesh{
		Points:    make([]geometry.Point3, 0, 24),
		Normals:   make([]geometry.Vector3, 0, 24),
		Triangles: make([]int, 0, 36),
		Surfaces:  make([]Surface, 0, 6),
	}
	for i, face := range faces {
		base := len(m.Points)
		for _, p := range face.corners {
			m.Points = append(m.Points, p)
			m.Normals = append(m.Normals, face.normal)
		}
		m.Triangles = append(m.Triangles,
			base, base+1, base+2,
			base, base+2, base+3,
		)
		m.Surfaces = append(m.Surfaces, Surface{Begin: 2 * i, End: 2*i + 2})
	}
	return m, nil
}

// CylinderSides returns the number of sides needed so that no chord of a
// circle with the given radius deviates more than tol from the arc
func CylinderSides(radius, tol float64) int {
	x := geometry.Clamp(1-tol/radius, -1, 1)
	angle := math.Acos(x)
	if angle == 0 {
		return MaxCylinderSides
	}
	n := math.Ceil(math.Pi/angle - 1e-9)
	if n > MaxCylinderSides {
		return MaxCylinderSides
	}
	return max(3, int(n))
}

// Cylinder creates a closed cylinder whose bottom cap is centered at origin
// and whose top cap lies height along axis. Surfaces are the bottom cap
// [0,n), the top cap [n,2n) and the lateral band [2n,4n).
func Cylinder(origin geometry.Point3, axis geometry.Vector3, radius, height, tol float64) (*Mesh, error) {
	switch {
	case radius <= 0:
		return nil, errors.New("cylinder radius must be positive")
	case height <= 0:
		return nil, errors.New("cylinder height must be positive")
	case tol <= 0:
		return nil, errors.New("chord tolerance must be positive")
	case axis.IsZero(geometry.Eps):
		return nil, errors.New("cylinder axis must not be zero")
	}

	n := CylinderSides(radius, tol)
	w := axis.Normalize(geometry.Eps)
	u := w.AnyOrthogonal(geometry.Eps).Normalize(geometry.Eps)
	v := w.Cross(u)
	// the mesh is built around +Z in local coordinates
	toWorld := geometry.Basis(u, v, w, origin)
	step := 2 * math.Pi / float64(n)

	rim := func(theta, z float64) geometry.Point3 {
		s, c := math.Sincos(theta)
		return toWorld.TransformPoint(geometry.NewPoint3(radius*c, radius*s, z))
	}
	radial := func(theta float64) geometry.Vector3 {
		s, c := math.Sincos(theta)
		return toWorld.TransformVector(geometry.NewVector3(c, s, 0))
	}
	up := toWorld.TransformVector(geometry.NewVector3(0, 0, 1))
	down := up.Neg()

	m := &Mesh{
		Points:    make([]geometry.Point3, 0, 6*n+2),
		Normals:   make([]geometry.Vector3, 0, 6*n+2),
		Triangles: make([]int, 0, 12*n),
		Surfaces: []Surface{
			{Begin: 0, End: n},
			{Begin: n, End: 2 * n},
			{Begin: 2 * n, End: 4 * n},
		},
	}
	add := func(p geometry.Point3, normal geometry.Vector3) {
		m.Points = append(m.Points, p)
		m.Normals = append(m.Normals, normal)
	}

	// caps: center followed by the rim
	add(origin, down)
	for k := 0; k < n; k++ {
		add(rim(float64(k)*step, 0), down)
	}
	add(toWorld.TransformPoint(geometry.NewPoint3(0, 0, height)), up)
	for k := 0; k < n; k++ {
		add(rim(float64(k)*step, height), up)
	}

	bottomCenter, topCenter := 0, n+1
	for k := 0; k < n; k++ {
		next := (k + 1) % n
		m.Triangles = append(m.Triangles, bottomCenter, 1+next, 1+k)
	}
	for k := 0; k < n; k++ {
		next := (k + 1) % n
		m.Triangles = append(m.Triangles, topCenter, n+2+k, n+2+next)
	}

	// lateral band: four points per side so each side keeps a flat normal
	for k := 0; k < n; k++ {
		next := (k + 1) % n
		normal := radial((float64(k) + 0.5) * step)
		base := len(m.Points)
		add(m.Points[1+k], normal)
		add(m.Points[1+next], normal)
		add(m.Points[n+2+next], normal)
		add(m.Points[n+2+k], normal)
		m.Triangles = append(m.Triangles,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return m, nil
}
