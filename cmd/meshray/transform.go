package main

import (
	"fmt"
	"math"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/spf13/pflag"
)

var (
	transformTranslate []float64
	transformRotate    []float64
	transformScale     []float64
)

// addTransformFlags registers the placement flags shared by build and import
func addTransformFlags(flags *pflag.FlagSet) {
	flags.Float64SliceVar(&transformTranslate, "translate", nil, "Move the mesh by x,y,z")
	flags.Float64SliceVar(&transformRotate, "rotate", nil, "Rotate about the X, Y, then Z axis by x,y,z degrees")
	flags.Float64SliceVar(&transformScale, "scale", nil, "Scale by one factor or by x,y,z factors")
}

// placement builds scale, then rotation, then translation from the flags.
// ok is false when no transform flag was given.
func placement(translate, rotate, scale []float64) (t geometry.Matrix4, ok bool, err error) {
	t = geometry.Identity()

	if scale != nil {
		var s geometry.Vector3
		switch len(scale) {
		case 1:
			s = geometry.NewVector3(scale[0], scale[0], scale[0])
		case 3:
			s = geometry.NewVector3(scale[0], scale[1], scale[2])
		default:
			return t, false, fmt.Errorf("--scale takes one or three values, got %d", len(scale))
		}
		if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
			return t, false, fmt.Errorf("--scale factors must be positive")
		}
		t = geometry.Scaling(s)
		ok = true
	}
	if rotate != nil {
		r, err := toVector("rotate", rotate)
		if err != nil {
			return t, false, err
		}
		deg := math.Pi / 180
		rotation := geometry.RotationZ(r.Z * deg).Mul(geometry.RotationY(r.Y * deg)).Mul(geometry.RotationX(r.X * deg))
		t = rotation.Mul(t)
		ok = true
	}
	if translate != nil {
		v, err := toVector("translate", translate)
		if err != nil {
			return t, false, err
		}
		t = geometry.Translation(v).Mul(t)
		ok = true
	}
	return t, ok, nil
}

// applyPlacement transforms m in place according to the transform flags
func applyPlacement(m *mesh.Mesh) error {
	t, ok, err := placement(transformTranslate, transformRotate, transformScale)
	if err != nil || !ok {
		return err
	}
	m.Transform(t)
	return nil
}
