package geometry

import (
	"math"
	"testing"
)

func TestCylinderIntersectLine(t *testing.T) {
	cyl := NewCylinder(NewPoint3(0, 0, 0), NewVector3(0, 0, 1), 1)
	h := math.Sqrt(0.5)

	points := cyl.IntersectLine(NewLine(NewPoint3(0, 0, 0), NewVector3(1, 1, 1)), Eps)
	if len(points) != 2 {
		t.Fatalf("IntersectLine failed: expected 2 points, got %d", len(points))
	}
	if !points[0].Equal(NewPoint3(h, h, h), 1e-9) {
		t.Errorf("IntersectLine failed: expected first point %v, got %v", NewPoint3(h, h, h), points[0])
	}
	if !points[1].Equal(NewPoint3(-h, -h, -h), 1e-9) {
		t.Errorf("IntersectLine failed: expected second point %v, got %v", NewPoint3(-h, -h, -h), points[1])
	}

	tangent := cyl.IntersectLine(NewLine(NewPoint3(1, 0, 0), NewVector3(0, 1, 0)), Eps)
	if len(tangent) != 1 || !tangent[0].Equal(NewPoint3(1, 0, 0), 1e-9) {
		t.Errorf("IntersectLine failed: expected tangent point (1,0,0), got %v", tangent)
	}

	if miss := cyl.IntersectLine(NewLine(NewPoint3(2, 2, 0), NewVector3(1, 0, 1)), Eps); len(miss) != 0 {
		t.Errorf("IntersectLine failed: expected no points, got %v", miss)
	}
}

func TestCylinderIntersectDomains(t *testing.T) {
	cyl := NewCylinder(NewPoint3(0, 0, 0), NewVector3(0, 0, 1), 1)

	ray := NewRay(NewPoint3(0, 0, 0), NewVector3(1, 0, 0))
	if points := cyl.IntersectLine(ray, Eps); len(points) != 1 || !points[0].Equal(NewPoint3(1, 0, 0), 1e-9) {
		t.Errorf("IntersectLine with ray failed: got %v", points)
	}

	seg := NewSegment(NewPoint3(0, 0, 0), NewPoint3(0.5, 0, 0))
	if points := cyl.IntersectLine(seg, Eps); len(points) != 0 {
		t.Errorf("IntersectLine with short segment failed: got %v", points)
	}

	axial := NewLine(NewPoint3(0.5, 0, 0), NewVector3(0, 0, 1))
	if points := cyl.IntersectLine(axial, Eps); points != nil {
		t.Errorf("IntersectLine with axis-parallel line failed: got %v", points)
	}

	flat := Cylinder{Origin: NewPoint3(0, 0, 0), Axis: NewVector3(0, 0, 1)}
	if points := flat.IntersectLine(ray, Eps); points != nil {
		t.Errorf("IntersectLine with zero radius failed: got %v", points)
	}
}

func TestCylinderProjectAndNormal(t *testing.T) {
	cyl := NewCylinder(NewPoint3(0, 0, 0), NewVector3(0, 0, 2), 2)

	p, ok := cyl.Project(NewPoint3(4, 0, 3), Eps)
	if !ok || !p.Equal(NewPoint3(2, 0, 3), Eps) {
		t.Errorf("Project failed: got %v %v", p, ok)
	}
	if _, ok := cyl.Project(NewPoint3(0, 0, 7), Eps); ok {
		t.Errorf("Project failed: point on the axis has no projection")
	}

	n, ok := cyl.NormalAt(NewPoint3(0, -2, 1), Eps)
	if !ok || !n.Equal(NewVector3(0, -1, 0), Eps) {
		t.Errorf("NormalAt failed: got %v %v", n, ok)
	}
	if _, ok := cyl.NormalAt(NewPoint3(0, -1, 1), Eps); ok {
		t.Errorf("NormalAt failed: point inside the cylinder accepted")
	}
}
