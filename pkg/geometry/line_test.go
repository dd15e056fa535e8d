package geometry

import (
	"math"
	"testing"
)

func TestDomainContains(t *testing.T) {
	tests := []struct {
		domain Domain
		t      float64
		want   bool
	}{
		{Unbounded, -5, true},
		{HalfBounded, -5, false},
		{HalfBounded, -1e-12, true},
		{HalfBounded, 7, true},
		{Bounded, 0.5, true},
		{Bounded, 1.5, false},
		{Bounded, -0.5, false},
	}

	for _, tt := range tests {
		if got := tt.domain.Contains(tt.t, Eps); got != tt.want {
			t.Errorf("%v.Contains(%v) failed: expected %v, got %v", tt.domain, tt.t, tt.want, got)
		}
	}
}

func TestLineIntersect(t *testing.T) {
	a := NewLine(NewPoint3(0, 0, 0), NewVector3(1, 0, 0))
	b := NewLine(NewPoint3(2, -1, 0), NewVector3(0, 1, 0))

	p, ok := a.Intersect(b, Eps)
	if !ok {
		t.Fatalf("Intersect failed: expected intersection")
	}
	expected := NewPoint3(2, 0, 0)
	if !p.Equal(expected, Eps) {
		t.Errorf("Intersect failed: expected %v, got %v", expected, p)
	}

	t1, t2, ok := a.IntersectParams(b, Eps)
	if !ok || math.Abs(t1-2) > 1e-10 || math.Abs(t2-1) > 1e-10 {
		t.Errorf("IntersectParams failed: expected (2, 1), got (%v, %v, %v)", t1, t2, ok)
	}
}

func TestLineIntersectDomains(t *testing.T) {
	seg := NewSegment(NewPoint3(0, 0, 0), NewPoint3(1, 0, 0))
	crossing := NewLine(NewPoint3(2, -1, 0), NewVector3(0, 1, 0))
	if _, ok := seg.Intersect(crossing, Eps); ok {
		t.Errorf("Intersect failed: segment should not reach x=2")
	}

	ray := NewRay(NewPoint3(3, 0, 0), NewVector3(1, 0, 0))
	if _, ok := ray.Intersect(crossing, Eps); ok {
		t.Errorf("Intersect failed: ray points away from the crossing")
	}
	back := NewRay(NewPoint3(3, 0, 0), NewVector3(-1, 0, 0))
	if _, ok := back.Intersect(crossing, Eps); !ok {
		t.Errorf("Intersect failed: reversed ray should hit")
	}
}

func TestLineParallelAndSkew(t *testing.T) {
	a := NewLine(NewPoint3(0, 0, 0), NewVector3(1, 0, 0))
	b := NewLine(NewPoint3(0, 1, 0), NewVector3(-2, 0, 0))
	c := NewLine(NewPoint3(0, 1, 1), NewVector3(0, 1, 0))

	if _, ok := a.Intersect(b, Eps); ok {
		t.Errorf("Intersect failed: parallel lines should not intersect")
	}
	if !a.IsParallel(b, Eps) || !a.IsOpposite(b, Eps) {
		t.Errorf("IsParallel/IsOpposite failed")
	}
	if a.IsSkew(b, Eps) {
		t.Errorf("IsSkew failed: parallel lines are not skew")
	}
	if !a.IsSkew(c, Eps) {
		t.Errorf("IsSkew failed: expected skew lines")
	}
	if !a.IsOrthogonal(c, Eps) {
		t.Errorf("IsOrthogonal failed")
	}
	if angle := a.AngleTo(c); math.Abs(angle-math.Pi/2) > 1e-10 {
		t.Errorf("AngleTo failed: expected %v, got %v", math.Pi/2, angle)
	}
}

func TestLineClosestPoint(t *testing.T) {
	p := NewPoint3(-2, 1, 0)

	line := NewLine(NewPoint3(0, 0, 0), NewVector3(1, 0, 0))
	if got := line.ClosestPoint(p); !got.Equal(NewPoint3(-2, 0, 0), Eps) {
		t.Errorf("Line ClosestPoint failed: got %v", got)
	}

	ray := NewRay(NewPoint3(0, 0, 0), NewVector3(1, 0, 0))
	if got := ray.ClosestPoint(p); !got.Equal(NewPoint3(0, 0, 0), Eps) {
		t.Errorf("Ray ClosestPoint failed: got %v", got)
	}

	seg := NewSegment(NewPoint3(0, 0, 0), NewPoint3(1, 0, 0))
	if got := seg.ClosestPoint(NewPoint3(5, 1, 0)); !got.Equal(seg.End(), Eps) {
		t.Errorf("Segment ClosestPoint failed: got %v", got)
	}
	if d := seg.DistanceToPoint(NewPoint3(0.5, 2, 0)); math.Abs(d-2) > 1e-10 {
		t.Errorf("DistanceToPoint failed: expected 2, got %v", d)
	}
	if !seg.ContainsPoint(NewPoint3(0.5, 0, 0), Eps) || seg.ContainsPoint(NewPoint3(1.5, 0, 0), Eps) {
		t.Errorf("ContainsPoint failed")
	}
}

func TestPlane(t *testing.T) {
	pl := NewPlane(NewPoint3(0, 0, 1), NewVector3(0, 0, 3))

	if d := pl.SignedDistance(NewPoint3(5, 5, 4)); math.Abs(d-3) > 1e-10 {
		t.Errorf("SignedDistance failed: expected 3, got %v", d)
	}
	if got := pl.Project(NewPoint3(2, 3, -4)); !got.Equal(NewPoint3(2, 3, 1), Eps) {
		t.Errorf("Project failed: got %v", got)
	}
	if !pl.ContainsPoint(NewPoint3(7, -2, 1), Eps) {
		t.Errorf("ContainsPoint failed")
	}
	if got := pl.ProjectVector(NewVector3(1, -2, 5)); !got.Equal(NewVector3(1, -2, 0), Eps) {
		t.Errorf("ProjectVector failed: expected (1, -2, 0), got %v", got)
	}
	tilted := NewPlane(NewPoint3(0, 0, 0), NewVector3(1, 1, 0))
	if got := tilted.ProjectVector(NewVector3(2, 0, 3)); !got.Equal(NewVector3(1, -1, 3), 1e-12) || !got.IsOrthogonal(tilted.Normal, 1e-12) {
		t.Errorf("ProjectVector failed: expected (1, -1, 3), got %v", got)
	}

	p, param, ok := pl.IntersectLine(NewRay(NewPoint3(1, 1, 5), NewVector3(0, 0, -2)), Eps)
	if !ok || !p.Equal(NewPoint3(1, 1, 1), Eps) || math.Abs(param-2) > 1e-10 {
		t.Errorf("IntersectLine failed: got %v %v %v", p, param, ok)
	}
	// the line parameter is not filtered by the domain
	_, param, ok = pl.IntersectLine(NewRay(NewPoint3(1, 1, 5), NewVector3(0, 0, 2)), Eps)
	if !ok || math.Abs(param+2) > 1e-10 {
		t.Errorf("IntersectLine failed: expected t=-2, got %v %v", param, ok)
	}
	if _, _, ok := pl.IntersectLine(NewLine(NewPoint3(0, 0, 0), NewVector3(1, 1, 0)), Eps); ok {
		t.Errorf("IntersectLine failed: parallel line should miss")
	}
}
