package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Point3
	Max Point3
}

// NewBoundingBox creates an empty bounding box; the first Extend sets both corners
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Point3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// IsEmpty reports whether no point has been added yet
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(p Point3) {
	b.Min = Point3(b.Min.Vector().Min(p.Vector()))
	b.Max = Point3(b.Max.Vector().Max(p.Vector()))
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Point3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// Contains reports whether p lies inside the box, allowing eps slack
func (b BoundingBox) Contains(p Point3, eps float64) bool {
	return p.X >= b.Min.X-eps && p.X <= b.Max.X+eps &&
		p.Y >= b.Min.Y-eps && p.Y <= b.Max.Y+eps &&
		p.Z >= b.Min.Z-eps && p.Z <= b.Max.Z+eps
}
