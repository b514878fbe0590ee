package binary

import "math"

// Point2 is a 2D point or parameter-space coordinate.
type Point2 struct {
	X, Y float64
}

// Point3 is a 3D point.
type Point3 struct {
	X, Y, Z float64
}

// Interval is a closed parameter interval [T0, T1].
type Interval struct {
	T0, T1 float64
}

// BoundingBox is an axis aligned box.
type BoundingBox struct {
	Min, Max Point3
}

// EmptyBoundingBox returns the unset box: min at +1, max at -1 on every axis.
func EmptyBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point3{1, 1, 1},
		Max: Point3{-1, -1, -1},
	}
}

// BoundsOf returns the bounding box of pts, or the empty box when pts is empty.
func BoundsOf(pts []Point3) BoundingBox {
	if len(pts) == 0 {
		return EmptyBoundingBox()
	}
	b := BoundingBox{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = Point3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)}
		b.Max = Point3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)}
	}
	return b
}
