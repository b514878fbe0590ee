package geom

import (
	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/scene"
)

// Point is a single point object.
type Point struct {
	binary.Point3
}

// MarshalPoint writes chunk version 1.0 followed by the location.
func (p Point) MarshalPoint(fc scene.FileContext) ([]byte, error) {
	return encode(fc, func(w *binary.Writer) error {
		if err := w.WriteChunkVersion(1, 0); err != nil {
			return err
		}
		return w.WritePoint3(p.Point3)
	})
}

// Geometry returns p as scene geometry.
func (p Point) Geometry() scene.Geometry {
	return scene.Geometry{Kind: scene.KindPoint, Point: p}
}
