package geom

import (
	"fmt"

	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/scene"
)

// NurbsCurve is a non-uniform rational B-spline curve.
//
// Knots use the openNURBS convention of order+len(CVs)-2 values, without
// the two superfluous end knots. A nil Knots slice is replaced by a
// clamped uniform vector. Weights, when present, make the curve rational.
type NurbsCurve struct {
	Dim     int // 2 or 3; 0 means 3
	Order   int
	CVs     []binary.Point3
	Weights []float64
	Knots   []float64
}

// ClampedKnots returns a clamped uniform knot vector on [0, 1] for a
// spline with the given order and control point count.
func ClampedKnots(order, count int) []float64 {
	d := order - 1
	n := count + d - 1
	if d < 1 || n < 2*d {
		return nil
	}
	knots := make([]float64, n)
	spans := count - d
	for i := range knots {
		switch {
		case i < d:
			knots[i] = 0
		case i >= n-d:
			knots[i] = 1
		default:
			knots[i] = float64(i-d+1) / float64(spans)
		}
	}
	return knots
}

func (c NurbsCurve) dim() int {
	if c.Dim == 0 {
		return 3
	}
	return c.Dim
}

func (c NurbsCurve) rational() bool {
	return len(c.Weights) > 0
}

func (c NurbsCurve) knots() []float64 {
	if c.Knots != nil {
		return c.Knots
	}
	return ClampedKnots(c.Order, len(c.CVs))
}

func (c NurbsCurve) validate() error {
	if c.Order < 2 || len(c.CVs) < c.Order {
		return fmt.Errorf("%w: order %d with %d control points", ErrInvalidOrder, c.Order, len(c.CVs))
	}
	if want := c.Order + len(c.CVs) - 2; len(c.knots()) != want {
		return fmt.Errorf("%w: have %d, want %d", ErrKnotCount, len(c.knots()), want)
	}
	if c.rational() && len(c.Weights) != len(c.CVs) {
		return fmt.Errorf("%w: %d weights, %d points", ErrWeightCount, len(c.Weights), len(c.CVs))
	}
	return nil
}

// MarshalNurbsCurve writes the curve as chunk version 1.0. A curve without
// control points has no payload.
func (c NurbsCurve) MarshalNurbsCurve(fc scene.FileContext) ([]byte, error) {
	if len(c.CVs) == 0 {
		return nil, nil
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return encode(fc, c.write)
}

func (c NurbsCurve) write(w *binary.Writer) error {
	if err := w.WriteChunkVersion(1, 0); err != nil {
		return err
	}
	if err := writeInts(w, c.dim(), boolInt(c.rational()), c.Order, len(c.CVs), 0, 0); err != nil {
		return err
	}
	if err := w.WriteBoundingBox(binary.BoundsOf(c.CVs)); err != nil {
		return err
	}
	if err := w.WriteFloat64Array(c.knots()); err != nil {
		return err
	}
	return writeCVs(w, c.CVs, c.Weights, c.dim())
}

// Geometry returns c as scene geometry.
func (c NurbsCurve) Geometry() scene.Geometry {
	return scene.Geometry{Kind: scene.KindCurve, Curve: c}
}

// writeCVs writes a counted array of control points. Rational points are
// written in homogeneous form, each coordinate multiplied by its weight
// and followed by the weight.
func writeCVs(w *binary.Writer, cvs []binary.Point3, weights []float64, dim int) error {
	if err := w.WriteUint32(uint32(len(cvs))); err != nil {
		return err
	}
	for i, p := range cvs {
		wt := 1.0
		if len(weights) > 0 {
			wt = weights[i]
		}
		coords := []float64{p.X * wt, p.Y * wt, p.Z * wt}[:dim]
		if len(weights) > 0 {
			coords = append(coords, wt)
		}
		for _, v := range coords {
			if err := w.WriteFloat64(v); err != nil {
				return err
			}
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
