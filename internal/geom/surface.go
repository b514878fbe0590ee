package geom

import (
	"fmt"

	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/scene"
)

// Loop is a closed trim polyline in the surface's parameter space. The
// last point connects back to the first.
type Loop struct {
	Outer  bool
	Points []binary.Point2
}

// NurbsSurface is a tensor product NURBS surface with optional trim loops.
// Control points are stored u-major: CVs[i*CountV+j] is the point at u
// index i and v index j. Nil knot vectors are replaced by clamped uniform
// ones.
type NurbsSurface struct {
	OrderU, OrderV int
	CountU, CountV int
	CVs            []binary.Point3
	Weights        []float64
	KnotsU, KnotsV []float64
	Loops          []Loop
}

func (s NurbsSurface) rational() bool {
	return len(s.Weights) > 0
}

func (s NurbsSurface) knotsU() []float64 {
	if s.KnotsU != nil {
		return s.KnotsU
	}
	return ClampedKnots(s.OrderU, s.CountU)
}

func (s NurbsSurface) knotsV() []float64 {
	if s.KnotsV != nil {
		return s.KnotsV
	}
	return ClampedKnots(s.OrderV, s.CountV)
}

func (s NurbsSurface) validate() error {
	if s.OrderU < 2 || s.OrderV < 2 || s.CountU < s.OrderU || s.CountV < s.OrderV {
		return fmt.Errorf("%w: orders %dx%d with %dx%d control points",
			ErrInvalidOrder, s.OrderU, s.OrderV, s.CountU, s.CountV)
	}
	if len(s.CVs) != s.CountU*s.CountV {
		return fmt.Errorf("%w: %d points for a %dx%d grid", ErrCVCount, len(s.CVs), s.CountU, s.CountV)
	}
	if len(s.knotsU()) != s.OrderU+s.CountU-2 || len(s.knotsV()) != s.OrderV+s.CountV-2 {
		return ErrKnotCount
	}
	if s.rational() && len(s.Weights) != len(s.CVs) {
		return fmt.Errorf("%w: %d weights, %d points", ErrWeightCount, len(s.Weights), len(s.CVs))
	}
	for i, l := range s.Loops {
		if len(l.Points) < 3 {
			return fmt.Errorf("loop %d: %w", i, ErrLoop)
		}
	}
	return nil
}

// Domain returns the parameter intervals of the surface.
func (s NurbsSurface) Domain() (u, v binary.Interval) {
	ku, kv := s.knotsU(), s.knotsV()
	u = binary.Interval{T0: ku[s.OrderU-2], T1: ku[s.CountU-1]}
	v = binary.Interval{T0: kv[s.OrderV-2], T1: kv[s.CountV-1]}
	return u, v
}

// Trims summarizes the trim loops. An outer loop is natural when it walks
// the four corners of the domain in boundary order, in either direction.
func (s NurbsSurface) Trims() scene.TrimInfo {
	var t scene.TrimInfo
	for _, l := range s.Loops {
		if l.Outer {
			t.OuterLoops++
		} else {
			t.InnerLoops++
		}
	}
	if t.OuterLoops == 1 && s.validate() == nil {
		for _, l := range s.Loops {
			if l.Outer {
				t.NaturalOuter = s.isNatural(l)
			}
		}
	}
	return t
}

func (s NurbsSurface) isNatural(l Loop) bool {
	if len(l.Points) != 4 {
		return false
	}
	u, v := s.Domain()
	corners := [4]binary.Point2{
		{X: u.T0, Y: v.T0},
		{X: u.T1, Y: v.T0},
		{X: u.T1, Y: v.T1},
		{X: u.T0, Y: v.T1},
	}
	start := -1
	for i, c := range corners {
		if l.Points[0] == c {
			start = i
		}
	}
	if start < 0 {
		return false
	}
	// the corners in boundary order, walked either way round
	forward, backward := true, true
	for i, p := range l.Points {
		forward = forward && p == corners[(start+i)%4]
		backward = backward && p == corners[(start-i+4)%4]
	}
	return forward || backward
}

// MarshalNurbsSurface writes the untrimmed surface as chunk version 1.0.
// A surface without control points has no payload.
func (s NurbsSurface) MarshalNurbsSurface(fc scene.FileContext) ([]byte, error) {
	if len(s.CVs) == 0 {
		return nil, nil
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return encode(fc, s.write)
}

func (s NurbsSurface) write(w *binary.Writer) error {
	if err := w.WriteChunkVersion(1, 0); err != nil {
		return err
	}
	if err := writeInts(w, 3, boolInt(s.rational()), s.OrderU, s.OrderV, s.CountU, s.CountV, 0, 0); err != nil {
		return err
	}
	if err := w.WriteBoundingBox(binary.BoundsOf(s.CVs)); err != nil {
		return err
	}
	if err := w.WriteFloat64Array(s.knotsU()); err != nil {
		return err
	}
	if err := w.WriteFloat64Array(s.knotsV()); err != nil {
		return err
	}
	return writeCVs(w, s.CVs, s.Weights, 3)
}

// Geometry returns s as scene geometry.
func (s NurbsSurface) Geometry() scene.Geometry {
	return scene.Geometry{Kind: scene.KindSurface, Surface: s}
}

// PointAt evaluates the surface at (u, v). The surface must be valid.
func (s NurbsSurface) PointAt(u, v float64) binary.Point3 {
	fu := fullKnots(s.knotsU())
	fv := fullKnots(s.knotsV())
	pu, pv := s.OrderU-1, s.OrderV-1

	su := findSpan(s.CountU-1, pu, u, fu)
	sv := findSpan(s.CountV-1, pv, v, fv)
	nu := basisFuns(su, u, pu, fu)
	nv := basisFuns(sv, v, pv, fv)

	var x, y, z, wsum float64
	for k := 0; k <= pu; k++ {
		for l := 0; l <= pv; l++ {
			idx := (su-pu+k)*s.CountV + (sv - pv + l)
			wt := 1.0
			if s.rational() {
				wt = s.Weights[idx]
			}
			b := nu[k] * nv[l] * wt
			p := s.CVs[idx]
			x += b * p.X
			y += b * p.Y
			z += b * p.Z
			wsum += b
		}
	}
	if wsum == 0 {
		return binary.Point3{}
	}
	return binary.Point3{X: x / wsum, Y: y / wsum, Z: z / wsum}
}

// fullKnots restores the two end knots the openNURBS convention omits.
func fullKnots(k []float64) []float64 {
	full := make([]float64, 0, len(k)+2)
	full = append(full, k[0])
	full = append(full, k...)
	return append(full, k[len(k)-1])
}

// findSpan returns the knot span index for t; m is the last control
// point index and p the degree.
func findSpan(m, p int, t float64, knots []float64) int {
	if t >= knots[m+1] {
		return m
	}
	if t <= knots[p] {
		return p
	}
	low, high := p, m+1
	mid := (low + high) / 2
	for t < knots[mid] || t >= knots[mid+1] {
		if t < knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// basisFuns returns the p+1 non-zero basis functions on span i.
func basisFuns(i int, t float64, p int, knots []float64) []float64 {
	n := make([]float64, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	n[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = t - knots[i+1-j]
		right[j] = knots[i+j] - t
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		n[j] = saved
	}
	return n
}
