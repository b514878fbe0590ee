package geom

import (
	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/chunk"
	"github.com/robert-malhotra/go-3dm/internal/object"
	"github.com/robert-malhotra/go-3dm/scene"
)

// Loop types.
const (
	loopOuter = 1
	loopInner = 2
)

const trimBoundary = 1

// topology is the single face brep built from a trimmed surface. Every
// loop segment yields one vertex, one edge and one trim, all sharing the
// same index.
type topology struct {
	vertices []binary.Point3
	edges    [][2]int // vertex indexes
	curves2d []NurbsCurve
	curves3d []NurbsCurve
	loops    []brepLoop
}

type brepLoop struct {
	typ   int
	trims []int32
}

func (s NurbsSurface) topology() topology {
	loops := s.Loops
	if s.Trims().OuterLoops == 0 {
		u, v := s.Domain()
		natural := Loop{Outer: true, Points: []binary.Point2{
			{X: u.T0, Y: v.T0}, {X: u.T1, Y: v.T0}, {X: u.T1, Y: v.T1}, {X: u.T0, Y: v.T1},
		}}
		loops = append([]Loop{natural}, loops...)
	}

	var t topology
	for _, l := range loops {
		first := len(t.vertices)
		m := len(l.Points)
		bl := brepLoop{typ: loopInner}
		if l.Outer {
			bl.typ = loopOuter
		}
		for _, uv := range l.Points {
			t.vertices = append(t.vertices, s.PointAt(uv.X, uv.Y))
		}
		for k := 0; k < m; k++ {
			a, b := l.Points[k], l.Points[(k+1)%m]
			va, vb := first+k, first+(k+1)%m
			t.edges = append(t.edges, [2]int{va, vb})
			t.curves2d = append(t.curves2d, NurbsCurve{
				Dim:   2,
				Order: 2,
				CVs:   []binary.Point3{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}},
			})
			t.curves3d = append(t.curves3d, NurbsCurve{
				Order: 2,
				CVs:   []binary.Point3{t.vertices[va], t.vertices[vb]},
			})
			bl.trims = append(bl.trims, int32(len(t.edges)-1))
		}
		t.loops = append(t.loops, bl)
	}
	return t
}

// MarshalBrep writes the trimmed surface as a single face boundary
// representation, chunk version 3.0. A surface with no inner loops and no
// outer loop gets its natural boundary as the outer loop.
func (s NurbsSurface) MarshalBrep(fc scene.FileContext) ([]byte, error) {
	if len(s.CVs) == 0 {
		return nil, nil
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	t := s.topology()

	surface, err := s.MarshalNurbsSurface(fc)
	if err != nil {
		return nil, err
	}

	return encode(fc, func(w *binary.Writer) error {
		if err := w.WriteChunkVersion(3, 0); err != nil {
			return err
		}
		if err := writeCurveArray(w, fc, t.curves2d); err != nil {
			return err
		}
		if err := writeCurveArray(w, fc, t.curves3d); err != nil {
			return err
		}
		if err := anonymous(w, func(b *chunk.Builder) error {
			if err := b.WriteChunkVersion(1, 0); err != nil {
				return err
			}
			if err := b.WriteInt32(1); err != nil {
				return err
			}
			rec, err := object.ClassRecord(object.ClassNurbsSurface, surface, b.Config())
			if err != nil {
				return err
			}
			return b.WriteChunk(rec)
		}); err != nil {
			return err
		}
		if err := t.writeVertices(w); err != nil {
			return err
		}
		if err := t.writeEdges(w); err != nil {
			return err
		}
		if err := t.writeTrims(w); err != nil {
			return err
		}
		if err := t.writeLoops(w); err != nil {
			return err
		}
		if err := t.writeFaces(w); err != nil {
			return err
		}
		return w.WriteBoundingBox(binary.BoundsOf(s.CVs))
	})
}

// anonymous writes the output of fn as one anonymous chunk.
func anonymous(w *binary.Writer, fn func(b *chunk.Builder) error) error {
	b, err := chunk.NewBuilder(chunk.TagAnonymous, w.Config())
	if err != nil {
		return err
	}
	if err := fn(b); err != nil {
		return err
	}
	return chunk.Write(w, b.Chunk())
}

// list writes a versioned, counted list of n elements in an anonymous
// chunk.
func list(w *binary.Writer, n int, fn func(b *chunk.Builder, i int) error) error {
	return anonymous(w, func(b *chunk.Builder) error {
		if err := b.WriteChunkVersion(1, 0); err != nil {
			return err
		}
		if err := b.WriteInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := fn(b, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCurveArray(w *binary.Writer, fc scene.FileContext, curves []NurbsCurve) error {
	return list(w, len(curves), func(b *chunk.Builder, i int) error {
		payload, err := curves[i].MarshalNurbsCurve(fc)
		if err != nil {
			return err
		}
		rec, err := object.ClassRecord(object.ClassNurbsCurve, payload, b.Config())
		if err != nil {
			return err
		}
		return b.WriteChunk(rec)
	})
}

func (t topology) writeVertices(w *binary.Writer) error {
	return list(w, len(t.vertices), func(b *chunk.Builder, i int) error {
		if err := b.WriteInt32(int32(i)); err != nil {
			return err
		}
		if err := b.WritePoint3(t.vertices[i]); err != nil {
			return err
		}
		var edges []int32
		for e, ends := range t.edges {
			if ends[0] == i || ends[1] == i {
				edges = append(edges, int32(e))
			}
		}
		if err := b.WriteInt32Array(edges); err != nil {
			return err
		}
		return b.WriteFloat64(0) // tolerance
	})
}

func (t topology) writeEdges(w *binary.Writer) error {
	return list(w, len(t.edges), func(b *chunk.Builder, i int) error {
		if err := writeInts(b.Writer, i, i, t.edges[i][0], t.edges[i][1]); err != nil {
			return err
		}
		if err := b.WriteInt32Array([]int32{int32(i)}); err != nil {
			return err
		}
		if err := b.WriteFloat64(0); err != nil {
			return err
		}
		return b.WriteInterval(binary.Interval{T0: 0, T1: 1})
	})
}

func (t topology) writeTrims(w *binary.Writer) error {
	loopOf := make([]int, len(t.edges))
	for li, l := range t.loops {
		for _, tr := range l.trims {
			loopOf[tr] = li
		}
	}
	return list(w, len(t.edges), func(b *chunk.Builder, i int) error {
		ends := t.edges[i]
		if err := writeInts(b.Writer, i, i, i, ends[0], ends[1], 0, trimBoundary, loopOf[i]); err != nil {
			return err
		}
		return b.WriteInterval(binary.Interval{T0: 0, T1: 1})
	})
}

func (t topology) writeLoops(w *binary.Writer) error {
	return list(w, len(t.loops), func(b *chunk.Builder, i int) error {
		if err := writeInts(b.Writer, i, t.loops[i].typ, 0); err != nil {
			return err
		}
		return b.WriteInt32Array(t.loops[i].trims)
	})
}

func (t topology) writeFaces(w *binary.Writer) error {
	return list(w, 1, func(b *chunk.Builder, _ int) error {
		if err := writeInts(b.Writer, 0, 0); err != nil {
			return err
		}
		loops := make([]int32, len(t.loops))
		for i := range loops {
			loops[i] = int32(i)
		}
		if err := b.WriteInt32Array(loops); err != nil {
			return err
		}
		return b.WriteBool(false) // reversed
	})
}
