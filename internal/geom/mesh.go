package geom

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/compress"
	"github.com/robert-malhotra/go-3dm/scene"
)

// Face is a mesh face. Triangles repeat their third index in the fourth
// slot.
type Face [4]int32

// Triangle returns the face with vertex indexes a, b and c.
func Triangle(a, b, c int32) Face {
	return Face{a, b, c, c}
}

// Mesh is a polygon mesh. Normals, TexCoords and Colors are optional and,
// when present, have one entry per vertex.
type Mesh struct {
	Vertices  []binary.Point3
	Faces     []Face
	Normals   []binary.Point3
	TexCoords []binary.Point2
	Colors    []color.Color
}

func (m Mesh) validate() error {
	for _, a := range []struct {
		name string
		n    int
	}{
		{"normals", len(m.Normals)},
		{"texture coordinates", len(m.TexCoords)},
		{"colors", len(m.Colors)},
	} {
		if a.n != 0 && a.n != len(m.Vertices) {
			return fmt.Errorf("%w: %d %s for %d vertices", ErrVertexCount, a.n, a.name, len(m.Vertices))
		}
	}

	n := int32(len(m.Vertices))
	for i, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: face %d index %d", ErrFaceIndex, i, v)
			}
		}
	}
	return nil
}

// MarshalMesh writes the mesh as chunk version 3.0. Bulk arrays go through
// the compressed buffer strategy. A mesh without vertices or faces has no
// payload.
func (m Mesh) MarshalMesh(fc scene.FileContext) ([]byte, error) {
	if len(m.Vertices) == 0 || len(m.Faces) == 0 {
		return nil, nil
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	cfg := config(fc)

	return encode(fc, func(w *binary.Writer) error {
		if err := w.WriteChunkVersion(3, 0); err != nil {
			return err
		}
		if err := writeInts(w, len(m.Vertices), len(m.Faces)); err != nil {
			return err
		}

		// packed texture domain, surface domain and surface scale
		unit := binary.Interval{T0: 0, T1: 1}
		for _, iv := range []binary.Interval{unit, unit, unit, unit} {
			if err := w.WriteInterval(iv); err != nil {
				return err
			}
		}
		if err := w.WriteFloat64(0); err != nil {
			return err
		}
		if err := w.WriteFloat64(0); err != nil {
			return err
		}

		if err := w.WriteBoundingBox(binary.BoundsOf(m.Vertices)); err != nil {
			return err
		}
		// closed, manifold and oriented flags are left unset
		if err := writeInts(w, -1, -1, -1); err != nil {
			return err
		}

		buffers := []func(w *binary.Writer) error{
			func(w *binary.Writer) error {
				for _, f := range m.Faces {
					if err := writeInts(w, int(f[0]), int(f[1]), int(f[2]), int(f[3])); err != nil {
						return err
					}
				}
				return nil
			},
			func(w *binary.Writer) error { return writeEach(w, m.Vertices, (*binary.Writer).WritePoint3f) },
			func(w *binary.Writer) error { return writeEach(w, m.Normals, (*binary.Writer).WritePoint3f) },
			func(w *binary.Writer) error { return writeEach(w, m.TexCoords, (*binary.Writer).WritePoint2f) },
			func(w *binary.Writer) error { return writeEach(w, m.Colors, (*binary.Writer).WriteColor) },
		}
		for _, fill := range buffers {
			var buf bytes.Buffer
			if err := fill(binary.NewWriter(&buf, cfg)); err != nil {
				return err
			}
			if err := compress.WriteBuffer(w, buf.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Geometry returns m as scene geometry.
func (m Mesh) Geometry() scene.Geometry {
	return scene.Geometry{Kind: scene.KindMesh, Mesh: m}
}

func writeEach[T any](w *binary.Writer, items []T, write func(*binary.Writer, T) error) error {
	for _, item := range items {
		if err := write(w, item); err != nil {
			return err
		}
	}
	return nil
}
