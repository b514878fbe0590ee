package model

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/geom"
	"github.com/robert-malhotra/go-3dm/scene"
)

// Format is a description encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Description is the serialized form of a document.
type Description struct {
	Units   string              `yaml:"units,omitempty" json:"units,omitempty"`
	Comment string              `yaml:"comment,omitempty" json:"comment,omitempty"`
	Layers  []LayerDescription  `yaml:"layers" json:"layers"`
	Objects []ObjectDescription `yaml:"objects" json:"objects"`
}

type LayerDescription struct {
	Name   string    `yaml:"name" json:"name"`
	Color  *Color    `yaml:"color,omitempty" json:"color,omitempty"`
	Hidden bool      `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Locked bool      `yaml:"locked,omitempty" json:"locked,omitempty"`
	ID     uuid.UUID `yaml:"id,omitempty" json:"id,omitempty"`
}

// ObjectDescription holds exactly one of Point, Curve, Surface or Mesh.
type ObjectDescription struct {
	Name   string    `yaml:"name,omitempty" json:"name,omitempty"`
	URL    string    `yaml:"url,omitempty" json:"url,omitempty"`
	Layer  int       `yaml:"layer,omitempty" json:"layer,omitempty"`
	Color  *Color    `yaml:"color,omitempty" json:"color,omitempty"`
	Hidden bool      `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	ID     uuid.UUID `yaml:"id,omitempty" json:"id,omitempty"`

	Point   Vec                 `yaml:"point,omitempty" json:"point,omitempty"`
	Curve   *CurveDescription   `yaml:"curve,omitempty" json:"curve,omitempty"`
	Surface *SurfaceDescription `yaml:"surface,omitempty" json:"surface,omitempty"`
	Mesh    *MeshDescription    `yaml:"mesh,omitempty" json:"mesh,omitempty"`
}

// Vec is a point written as a list of two or three coordinates.
type Vec []float64

type CurveDescription struct {
	Dim     int       `yaml:"dim,omitempty" json:"dim,omitempty"`
	Order   int       `yaml:"order" json:"order"`
	CVs     []Vec     `yaml:"cvs" json:"cvs"`
	Weights []float64 `yaml:"weights,omitempty" json:"weights,omitempty"`
	Knots   []float64 `yaml:"knots,omitempty" json:"knots,omitempty"`
}

type SurfaceDescription struct {
	OrderU  int               `yaml:"order_u" json:"order_u"`
	OrderV  int               `yaml:"order_v" json:"order_v"`
	CountU  int               `yaml:"count_u" json:"count_u"`
	CountV  int               `yaml:"count_v" json:"count_v"`
	CVs     []Vec             `yaml:"cvs" json:"cvs"`
	Weights []float64         `yaml:"weights,omitempty" json:"weights,omitempty"`
	KnotsU  []float64         `yaml:"knots_u,omitempty" json:"knots_u,omitempty"`
	KnotsV  []float64         `yaml:"knots_v,omitempty" json:"knots_v,omitempty"`
	Loops   []LoopDescription `yaml:"loops,omitempty" json:"loops,omitempty"`
}

type LoopDescription struct {
	Outer  bool  `yaml:"outer,omitempty" json:"outer,omitempty"`
	Points []Vec `yaml:"points" json:"points"`
}

type MeshDescription struct {
	Vertices  []Vec     `yaml:"vertices" json:"vertices"`
	Faces     [][]int32 `yaml:"faces" json:"faces"`
	Normals   []Vec     `yaml:"normals,omitempty" json:"normals,omitempty"`
	TexCoords []Vec     `yaml:"texcoords,omitempty" json:"texcoords,omitempty"`
	Colors    []Color   `yaml:"colors,omitempty" json:"colors,omitempty"`
}

// Decode parses a description.
func Decode(r io.Reader, format Format) (*Description, error) {
	var d Description
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	return &d, nil
}

// Encode writes d in the given format.
func (d *Description) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// LoadFile reads and builds the description at path, choosing the format
// from the extension.
func LoadFile(path string) (*Document, *Description, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	desc, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	doc, err := desc.Document()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, desc, nil
}

// Document builds the in-memory scene. Objects must reference existing
// layers when any layers are described.
func (d *Description) Document() (*Document, error) {
	doc := New()
	for _, l := range d.Layers {
		doc.AddLayer(scene.Layer{
			Name:   l.Name,
			Color:  colorOf(l.Color),
			Hidden: l.Hidden,
			Locked: l.Locked,
			ID:     l.ID,
		})
	}
	for i, o := range d.Objects {
		if len(d.Layers) > 0 && (o.Layer < 0 || o.Layer >= len(d.Layers)) {
			return nil, fmt.Errorf("object %d: %w: %d", i, ErrBadLayer, o.Layer)
		}
		g, err := o.geometry()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		doc.Add(NewObject(g, &scene.Attributes{
			Layer:  o.Layer,
			Color:  colorOf(o.Color),
			Name:   o.Name,
			URL:    o.URL,
			Hidden: o.Hidden,
			ID:     o.ID,
		}))
	}
	return doc, nil
}

func (o ObjectDescription) geometry() (scene.Geometry, error) {
	n := 0
	for _, set := range []bool{o.Point != nil, o.Curve != nil, o.Surface != nil, o.Mesh != nil} {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return scene.Geometry{}, ErrNoGeometry
	case n > 1:
		return scene.Geometry{}, ErrManyGeometry
	}

	switch {
	case o.Point != nil:
		p, err := o.Point.point3()
		if err != nil {
			return scene.Geometry{}, err
		}
		return geom.Point{Point3: p}.Geometry(), nil
	case o.Curve != nil:
		c, err := o.Curve.curve()
		if err != nil {
			return scene.Geometry{}, err
		}
		return c.Geometry(), nil
	case o.Surface != nil:
		s, err := o.Surface.surface()
		if err != nil {
			return scene.Geometry{}, err
		}
		return s.Geometry(), nil
	default:
		m, err := o.Mesh.mesh()
		if err != nil {
			return scene.Geometry{}, err
		}
		return m.Geometry(), nil
	}
}

func (v Vec) point3() (binary.Point3, error) {
	switch len(v) {
	case 2:
		return binary.Point3{X: v[0], Y: v[1]}, nil
	case 3:
		return binary.Point3{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return binary.Point3{}, fmt.Errorf("%w: got %d", ErrBadPoint, len(v))
	}
}

func (v Vec) point2() (binary.Point2, error) {
	if len(v) != 2 {
		return binary.Point2{}, fmt.Errorf("%w: parameter points need 2, got %d", ErrBadPoint, len(v))
	}
	return binary.Point2{X: v[0], Y: v[1]}, nil
}

func points3(vs []Vec) ([]binary.Point3, error) {
	if vs == nil {
		return nil, nil
	}
	out := make([]binary.Point3, len(vs))
	for i, v := range vs {
		p, err := v.point3()
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func (c CurveDescription) curve() (geom.NurbsCurve, error) {
	cvs, err := points3(c.CVs)
	if err != nil {
		return geom.NurbsCurve{}, err
	}
	return geom.NurbsCurve{
		Dim:     c.Dim,
		Order:   c.Order,
		CVs:     cvs,
		Weights: c.Weights,
		Knots:   c.Knots,
	}, nil
}

func (s SurfaceDescription) surface() (geom.NurbsSurface, error) {
	cvs, err := points3(s.CVs)
	if err != nil {
		return geom.NurbsSurface{}, err
	}
	out := geom.NurbsSurface{
		OrderU:  s.OrderU,
		OrderV:  s.OrderV,
		CountU:  s.CountU,
		CountV:  s.CountV,
		CVs:     cvs,
		Weights: s.Weights,
		KnotsU:  s.KnotsU,
		KnotsV:  s.KnotsV,
	}
	for i, l := range s.Loops {
		loop := geom.Loop{Outer: l.Outer, Points: make([]binary.Point2, len(l.Points))}
		for j, v := range l.Points {
			p, err := v.point2()
			if err != nil {
				return geom.NurbsSurface{}, fmt.Errorf("loop %d point %d: %w", i, j, err)
			}
			loop.Points[j] = p
		}
		out.Loops = append(out.Loops, loop)
	}
	return out, nil
}

func (m MeshDescription) mesh() (geom.Mesh, error) {
	out := geom.Mesh{}
	var err error
	if out.Vertices, err = points3(m.Vertices); err != nil {
		return geom.Mesh{}, fmt.Errorf("vertices: %w", err)
	}
	if out.Normals, err = points3(m.Normals); err != nil {
		return geom.Mesh{}, fmt.Errorf("normals: %w", err)
	}
	for i, f := range m.Faces {
		switch len(f) {
		case 3:
			out.Faces = append(out.Faces, geom.Triangle(f[0], f[1], f[2]))
		case 4:
			out.Faces = append(out.Faces, geom.Face{f[0], f[1], f[2], f[3]})
		default:
			return geom.Mesh{}, fmt.Errorf("face %d: %w", i, ErrBadFace)
		}
	}
	for i, v := range m.TexCoords {
		p, err := v.point2()
		if err != nil {
			return geom.Mesh{}, fmt.Errorf("texcoord %d: %w", i, err)
		}
		out.TexCoords = append(out.TexCoords, p)
	}
	for _, c := range m.Colors {
		out.Colors = append(out.Colors, c.NRGBA)
	}
	return out, nil
}
