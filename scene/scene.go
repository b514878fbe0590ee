// Package scene defines what a 3dm writer needs from the scene it writes:
// layers, objects, their attributes, and the geometric kernel that turns
// each object's geometry into class payload bytes.
//
// The writer never inspects geometry itself. It decides the record variant
// from [Geometry.Kind] and asks the matching kernel interface for bytes.
package scene

import (
	"image/color"

	"github.com/google/uuid"
)

// Scene is an indexable list of layers and objects. Index order is write
// order.
type Scene interface {
	LayerCount() int
	Layer(i int) Layer
	ObjectCount() int
	Object(i int) Object
}

// Layer is one layer record. A nil Color is written as black. A zero ID is
// replaced by an identifier derived from the layer index.
type Layer struct {
	Name   string
	Color  color.Color
	Hidden bool
	Locked bool
	ID     uuid.UUID
}

// Object is one scene entity.
type Object interface {
	Geometry() Geometry

	// Attributes returns nil when the object has none; nothing is
	// written for it then.
	Attributes() *Attributes
}

// Attributes is per-object metadata. A nil Color means the object takes
// its color from its layer. A zero ID is replaced by an identifier
// derived from the object index.
type Attributes struct {
	Layer  int
	Color  color.Color
	Name   string
	URL    string
	Hidden bool
	ID     uuid.UUID
}

// Kind is the geometric kind of an object.
type Kind int

const (
	KindUnknown Kind = iota
	KindPoint
	KindCurve
	KindSurface
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindCurve:
		return "curve"
	case KindSurface:
		return "surface"
	case KindMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// Geometry is a tagged union: Kind selects which one of the kernel fields
// is consulted. A Kind whose field is nil is treated as unknown.
type Geometry struct {
	Kind    Kind
	Point   PointGeometry
	Curve   CurveGeometry
	Surface SurfaceGeometry
	Mesh    MeshGeometry
}

// FileContext is passed to kernels so payloads can depend on the target
// archive version.
type FileContext struct {
	FormatVersion   int
	EncoderRevision int
}

// LengthSize returns the chunk length width used by the format version.
func (fc FileContext) LengthSize() int {
	if fc.FormatVersion >= 5 {
		return 8
	}
	return 4
}

// PointGeometry serializes a point.
type PointGeometry interface {
	MarshalPoint(fc FileContext) ([]byte, error)
}

// CurveGeometry serializes a curve as a NURBS curve.
type CurveGeometry interface {
	MarshalNurbsCurve(fc FileContext) ([]byte, error)
}

// SurfaceGeometry serializes a surface either as an untrimmed NURBS
// surface or as a boundary representation, depending on Trims.
type SurfaceGeometry interface {
	MarshalNurbsSurface(fc FileContext) ([]byte, error)
	MarshalBrep(fc FileContext) ([]byte, error)
	Trims() TrimInfo
}

// MeshGeometry serializes a polygon mesh.
type MeshGeometry interface {
	MarshalMesh(fc FileContext) ([]byte, error)
}

// TrimInfo summarizes the trim loops of a surface.
type TrimInfo struct {
	OuterLoops int

	// NaturalOuter reports that the single outer loop is the untrimmed
	// boundary of the surface's domain.
	NaturalOuter bool

	InnerLoops int
}

// Trivial reports whether the surface is effectively untrimmed: no loops
// at all, or only the natural outer boundary.
func (t TrimInfo) Trivial() bool {
	if t.InnerLoops > 0 {
		return false
	}
	return t.OuterLoops == 0 || (t.OuterLoops == 1 && t.NaturalOuter)
}
