package object

import (
	"github.com/google/uuid"

	"github.com/robert-malhotra/go-3dm/scene"
)

// Variant is one of the closed set of object record kinds.
type Variant int

const (
	VariantPoint Variant = iota + 1
	VariantNurbsCurve
	VariantNurbsSurface
	VariantBrep
	VariantMesh
)

// Class identifiers.
var (
	ClassPoint        = uuid.MustParse("C3101A1D-F157-11D3-BFE7-0010830122F0")
	ClassNurbsCurve   = uuid.MustParse("4ED7D4DD-E947-11D3-BFE5-0010830122F0")
	ClassNurbsSurface = uuid.MustParse("4ED7D4DE-E947-11D3-BFE5-0010830122F0")
	ClassBrep         = uuid.MustParse("60B5DBC5-E660-11D3-BFE4-0010830122F0")
	ClassMesh         = uuid.MustParse("4ED7D4E4-E947-11D3-BFE5-0010830122F0")
	ClassLayer        = uuid.MustParse("95809813-E985-11D3-BFE5-0010830122F0")
)

// Object type codes written in OBJECT_RECORD_TYPE.
const (
	TypePoint   = 0x01
	TypeCurve   = 0x04
	TypeSurface = 0x08
	TypeBrep    = 0x10
	TypeMesh    = 0x20
)

var variants = map[Variant]struct {
	name  string
	class uuid.UUID
	typ   int64
}{
	VariantPoint:        {"point", ClassPoint, TypePoint},
	VariantNurbsCurve:   {"nurbs curve", ClassNurbsCurve, TypeCurve},
	VariantNurbsSurface: {"nurbs surface", ClassNurbsSurface, TypeSurface},
	VariantBrep:         {"brep", ClassBrep, TypeBrep},
	VariantMesh:         {"mesh", ClassMesh, TypeMesh},
}

func (v Variant) String() string {
	if info, ok := variants[v]; ok {
		return info.name
	}
	return "unknown"
}

// ClassID returns the class identifier written in the class record.
func (v Variant) ClassID() uuid.UUID {
	return variants[v].class
}

// ObjectType returns the object type code.
func (v Variant) ObjectType() int64 {
	return variants[v].typ
}

// Select picks the record variant for g. Surfaces with anything beyond
// their natural boundary become breps. The second result is false when g
// cannot be mapped.
func Select(g scene.Geometry) (Variant, bool) {
	switch g.Kind {
	case scene.KindPoint:
		return VariantPoint, g.Point != nil
	case scene.KindCurve:
		return VariantNurbsCurve, g.Curve != nil
	case scene.KindSurface:
		if g.Surface == nil {
			return 0, false
		}
		if g.Surface.Trims().Trivial() {
			return VariantNurbsSurface, true
		}
		return VariantBrep, true
	case scene.KindMesh:
		return VariantMesh, g.Mesh != nil
	default:
		return 0, false
	}
}

// marshal asks the kernel for the payload of g as variant v.
func (v Variant) marshal(g scene.Geometry, fc scene.FileContext) ([]byte, error) {
	switch v {
	case VariantPoint:
		return g.Point.MarshalPoint(fc)
	case VariantNurbsCurve:
		return g.Curve.MarshalNurbsCurve(fc)
	case VariantNurbsSurface:
		return g.Surface.MarshalNurbsSurface(fc)
	case VariantBrep:
		return g.Surface.MarshalBrep(fc)
	case VariantMesh:
		return g.Mesh.MarshalMesh(fc)
	}
	return nil, nil
}
