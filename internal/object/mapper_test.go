package object

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/google/uuid"

	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/chunk"
	"github.com/robert-malhotra/go-3dm/scene"
)

var fc4 = scene.FileContext{FormatVersion: 4, EncoderRevision: 201004095}

type fakeKernel struct {
	payload []byte
	err     error
	trims   scene.TrimInfo
	called  string
}

func (k *fakeKernel) result(name string) ([]byte, error) {
	k.called = name
	return k.payload, k.err
}

func (k *fakeKernel) MarshalPoint(scene.FileContext) ([]byte, error) { return k.result("point") }
func (k *fakeKernel) MarshalNurbsCurve(scene.FileContext) ([]byte, error) {
	return k.result("curve")
}
func (k *fakeKernel) MarshalNurbsSurface(scene.FileContext) ([]byte, error) {
	return k.result("surface")
}
func (k *fakeKernel) MarshalBrep(scene.FileContext) ([]byte, error) { return k.result("brep") }
func (k *fakeKernel) MarshalMesh(scene.FileContext) ([]byte, error) { return k.result("mesh") }
func (k *fakeKernel) Trims() scene.TrimInfo { return k.trims }

type fakeObject struct {
	geometry scene.Geometry
	attrs    *scene.Attributes
}

func (o fakeObject) Geometry() scene.Geometry { return o.geometry }
func (o fakeObject) Attributes() *scene.Attributes { return o.attrs }

func geometry(kind scene.Kind, k *fakeKernel) scene.Geometry {
	g := scene.Geometry{Kind: kind}
	switch kind {
	case scene.KindPoint:
		g.Point = k
	case scene.KindCurve:
		g.Curve = k
	case scene.KindSurface:
		g.Surface = k
	case scene.KindMesh:
		g.Mesh = k
	}
	return g
}

func scanChunk(t *testing.T, c *chunk.Chunk, cfg binary.Config) ([]byte, []chunk.Header) {
	t.Helper()
	var buf bytes.Buffer
	if err := chunk.Write(binary.NewWriter(&buf, cfg), c); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	headers, err := chunk.Scan(buf.Bytes(), cfg)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return buf.Bytes(), headers
}

func uuidBytes(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.NewWriter(&buf, binary.DefaultConfig()).WriteUUID(id); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		geometry scene.Geometry
		expected Variant
		ok       bool
	}{
		{"point", geometry(scene.KindPoint, &fakeKernel{}), VariantPoint, true},
		{"curve", geometry(scene.KindCurve, &fakeKernel{}), VariantNurbsCurve, true},
		{"untrimmed surface", geometry(scene.KindSurface, &fakeKernel{}), VariantNurbsSurface, true},
		{"natural outer trim", geometry(scene.KindSurface, &fakeKernel{
			trims: scene.TrimInfo{OuterLoops: 1, NaturalOuter: true},
		}), VariantNurbsSurface, true},
		{"inner trim", geometry(scene.KindSurface, &fakeKernel{
			trims: scene.TrimInfo{OuterLoops: 1, NaturalOuter: true, InnerLoops: 1},
		}), VariantBrep, true},
		{"custom outer trim", geometry(scene.KindSurface, &fakeKernel{
			trims: scene.TrimInfo{OuterLoops: 1},
		}), VariantBrep, true},
		{"mesh", geometry(scene.KindMesh, &fakeKernel{}), VariantMesh, true},
		{"unknown kind", scene.Geometry{}, 0, false},
		{"kind without kernel", scene.Geometry{Kind: scene.KindCurve}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Select(tt.geometry)
			if ok != tt.ok || (ok && v != tt.expected) {
				t.Errorf("Select = %s, %v; want %s, %v", v, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestMapPointRecord(t *testing.T) {
	payload := []byte{0x10, 1, 2, 3, 4}
	obj := fakeObject{geometry: geometry(scene.KindPoint, &fakeKernel{payload: payload})}

	c, err := Map(obj, 0, fc4)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if c == nil {
		t.Fatal("Map returned no record")
	}

	data, headers := scanChunk(t, c, binary.DefaultConfig())
	expected := []chunk.Tag{
		chunk.TagObjectRecord,
		chunk.TagObjectRecordType,
		chunk.TagClass,
		chunk.TagClassUUID,
		chunk.TagClassData,
		chunk.TagClassEnd,
		chunk.TagObjectRecordEnd,
	}
	if len(headers) != len(expected) {
		t.Fatalf("got %d chunks, want %d: %+v", len(headers), len(expected), headers)
	}
	for i, tag := range expected {
		if headers[i].Tag != tag {
			t.Errorf("chunk %d: got %s, want %s", i, headers[i].Tag, tag)
		}
	}
	if headers[1].Value != TypePoint {
		t.Errorf("object type = %d, want %d", headers[1].Value, TypePoint)
	}

	uuidStart := headers[3].Offset + 8
	if !bytes.Equal(data[uuidStart:uuidStart+16], uuidBytes(t, ClassPoint)) {
		t.Error("class uuid is not the point class")
	}
	dataStart := headers[4].Offset + 8
	if !bytes.Equal(data[dataStart:dataStart+int64(len(payload))], payload) {
		t.Error("class data is not the kernel payload")
	}
}

func TestMapSurfaceClassification(t *testing.T) {
	tests := []struct {
		name   string
		trims  scene.TrimInfo
		called string
		typ    uint64
		class  uuid.UUID
	}{
		{"default outer only", scene.TrimInfo{OuterLoops: 1, NaturalOuter: true}, "surface", TypeSurface, ClassNurbsSurface},
		{"inner loop", scene.TrimInfo{OuterLoops: 1, NaturalOuter: true, InnerLoops: 1}, "brep", TypeBrep, ClassBrep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := &fakeKernel{payload: []byte{1}, trims: tt.trims}
			c, err := Map(fakeObject{geometry: geometry(scene.KindSurface, k)}, 0, fc4)
			if err != nil {
				t.Fatalf("Map failed: %v", err)
			}
			if k.called != tt.called {
				t.Errorf("kernel called %q, want %q", k.called, tt.called)
			}
			data, headers := scanChunk(t, c, binary.DefaultConfig())
			if headers[1].Value != tt.typ {
				t.Errorf("object type = 0x%x, want 0x%x", headers[1].Value, tt.typ)
			}
			start := headers[3].Offset + 8
			if !bytes.Equal(data[start:start+16], uuidBytes(t, tt.class)) {
				t.Errorf("wrong class id")
			}
		})
	}
}

func TestMapDropsEmptyPayload(t *testing.T) {
	for _, kind := range []scene.Kind{scene.KindPoint, scene.KindCurve, scene.KindSurface, scene.KindMesh} {
		obj := fakeObject{
			geometry: geometry(kind, &fakeKernel{payload: []byte{}}),
			attrs:    &scene.Attributes{Name: "ignored"},
		}
		c, err := Map(obj, 3, fc4)
		if err != nil {
			t.Errorf("%s: unexpected error %v", kind, err)
		}
		if c != nil {
			t.Errorf("%s: empty payload should drop the object", kind)
		}
	}
}

func TestMapUnmappable(t *testing.T) {
	for _, obj := range []scene.Object{nil, fakeObject{}} {
		c, err := Map(obj, 0, fc4)
		if c != nil || err != nil {
			t.Errorf("Map(%v) = %v, %v; want nil, nil", obj, c, err)
		}
	}
}

func TestMapKernelError(t *testing.T) {
	boom := errors.New("kernel failure")
	obj := fakeObject{geometry: geometry(scene.KindMesh, &fakeKernel{err: boom})}
	if _, err := Map(obj, 7, fc4); !errors.Is(err, boom) {
		t.Errorf("expected kernel error, got %v", err)
	}
}

func TestMapAttributesSibling(t *testing.T) {
	payload := []byte{0x10, 9, 9, 9}
	attrs := &scene.Attributes{Layer: 2, Color: color.NRGBA{R: 255, A: 255}, Name: "p"}
	obj := fakeObject{
		geometry: geometry(scene.KindPoint, &fakeKernel{payload: payload}),
		attrs:    attrs,
	}

	c, err := Map(obj, 0, fc4)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	data, headers := scanChunk(t, c, binary.DefaultConfig())

	var attrHeader *chunk.Header
	for i := range headers {
		if headers[i].Tag == chunk.TagObjectRecordAttributes {
			attrHeader = &headers[i]
		}
	}
	if attrHeader == nil {
		t.Fatal("no attributes chunk")
	}
	if attrHeader.Depth != 1 {
		t.Errorf("attributes depth = %d, want 1 (sibling of the class record)", attrHeader.Depth)
	}
	if headers[len(headers)-1].Tag != chunk.TagObjectRecordEnd {
		t.Error("record does not end with OBJECT_RECORD_END")
	}

	// class data still holds exactly the payload
	for _, h := range headers {
		if h.Tag == chunk.TagClassData && h.Content != int64(len(payload)) {
			t.Errorf("class data has %d bytes, want %d", h.Content, len(payload))
		}
	}

	start := attrHeader.Offset + 8
	if data[start] != 0x15 {
		t.Errorf("attributes version byte 0x%02x, want 0x15", data[start])
	}
	id := data[start+1 : start+17]
	if !bytes.Equal(id, uuidBytes(t, ObjectID(uuid.Nil, 0))) {
		t.Error("attributes do not carry the derived object id")
	}
}

func TestMapDeterministic(t *testing.T) {
	obj := fakeObject{
		geometry: geometry(scene.KindCurve, &fakeKernel{payload: []byte{1, 2}}),
		attrs:    &scene.Attributes{},
	}
	a, err := Map(obj, 4, fc4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Map(obj, 4, fc4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Content, b.Content) {
		t.Error("same object and index produced different records")
	}
	c, err := Map(obj, 5, fc4)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a.Content, c.Content) {
		t.Error("different indexes should produce different object ids")
	}
}

func TestMapVersion5(t *testing.T) {
	fc := scene.FileContext{FormatVersion: 5, EncoderRevision: 201004095}
	obj := fakeObject{geometry: geometry(scene.KindPoint, &fakeKernel{payload: []byte{1}})}

	c, err := Map(obj, 0, fc)
	if err != nil {
		t.Fatal(err)
	}
	_, headers := scanChunk(t, c, binary.Config{LengthSize: 8})
	if headers[1].Offset != 12 {
		t.Errorf("first child at %d, want 12 with 8-byte lengths", headers[1].Offset)
	}
}

func TestIDs(t *testing.T) {
	explicit := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	if ObjectID(explicit, 1) != explicit || LayerID(explicit, 1) != explicit {
		t.Error("explicit ids must be kept")
	}
	if ObjectID(uuid.Nil, 1) == LayerID(uuid.Nil, 1) {
		t.Error("object and layer ids share a namespace")
	}
	if ObjectID(uuid.Nil, 1) != ObjectID(uuid.Nil, 1) {
		t.Error("derived ids are not stable")
	}
}
