package model

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robert-malhotra/go-3dm/scene"
)

const sampleYAML = `
units: mm
layers:
  - name: Default
    color: "#102030"
  - name: Hidden
    hidden: true
objects:
  - name: origin
    point: [0, 0, 0]
  - layer: 1
    color: "#ff000080"
    curve:
      order: 2
      cvs: [[0, 0, 0], [1, 1, 0]]
  - surface:
      order_u: 2
      order_v: 2
      count_u: 2
      count_v: 2
      cvs: [[0, 0, 0], [0, 1, 0], [1, 0, 0], [1, 1, 0]]
  - mesh:
      vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
      faces: [[0, 1, 2], [0, 1, 2, 3]]
`

func TestDecodeYAML(t *testing.T) {
	desc, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	doc, err := desc.Document()
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}

	if desc.Units != "mm" {
		t.Errorf("units: got %q", desc.Units)
	}
	if doc.LayerCount() != 2 || doc.ObjectCount() != 4 {
		t.Fatalf("got %d layers, %d objects", doc.LayerCount(), doc.ObjectCount())
	}
	if got := doc.Layer(0).Color; got != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}) {
		t.Errorf("layer color: got %v", got)
	}
	if doc.Layer(0).Hidden || !doc.Layer(1).Hidden {
		t.Error("hidden flags not carried")
	}

	kinds := []scene.Kind{scene.KindPoint, scene.KindCurve, scene.KindSurface, scene.KindMesh}
	for i, want := range kinds {
		if got := doc.Object(i).Geometry().Kind; got != want {
			t.Errorf("object %d: got kind %v, want %v", i, got, want)
		}
	}

	attrs := doc.Object(1).Attributes()
	if attrs.Layer != 1 {
		t.Errorf("object 1 layer: got %d", attrs.Layer)
	}
	if attrs.Color != (color.NRGBA{R: 255, A: 0x80}) {
		t.Errorf("object 1 color: got %v", attrs.Color)
	}
	if doc.Object(0).Attributes().Color != nil {
		t.Error("object without color should inherit from its layer")
	}
}

func TestDecodeJSON(t *testing.T) {
	const src = `{
		"layers": [{"name": "Default"}],
		"objects": [{"name": "p", "point": [1, 2, 3]}]
	}`
	desc, err := Decode(strings.NewReader(src), FormatJSON)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	doc, err := desc.Document()
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	if doc.ObjectCount() != 1 || doc.Object(0).Attributes().Name != "p" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := Decode(strings.NewReader("layerz: []\n"), FormatYAML); err == nil {
		t.Error("yaml: expected error for unknown field")
	}
	if _, err := Decode(strings.NewReader(`{"layerz": []}`), FormatJSON); err == nil {
		t.Error("json: expected error for unknown field")
	}
}

func TestDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no geometry", "objects:\n  - name: x\n", ErrNoGeometry},
		{"two geometries", "objects:\n  - point: [0, 0]\n    mesh: {vertices: [], faces: []}\n", ErrManyGeometry},
		{"bad layer", "layers: [{name: a}]\nobjects:\n  - layer: 3\n    point: [0, 0, 0]\n", ErrBadLayer},
		{"bad point", "objects:\n  - point: [1]\n", ErrBadPoint},
		{"bad face", "objects:\n  - mesh: {vertices: [[0, 0, 0]], faces: [[0, 0]]}\n", ErrBadFace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Decode(strings.NewReader(tt.src), FormatYAML)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if _, err := desc.Document(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#000000", color.NRGBA{A: 255}, true},
		{"ff8000", color.NRGBA{R: 255, G: 128, A: 255}, true},
		{"#01020304", color.NRGBA{R: 1, G: 2, B: 3, A: 4}, true},
		{"#12345", color.NRGBA{}, false},
		{"red", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if tt.ok != (err == nil) {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if tt.ok && c.NRGBA != tt.want {
				t.Errorf("got %v, want %v", c.NRGBA, tt.want)
			}
			if !tt.ok && !errors.Is(err, ErrBadColor) {
				t.Errorf("expected ErrBadColor, got %v", err)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	desc, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := desc.Encode(&buf, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			again, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if len(again.Objects) != len(desc.Objects) || len(again.Layers) != len(desc.Layers) {
				t.Fatalf("got %d layers, %d objects", len(again.Layers), len(again.Objects))
			}
			if *again.Layers[0].Color != *desc.Layers[0].Color {
				t.Errorf("layer color changed: %v", again.Layers[0].Color)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "scene.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, desc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if doc.ObjectCount() != 4 || desc.Units != "mm" {
		t.Errorf("unexpected result: %d objects, units %q", doc.ObjectCount(), desc.Units)
	}

	if _, _, err := LoadFile(filepath.Join(dir, "scene.txt")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
