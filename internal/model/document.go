package model

import (
	"github.com/robert-malhotra/go-3dm/scene"
)

// Object pairs geometry with its attributes.
type Object struct {
	geometry scene.Geometry
	attrs    *scene.Attributes
}

// NewObject returns an object with the given geometry and attributes.
// Attributes may be nil.
func NewObject(g scene.Geometry, attrs *scene.Attributes) *Object {
	return &Object{geometry: g, attrs: attrs}
}

func (o *Object) Geometry() scene.Geometry { return o.geometry }
func (o *Object) Attributes() *scene.Attributes { return o.attrs }

// Document is a scene held in memory.
type Document struct {
	layers  []scene.Layer
	objects []scene.Object
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// AddLayer appends a layer and returns its index.
func (d *Document) AddLayer(l scene.Layer) int {
	d.layers = append(d.layers, l)
	return len(d.layers) - 1
}

// Add appends an object and returns its index.
func (d *Document) Add(o scene.Object) int {
	d.objects = append(d.objects, o)
	return len(d.objects) - 1
}

// AddGeometry appends geometry on the given layer.
func (d *Document) AddGeometry(g scene.Geometry, layer int) int {
	return d.Add(NewObject(g, &scene.Attributes{Layer: layer}))
}

func (d *Document) LayerCount() int { return len(d.layers) }
func (d *Document) Layer(i int) scene.Layer { return d.layers[i] }
func (d *Document) ObjectCount() int { return len(d.objects) }
func (d *Document) Object(i int) scene.Object { return d.objects[i] }
