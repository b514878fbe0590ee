package object

import (
	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/chunk"
	"github.com/robert-malhotra/go-3dm/scene"
)

// Attribute sources.
const (
	sourceLayer  = 0
	sourceObject = 1
)

// Object modes.
const (
	modeNormal = 0
	modeHidden = 1
)

// AttributesRecord encodes attrs as the OBJECT_RECORD_ATTRIBUTES chunk of
// the index-th object. The layout is version 1.5 of the object attributes
// record.
func AttributesRecord(attrs *scene.Attributes, index int, cfg binary.Config) (*chunk.Chunk, error) {
	b, err := chunk.NewBuilder(chunk.TagObjectRecordAttributes, cfg)
	if err != nil {
		return nil, err
	}
	if err := writeAttributes(b.Writer, attrs, index); err != nil {
		return nil, err
	}
	return b.Chunk(), nil
}

func writeAttributes(w *binary.Writer, attrs *scene.Attributes, index int) error {
	mode := uint8(modeNormal)
	if attrs.Hidden {
		mode = modeHidden
	}
	colorSource := uint8(sourceLayer)
	if attrs.Color != nil {
		colorSource = sourceObject
	}

	steps := []func() error{
		func() error { return w.WriteChunkVersion(1, 5) },
		func() error { return w.WriteUUID(ObjectID(attrs.ID, index)) },
		func() error { return w.WriteInt32(int32(attrs.Layer)) },
		func() error { return w.WriteInt32(-1) }, // material index
		func() error { return w.WriteColor(attrs.Color) },

		// legacy line style
		func() error { return w.WriteInt16(0) },
		func() error { return w.WriteInt16(0) },
		func() error { return w.WriteFloat64(0) },

		func() error { return w.WriteInt32(1) }, // wire density
		func() error { return w.WriteUint8(mode) },
		func() error { return w.WriteUint8(colorSource) },
		func() error { return w.WriteUint8(sourceLayer) }, // linetype
		func() error { return w.WriteUint8(sourceLayer) }, // material
		func() error { return w.WriteString(attrs.Name) },
		func() error { return w.WriteString(attrs.URL) },
		func() error { return w.WriteInt32Array(nil) }, // groups
		func() error { return w.WriteBool(!attrs.Hidden) },
		func() error { return w.WriteUint32(0) },          // display material refs
		func() error { return w.WriteUint8(0) },           // decoration
		func() error { return w.WriteUint8(sourceLayer) }, // plot color
		func() error { return w.WriteColor(nil) },
		func() error { return w.WriteUint8(sourceLayer) }, // plot weight
		func() error { return w.WriteFloat64(0) },
		func() error { return w.WriteInt32(-1) }, // linetype index
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
