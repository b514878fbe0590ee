package object

import (
	"bytes"
	"fmt"

	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/chunk"
	"github.com/robert-malhotra/go-3dm/scene"
)

// Layer modes.
const (
	layerNormal = 0
	layerHidden = 1
	layerLocked = 2
)

// LayerRecord builds the LAYER_RECORD chunk for the index-th layer.
func LayerRecord(l scene.Layer, index int, fc scene.FileContext) (*chunk.Chunk, error) {
	cfg := binary.Config{LengthSize: fc.LengthSize()}

	payload, err := layerPayload(l, index, cfg)
	if err != nil {
		return nil, fmt.Errorf("layer %d: %w", index, err)
	}
	class, err := ClassRecord(ClassLayer, payload, cfg)
	if err != nil {
		return nil, fmt.Errorf("layer %d: %w", index, err)
	}
	return chunk.Nest(chunk.TagLayerRecord, class, cfg)
}

func layerPayload(l scene.Layer, index int, cfg binary.Config) ([]byte, error) {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf, cfg)

	mode := int32(layerNormal)
	switch {
	case l.Hidden:
		mode = layerHidden
	case l.Locked:
		mode = layerLocked
	}

	if err := w.WriteChunkVersion(1, 5); err != nil {
		return nil, err
	}
	for _, v := range []int32{mode, int32(index), -1, -1, 0} {
		if err := w.WriteInt32(v); err != nil {
			return nil, err
		}
	}
	if err := w.WriteColor(l.Color); err != nil {
		return nil, err
	}
	// legacy line style and thickness
	if err := w.WriteInt16(0); err != nil {
		return nil, err
	}
	if err := w.WriteInt16(0); err != nil {
		return nil, err
	}
	if err := w.WriteFloat64(0); err != nil {
		return nil, err
	}
	if err := w.WriteFloat64(1); err != nil {
		return nil, err
	}
	if err := w.WriteString(l.Name); err != nil {
		return nil, err
	}
	if err := w.WriteBool(!l.Hidden); err != nil {
		return nil, err
	}
	if err := w.WriteInt32(-1); err != nil { // linetype index
		return nil, err
	}
	if err := w.WriteColor(nil); err != nil { // plot color
		return nil, err
	}
	if err := w.WriteFloat64(0); err != nil { // plot weight
		return nil, err
	}
	if err := w.WriteBool(l.Locked); err != nil {
		return nil, err
	}
	if err := w.WriteUUID(LayerID(l.ID, index)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
