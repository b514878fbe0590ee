package geom

import (
	"bytes"
	"errors"

	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/scene"
)

// Errors
var (
	ErrInvalidOrder = errors.New("invalid order")
	ErrKnotCount    = errors.New("knot count does not match order and control points")
	ErrWeightCount  = errors.New("weight count does not match control points")
	ErrCVCount      = errors.New("control point count does not match grid")
	ErrFaceIndex    = errors.New("face references a missing vertex")
	ErrVertexCount  = errors.New("per-vertex array does not match vertex count")
	ErrLoop         = errors.New("trim loop needs at least three points")
)

func config(fc scene.FileContext) binary.Config {
	return binary.Config{LengthSize: fc.LengthSize()}
}

// encode runs fn against a fresh buffer and returns the bytes written.
func encode(fc scene.FileContext, fn func(w *binary.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(binary.NewWriter(&buf, config(fc))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeInts(w *binary.Writer, vs ...int) error {
	for _, v := range vs {
		if err := w.WriteInt32(int32(v)); err != nil {
			return err
		}
	}
	return nil
}
