package compress

import (
	"fmt"

	"github.com/robert-malhotra/go-3dm/internal/binary"
	"github.com/robert-malhotra/go-3dm/internal/chunk"
)

// Threshold is the largest buffer size stored raw.
const Threshold = 128

// Method identifies how a buffer payload is stored. Values are written
// to disk.
type Method uint8

const (
	MethodRaw     Method = 0
	MethodDeflate Method = 1
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodRaw:
		return "raw"
	case MethodDeflate:
		return "deflate"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// MethodFor returns the method used for a buffer of n bytes.
func MethodFor(n int) Method {
	if n > Threshold {
		return MethodDeflate
	}
	return MethodRaw
}

// WriteBuffer writes buf using the raw or deflate method depending on its
// size.
func WriteBuffer(w *binary.Writer, buf []byte) error {
	method := MethodFor(len(buf))

	if err := w.WriteUint32(uint32(len(buf))); err != nil {
		return err
	}
	if err := w.WriteUint32(binary.CRC32(buf)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(method)); err != nil {
		return err
	}

	if method == MethodRaw {
		return w.WriteBytes(buf)
	}

	packed, err := Deflate(buf)
	if err != nil {
		return err
	}
	c, err := chunk.NewLong(chunk.TagAnonymous, packed)
	if err != nil {
		return err
	}
	return chunk.Write(w, c)
}
