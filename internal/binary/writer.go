// Package binary provides low-level binary I/O for 3dm archive writing.
package binary

import (
	"encoding/binary"
	"errors"
	"hash"
	"image/color"
	"io"
	"math"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidSize is returned when an invalid chunk length width is specified.
var ErrInvalidSize = errors.New("invalid chunk length size: must be 4 or 8")

// Config holds codec configuration, derived from the archive format version.
type Config struct {
	LengthSize int // 4 or 8 bytes
}

// DefaultConfig returns the configuration used by version 4 archives:
// 4-byte chunk lengths.
func DefaultConfig() Config {
	return Config{LengthSize: 4}
}

// Validate reports whether the configuration can be used for writing.
func (c Config) Validate() error {
	if c.LengthSize != 4 && c.LengthSize != 8 {
		return ErrInvalidSize
	}
	return nil
}

// Writer appends little-endian encoded values to an append-only sink.
// It never seeks. When a checksum accumulator is attached every byte
// written also updates the accumulator.
type Writer struct {
	w          io.Writer
	order      binary.ByteOrder
	lengthSize int
	pos        int64
	sum        hash.Hash32
}

// NewWriter creates a binary writer with the given configuration.
func NewWriter(w io.Writer, cfg Config) *Writer {
	return &Writer{
		w:          w,
		order:      binary.LittleEndian,
		lengthSize: cfg.LengthSize,
	}
}

// WithChecksum returns a new writer that shares the underlying sink and
// updates sum with every byte written. The new writer has an independent
// position starting at the current one. A nil sum disables checksumming.
func (w *Writer) WithChecksum(sum hash.Hash32) *Writer {
	return &Writer{
		w:          w.w,
		order:      w.order,
		lengthSize: w.lengthSize,
		pos:        w.pos,
		sum:        sum,
	}
}

// Config returns the configuration the writer was built with.
func (w *Writer) Config() Config {
	return Config{LengthSize: w.lengthSize}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int64 {
	return w.pos
}

// LengthSize returns the configured chunk length width in bytes.
func (w *Writer) LengthSize() int {
	return w.lengthSize
}

// WriteBytes writes data at the end of the sink.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.Write(data)
	w.pos += int64(n)
	if w.sum != nil && n > 0 {
		w.sum.Write(data[:n])
	}
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	return err
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) error {
	return w.WriteBytes([]byte{v})
}

// WriteBool writes a boolean as a single byte (1 or 0).
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteUint8(1)
	}
	return w.WriteUint8(0)
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	buf := make([]byte, 2)
	w.order.PutUint16(buf, v)
	return w.WriteBytes(buf)
}

// WriteInt16 writes a signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) error {
	return w.WriteUint16(uint16(v))
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	buf := make([]byte, 4)
	w.order.PutUint32(buf, v)
	return w.WriteBytes(buf)
}

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	buf := make([]byte, 8)
	w.order.PutUint64(buf, v)
	return w.WriteBytes(buf)
}

// WriteInt64 writes a signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) error {
	return w.WriteUint64(uint64(v))
}

// WriteFloat32 writes the IEEE-754 bit pattern of a float32.
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes the IEEE-754 bit pattern of a float64.
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteUintN writes an unsigned integer of n bytes (1, 2, 4, or 8).
func (w *Writer) WriteUintN(v uint64, n int) error {
	buf := make([]byte, n)
	w.encodeUint(buf, v, n)
	return w.WriteBytes(buf)
}

// WriteLength writes a chunk length (or short chunk value) using the
// configured length width.
func (w *Writer) WriteLength(v uint64) error {
	return w.WriteUintN(v, w.lengthSize)
}

// encodeUint encodes a variable-width unsigned integer into a buffer.
func (w *Writer) encodeUint(buf []byte, v uint64, size int) {
	switch size {
	case 1:
		buf[0] = uint8(v)
	case 2:
		w.order.PutUint16(buf, uint16(v))
	case 4:
		w.order.PutUint32(buf, uint32(v))
	case 8:
		w.order.PutUint64(buf, v)
	default:
		for i := 0; i < size; i++ {
			buf[i] = byte(v >> (8 * i))
		}
	}
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// WriteString writes s as a counted UTF-16LE string: a 32-bit count of
// code units plus one, the code units, and a two byte null terminator.
// The empty string is written as count 1 followed by the terminator.
func (w *Writer) WriteString(s string) error {
	units, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(len(units)/2 + 1)); err != nil {
		return err
	}
	if err := w.WriteBytes(units); err != nil {
		return err
	}
	return w.WriteBytes([]byte{0, 0})
}

// WriteColor writes a color as red, green, blue and 255-alpha bytes.
// A nil color is written as four zero bytes.
func (w *Writer) WriteColor(c color.Color) error {
	var buf [4]byte
	if c != nil {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		buf = [4]byte{n.R, n.G, n.B, 255 - n.A}
	}
	return w.WriteBytes(buf[:])
}

// WriteUUID writes a 128-bit identifier in the on-disk GUID layout: the
// first three fields little-endian, the last eight bytes as-is.
func (w *Writer) WriteUUID(id uuid.UUID) error {
	buf := make([]byte, 16)
	buf[0], buf[1], buf[2], buf[3] = id[3], id[2], id[1], id[0]
	buf[4], buf[5] = id[5], id[4]
	buf[6], buf[7] = id[7], id[6]
	copy(buf[8:], id[8:])
	return w.WriteBytes(buf)
}

// WriteChunkVersion writes a major/minor pair packed into one byte.
func (w *Writer) WriteChunkVersion(major, minor int) error {
	return w.WriteUint8(uint8((major&0x0F)<<4 | minor&0x0F))
}

// WritePoint2 writes a 2D point as two doubles.
func (w *Writer) WritePoint2(p Point2) error {
	if err := w.WriteFloat64(p.X); err != nil {
		return err
	}
	return w.WriteFloat64(p.Y)
}

// WritePoint2f writes a 2D point as two floats.
func (w *Writer) WritePoint2f(p Point2) error {
	if err := w.WriteFloat32(float32(p.X)); err != nil {
		return err
	}
	return w.WriteFloat32(float32(p.Y))
}

// WritePoint3 writes a 3D point as three doubles.
func (w *Writer) WritePoint3(p Point3) error {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if err := w.WriteFloat64(v); err != nil {
			return err
		}
	}
	return nil
}

// WritePoint3f writes a 3D point as three floats.
func (w *Writer) WritePoint3f(p Point3) error {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if err := w.WriteFloat32(float32(v)); err != nil {
			return err
		}
	}
	return nil
}

// WriteInterval writes an interval as two doubles.
func (w *Writer) WriteInterval(iv Interval) error {
	if err := w.WriteFloat64(iv.T0); err != nil {
		return err
	}
	return w.WriteFloat64(iv.T1)
}

// WriteBoundingBox writes the min corner then the max corner.
func (w *Writer) WriteBoundingBox(b BoundingBox) error {
	if err := w.WritePoint3(b.Min); err != nil {
		return err
	}
	return w.WritePoint3(b.Max)
}

// WriteArray writes a 32-bit element count followed by each element.
// A nil or empty slice is written as a zero count.
func WriteArray[T any](w *Writer, items []T, write func(*Writer, T) error) error {
	if err := w.WriteUint32(uint32(len(items))); err != nil {
		return err
	}
	for _, item := range items {
		if err := write(w, item); err != nil {
			return err
		}
	}
	return nil
}

// WriteInt32Array writes a counted array of 32-bit integers.
func (w *Writer) WriteInt32Array(a []int32) error {
	return WriteArray(w, a, (*Writer).WriteInt32)
}

// WriteFloat64Array writes a counted array of doubles.
func (w *Writer) WriteFloat64Array(a []float64) error {
	return WriteArray(w, a, (*Writer).WriteFloat64)
}

// WritePoint3Array writes a counted array of double precision 3D points.
func (w *Writer) WritePoint3Array(a []Point3) error {
	return WriteArray(w, a, (*Writer).WritePoint3)
}

// WritePoint3fArray writes a counted array of single precision 3D points.
func (w *Writer) WritePoint3fArray(a []Point3) error {
	return WriteArray(w, a, (*Writer).WritePoint3f)
}

// WritePoint2fArray writes a counted array of single precision 2D points.
func (w *Writer) WritePoint2fArray(a []Point2) error {
	return WriteArray(w, a, (*Writer).WritePoint2f)
}

// WriteColorArray writes a counted array of colors.
func (w *Writer) WriteColorArray(a []color.Color) error {
	return WriteArray(w, a, (*Writer).WriteColor)
}
