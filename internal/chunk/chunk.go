package chunk

import (
	"fmt"
	"math"

	"github.com/robert-malhotra/go-3dm/internal/binary"
)

// Chunk is a finished, immutable chunk record.
//
// For short tags Length is the value and Content is nil. For long tags
// Content is non-nil, Length equals len(Content) and Sum is the CRC-32 of
// Content when the tag is checksummed. Write rejects a chunk whose Sum
// does not match its content.
type Chunk struct {
	Tag     Tag
	Length  int64
	Content []byte
	Sum     uint32
}

// NewShort returns a short chunk carrying value.
func NewShort(tag Tag, value int64) (*Chunk, error) {
	enc, ok := tag.Encoding()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, tag)
	}
	if !enc.Short {
		return nil, fmt.Errorf("%w: %s is long", ErrWrongSizeClass, tag)
	}
	return &Chunk{Tag: tag, Length: value}, nil
}

// NewLong returns a long chunk holding content. The checksum is computed
// here when the tag calls for one. Content must be non-nil; an empty
// chunk takes an empty slice.
func NewLong(tag Tag, content []byte) (*Chunk, error) {
	enc, ok := tag.Encoding()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, tag)
	}
	if enc.Short {
		return nil, fmt.Errorf("%w: %s is short", ErrWrongSizeClass, tag)
	}
	if content == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingContent, tag)
	}
	c := &Chunk{Tag: tag, Length: int64(len(content)), Content: content}
	if enc.CRC {
		c.Sum = binary.CRC32(content)
	}
	return c, nil
}

// EncodedSize returns the number of bytes Write emits for c with the given
// length slot width.
func (c *Chunk) EncodedSize(lengthSize int) int64 {
	n := int64(4 + lengthSize)
	enc, _ := c.Tag.Encoding()
	if enc.Short {
		return n
	}
	n += int64(len(c.Content))
	if enc.CRC {
		n += 4
	}
	return n
}

// Write emits c: tag, length slot, content and checksum trailer.
func Write(w *binary.Writer, c *Chunk) error {
	if c == nil {
		return ErrNilChunk
	}
	enc, ok := c.Tag.Encoding()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTag, c.Tag)
	}

	if enc.Short {
		if c.Content != nil {
			return fmt.Errorf("%w: %s is short but has content", ErrWrongSizeClass, c.Tag)
		}
		if !fitsSlot(c.Length, w.LengthSize()) {
			return fmt.Errorf("%w: %s value %d", ErrShortValueRange, c.Tag, c.Length)
		}
		if err := w.WriteUint32(uint32(c.Tag)); err != nil {
			return err
		}
		return w.WriteLength(uint64(c.Length))
	}

	if c.Content == nil {
		return fmt.Errorf("%w: %s", ErrMissingContent, c.Tag)
	}
	if c.Length != int64(len(c.Content)) {
		return fmt.Errorf("%w: %s length %d, content %d bytes",
			ErrLengthMismatch, c.Tag, c.Length, len(c.Content))
	}
	if enc.CRC {
		if sum := binary.CRC32(c.Content); c.Sum != sum {
			return fmt.Errorf("%w: %s stores 0x%08X, content is 0x%08X",
				ErrChecksumMismatch, c.Tag, c.Sum, sum)
		}
	}

	slot := uint64(c.Length)
	if enc.CRC {
		slot += 4
	}
	if err := w.WriteUint32(uint32(c.Tag)); err != nil {
		return err
	}
	if err := w.WriteLength(slot); err != nil {
		return err
	}
	if err := w.WriteBytes(c.Content); err != nil {
		return err
	}
	if enc.CRC {
		return w.WriteUint32(c.Sum)
	}
	return nil
}

// fitsSlot reports whether a signed short value can be stored in a
// length slot of the given width.
func fitsSlot(v int64, lengthSize int) bool {
	if lengthSize == 8 {
		return true
	}
	return v >= math.MinInt32 && v <= math.MaxInt32
}
