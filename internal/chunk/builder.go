package chunk

import (
	"bytes"
	"fmt"
	"hash"

	"github.com/robert-malhotra/go-3dm/internal/binary"
)

// Builder accumulates the content of one long chunk. Values are written
// through the embedded binary writer, which feeds both the builder's own
// buffer and its CRC accumulator.
//
//	b, err := chunk.NewBuilder(chunk.TagAnonymous, cfg)
//	b.WriteChunkVersion(1, 0)
//	b.WriteInt32(n)
//	c := b.Chunk()
type Builder struct {
	*binary.Writer

	tag Tag
	crc bool
	buf *bytes.Buffer
	sum hash.Hash32
}

// NewBuilder starts a long chunk with the given tag.
func NewBuilder(tag Tag, cfg binary.Config) (*Builder, error) {
	enc, ok := tag.Encoding()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, tag)
	}
	if enc.Short {
		return nil, fmt.Errorf("%w: %s is short", ErrWrongSizeClass, tag)
	}

	b := &Builder{tag: tag, crc: enc.CRC, buf: new(bytes.Buffer)}
	w := binary.NewWriter(b.buf, cfg)
	if enc.CRC {
		b.sum = binary.NewCRC32()
		w = w.WithChecksum(b.sum)
	}
	b.Writer = w
	return b, nil
}

// Tag returns the tag of the chunk being built.
func (b *Builder) Tag() Tag {
	return b.tag
}

// WriteChunk appends the full encoding of c to the content.
func (b *Builder) WriteChunk(c *Chunk) error {
	return Write(b.Writer, c)
}

// WriteShort appends a short chunk to the content.
func (b *Builder) WriteShort(tag Tag, value int64) error {
	c, err := NewShort(tag, value)
	if err != nil {
		return err
	}
	return b.WriteChunk(c)
}

// Chunk returns the finished chunk. The builder must not be written to
// afterwards.
func (b *Builder) Chunk() *Chunk {
	c := &Chunk{
		Tag:     b.tag,
		Length:  int64(b.buf.Len()),
		Content: b.buf.Bytes(),
	}
	if c.Content == nil {
		c.Content = []byte{}
	}
	if b.crc {
		c.Sum = b.sum.Sum32()
	}
	return c
}

// Nest returns a long chunk tagged tag whose content is exactly the
// encoding of child.
func Nest(tag Tag, child *Chunk, cfg binary.Config) (*Chunk, error) {
	if child == nil {
		return nil, fmt.Errorf("nesting in %s: %w", tag, ErrNilChunk)
	}
	b, err := NewBuilder(tag, cfg)
	if err != nil {
		return nil, err
	}
	if err := b.WriteChunk(child); err != nil {
		return nil, fmt.Errorf("nesting in %s: %w", tag, err)
	}
	return b.Chunk(), nil
}
