package chunk

import (
	"bytes"
	"fmt"

	"github.com/robert-malhotra/go-3dm/internal/binary"
)

// Header describes one chunk found by Scan.
type Header struct {
	Tag    Tag    `json:"tag"`
	Name   string `json:"name"`
	Offset int64  `json:"offset"` // relative to the start of the scanned slice
	Depth  int    `json:"depth"`
	Short  bool   `json:"short"`

	// Value is the raw length slot: the short value, or the on-disk
	// length of a long chunk including any checksum trailer.
	Value uint64 `json:"value"`

	// Content is the number of content bytes, excluding the trailer.
	Content int64 `json:"content"`

	CRC bool `json:"crc"`
}

// Scan walks an encoded chunk stream and returns every chunk header in
// encounter order, descending into container tags. Checksum trailers are
// verified. On error the headers collected so far are returned with it.
func Scan(data []byte, cfg binary.Config) ([]Header, error) {
	var out []Header
	err := scan(data, 0, 0, cfg, &out)
	return out, err
}

func scan(data []byte, base int64, depth int, cfg binary.Config, out *[]Header) error {
	r := binary.NewReader(bytes.NewReader(data), cfg)
	size := int64(len(data))

	for r.Pos() < size {
		start := r.Pos()
		raw, err := r.ReadUint32()
		if err != nil {
			return fmt.Errorf("%w: tag at offset %d", ErrTruncated, base+start)
		}
		tag := Tag(raw)
		value, err := r.ReadLength()
		if err != nil {
			return fmt.Errorf("%w: %s length at offset %d", ErrTruncated, tag, base+start)
		}

		enc, ok := tag.Encoding()
		if !ok {
			enc = tag.flagEncoding()
		}
		h := Header{
			Tag:    tag,
			Name:   tag.String(),
			Offset: base + start,
			Depth:  depth,
			Short:  enc.Short,
			Value:  value,
			CRC:    enc.CRC,
		}
		if enc.Short {
			*out = append(*out, h)
			continue
		}

		contentStart := r.Pos()
		if value > uint64(size-contentStart) {
			*out = append(*out, h)
			return fmt.Errorf("%w: %s at offset %d claims %d bytes, %d left",
				ErrTruncated, tag, h.Offset, value, size-contentStart)
		}
		n := int64(value)
		if enc.CRC {
			if n < 4 {
				*out = append(*out, h)
				return fmt.Errorf("%w: %s at offset %d has no room for a checksum",
					ErrTruncated, tag, h.Offset)
			}
			n -= 4
		}
		h.Content = n
		*out = append(*out, h)

		content := data[contentStart : contentStart+n]
		if enc.CRC {
			r.Skip(n)
			sum, err := r.ReadUint32()
			if err != nil {
				return fmt.Errorf("%w: %s checksum", ErrTruncated, tag)
			}
			if !binary.VerifyCRC32(content, sum) {
				return fmt.Errorf("%w: %s at offset %d", ErrChecksumMismatch, tag, h.Offset)
			}
		} else {
			r.Skip(n)
		}

		if enc.Container {
			if err := scan(content, base+contentStart, depth+1, cfg, out); err != nil {
				return err
			}
		}
	}
	return nil
}
