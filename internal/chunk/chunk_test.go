package chunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	bin "github.com/robert-malhotra/go-3dm/internal/binary"
)

func encode(t *testing.T, c *Chunk, lengthSize int) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := bin.NewWriter(&buf, bin.Config{LengthSize: lengthSize})
	if err := Write(w, c); err != nil {
		t.Fatalf("Write(%s) failed: %v", c.Tag, err)
	}
	if int64(buf.Len()) != c.EncodedSize(lengthSize) {
		t.Errorf("EncodedSize = %d, wrote %d bytes", c.EncodedSize(lengthSize), buf.Len())
	}
	return buf.Bytes()
}

func TestEncodingTableMatchesFlags(t *testing.T) {
	for tag, info := range tags {
		wantShort := tag&FlagShort != 0
		wantCRC := !wantShort && tag&FlagCRC != 0
		if info.enc.Short != wantShort {
			t.Errorf("%s: short = %v, flag bits say %v", info.name, info.enc.Short, wantShort)
		}
		if info.enc.CRC != wantCRC {
			t.Errorf("%s: crc = %v, flag bits say %v", info.name, info.enc.CRC, wantCRC)
		}
		if info.enc.Short && info.enc.Container {
			t.Errorf("%s: short tag cannot be a container", info.name)
		}
	}
}

func TestTagString(t *testing.T) {
	if got := TagObjectRecord.String(); got != "OBJECT_RECORD" {
		t.Errorf("got %q", got)
	}
	if got := Tag(0x12345678).String(); got != "TAG(0x12345678)" {
		t.Errorf("got %q", got)
	}
}

func TestWriteShort(t *testing.T) {
	tests := []struct {
		name       string
		lengthSize int
		value      int64
		expected   []byte
	}{
		{"version 32-bit", 4, 201004095, []byte{0x26, 0, 0, 0xA0, 0x3F, 0x14, 0xFB, 0x0B}},
		{"version 64-bit", 8, 201004095, []byte{0x26, 0, 0, 0xA0, 0x3F, 0x14, 0xFB, 0x0B, 0, 0, 0, 0}},
		{"negative 32-bit", 4, -1, []byte{0x26, 0, 0, 0xA0, 0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewShort(TagPropertiesOpenNURBSVersion, tt.value)
			if err != nil {
				t.Fatalf("NewShort failed: %v", err)
			}
			got := encode(t, c, tt.lengthSize)
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("expected % X, got % X", tt.expected, got)
			}
		})
	}
}

func TestWriteLongWithoutChecksum(t *testing.T) {
	content := []byte("hello")
	c, err := NewLong(TagCommentBlock, content)
	if err != nil {
		t.Fatalf("NewLong failed: %v", err)
	}

	got := encode(t, c, 4)
	if len(got) != 4+4+len(content) {
		t.Fatalf("expected %d bytes, got %d", 8+len(content), len(got))
	}
	if binary.LittleEndian.Uint32(got[4:]) != uint32(len(content)) {
		t.Errorf("length slot = %d, want %d", binary.LittleEndian.Uint32(got[4:]), len(content))
	}
	if !bytes.Equal(got[8:], content) {
		t.Errorf("content mismatch: % X", got[8:])
	}
}

func TestWriteLongWithChecksum(t *testing.T) {
	content := []byte{1, 2, 3, 4, 5, 6, 7}

	for _, lengthSize := range []int{4, 8} {
		c, err := NewLong(TagAnonymous, content)
		if err != nil {
			t.Fatalf("NewLong failed: %v", err)
		}
		got := encode(t, c, lengthSize)

		slot := got[4 : 4+lengthSize]
		var length uint64
		if lengthSize == 4 {
			length = uint64(binary.LittleEndian.Uint32(slot))
		} else {
			length = binary.LittleEndian.Uint64(slot)
		}
		if length != uint64(len(content)+4) {
			t.Errorf("size %d: length slot = %d, want %d", lengthSize, length, len(content)+4)
		}

		body := got[4+lengthSize:]
		if !bytes.Equal(body[:len(content)], content) {
			t.Errorf("size %d: content mismatch", lengthSize)
		}
		trailer := binary.LittleEndian.Uint32(body[len(content):])
		if trailer != bin.CRC32(content) {
			t.Errorf("size %d: trailer 0x%08x, want 0x%08x", lengthSize, trailer, bin.CRC32(content))
		}
	}
}

func TestEmptyLongChunk(t *testing.T) {
	c, err := NewLong(TagAnonymous, []byte{})
	if err != nil {
		t.Fatalf("NewLong failed: %v", err)
	}
	got := encode(t, c, 4)
	expected := []byte{0x00, 0x80, 0x00, 0x40, 4, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, expected) {
		t.Errorf("expected % X, got % X", expected, got)
	}
}

func TestChunkErrors(t *testing.T) {
	if _, err := NewShort(TagCommentBlock, 1); !errors.Is(err, ErrWrongSizeClass) {
		t.Errorf("NewShort on long tag: %v", err)
	}
	if _, err := NewLong(TagEndOfTable, nil); !errors.Is(err, ErrWrongSizeClass) {
		t.Errorf("NewLong on short tag: %v", err)
	}
	if _, err := NewShort(Tag(0x81234567), 0); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("NewShort on unknown tag: %v", err)
	}
	if _, err := NewBuilder(TagClassEnd, bin.DefaultConfig()); !errors.Is(err, ErrWrongSizeClass) {
		t.Errorf("NewBuilder on short tag: %v", err)
	}
	if _, err := NewLong(TagAnonymous, nil); !errors.Is(err, ErrMissingContent) {
		t.Errorf("NewLong with nil content: %v", err)
	}

	tests := []struct {
		name       string
		chunk      *Chunk
		lengthSize int
		expected   error
	}{
		{"nil", nil, 4, ErrNilChunk},
		{"unknown tag", &Chunk{Tag: 0x00001234}, 4, ErrUnknownTag},
		{"short with content", &Chunk{Tag: TagEndOfTable, Content: []byte{1}}, 4, ErrWrongSizeClass},
		{"missing content", &Chunk{Tag: TagCommentBlock, Length: 3}, 4, ErrMissingContent},
		{"missing content, zero length", &Chunk{Tag: TagCommentBlock}, 4, ErrMissingContent},
		{"missing content, checksummed", &Chunk{Tag: TagAnonymous}, 8, ErrMissingContent},
		{"missing content, record", &Chunk{Tag: TagObjectRecord}, 4, ErrMissingContent},
		{"stale checksum", &Chunk{Tag: TagAnonymous, Length: 3, Content: []byte{1, 2, 3}, Sum: 0xDEADBEEF}, 4, ErrChecksumMismatch},
		{"missing checksum", &Chunk{Tag: TagClassData, Length: 1, Content: []byte{0x10}}, 4, ErrChecksumMismatch},
		{"length mismatch", &Chunk{Tag: TagCommentBlock, Length: 2, Content: []byte{1, 2, 3}}, 4, ErrLengthMismatch},
		{"short value too large", &Chunk{Tag: TagObjectRecordType, Length: 1 << 40}, 4, ErrShortValueRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := bin.NewWriter(&buf, bin.Config{LengthSize: tt.lengthSize})
			if err := Write(w, tt.chunk); !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
			if buf.Len() != 0 {
				t.Errorf("failed write emitted %d bytes", buf.Len())
			}
		})
	}

	t.Run("large short value in 64-bit slot", func(t *testing.T) {
		c := &Chunk{Tag: TagObjectRecordType, Length: 1 << 40}
		encode(t, c, 8)
	})
}

func TestBuilderMatchesNewLong(t *testing.T) {
	cfg := bin.DefaultConfig()
	b, err := NewBuilder(TagClassData, cfg)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	if err := b.WriteChunkVersion(1, 0); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteString("payload"); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteFloat64(3.5); err != nil {
		t.Fatal(err)
	}
	built := b.Chunk()

	direct, err := NewLong(TagClassData, built.Content)
	if err != nil {
		t.Fatalf("NewLong failed: %v", err)
	}
	if built.Sum != direct.Sum {
		t.Errorf("running sum 0x%08x, one-shot 0x%08x", built.Sum, direct.Sum)
	}
	if built.Length != int64(len(built.Content)) || built.Length != b.Pos() {
		t.Errorf("length %d, content %d, pos %d", built.Length, len(built.Content), b.Pos())
	}
}

func TestBuilderEmpty(t *testing.T) {
	b, err := NewBuilder(TagCommentBlock, bin.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	c := b.Chunk()
	if c.Content == nil || c.Length != 0 {
		t.Errorf("empty builder gave length %d content %v", c.Length, c.Content)
	}
	encode(t, c, 4)
}

func TestTableTerminator(t *testing.T) {
	cfg := bin.DefaultConfig()

	for k := 0; k <= 4; k++ {
		table := NewTable(TagGroupTable)
		for i := 0; i < k; i++ {
			child, err := NewShort(TagObjectRecordType, int64(i+1))
			if err != nil {
				t.Fatal(err)
			}
			table.Add(child)
		}
		if table.Len() != k {
			t.Fatalf("Len = %d, want %d", table.Len(), k)
		}

		c, err := table.Chunk(cfg)
		if err != nil {
			t.Fatalf("k=%d: Chunk failed: %v", k, err)
		}
		if c.Length != int64(8*k+8) {
			t.Errorf("k=%d: content length %d, want %d", k, c.Length, 8*k+8)
		}

		tail := c.Content[len(c.Content)-8:]
		if !bytes.Equal(tail, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}) {
			t.Errorf("k=%d: terminator % X", k, tail)
		}

		headers, err := Scan(encode(t, c, 4), cfg)
		if err != nil {
			t.Fatalf("k=%d: Scan failed: %v", k, err)
		}
		if len(headers) != k+2 {
			t.Fatalf("k=%d: scanned %d headers, want %d", k, len(headers), k+2)
		}
		ends := 0
		for _, h := range headers {
			if h.Tag == TagEndOfTable {
				ends++
			}
		}
		if ends != 1 {
			t.Errorf("k=%d: %d terminators", k, ends)
		}
	}
}

func TestTableCustomTerminator(t *testing.T) {
	table := NewTableWithEnd(TagClass, TagClassEnd)
	c, err := table.Chunk(bin.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{0xFF, 0x7F, 0x02, 0x80, 0, 0, 0, 0}
	if !bytes.Equal(c.Content, expected) {
		t.Errorf("expected % X, got % X", expected, c.Content)
	}
}

func TestTableNilChild(t *testing.T) {
	table := NewTable(TagLayerTable)
	table.Add(nil)
	if _, err := table.Chunk(bin.DefaultConfig()); !errors.Is(err, ErrNilChunk) {
		t.Errorf("expected ErrNilChunk, got %v", err)
	}
}

func TestTableChecksummedParent(t *testing.T) {
	table := NewTableWithEnd(TagObjectRecord, TagObjectRecordEnd)
	child, _ := NewShort(TagObjectRecordType, 1)
	table.Add(child)

	c, err := table.Chunk(bin.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if c.Sum != bin.CRC32(c.Content) {
		t.Errorf("sum 0x%08x, want 0x%08x", c.Sum, bin.CRC32(c.Content))
	}
	if got := c.EncodedSize(4); got != 8+16+4 {
		t.Errorf("EncodedSize = %d, want 28", got)
	}
}

func TestNest(t *testing.T) {
	cfg := bin.DefaultConfig()
	child, _ := NewLong(TagAnonymous, []byte{9, 9})

	parent, err := Nest(TagObjectRecordAttributes, child, cfg)
	if err != nil {
		t.Fatalf("Nest failed: %v", err)
	}
	if !bytes.Equal(parent.Content, encode(t, child, 4)) {
		t.Error("nested content is not the child's encoding")
	}
	if _, err := Nest(TagObjectRecordAttributes, nil, cfg); !errors.Is(err, ErrNilChunk) {
		t.Errorf("expected ErrNilChunk, got %v", err)
	}
}
