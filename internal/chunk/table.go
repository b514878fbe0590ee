package chunk

import (
	"fmt"

	"github.com/robert-malhotra/go-3dm/internal/binary"
)

// Table is an ordered collection of child chunks that serializes as the
// children followed by one terminator short chunk with value 0, folded
// into a parent long chunk. Insertion order is on-disk order.
type Table struct {
	tag      Tag
	end      Tag
	children []*Chunk
}

// NewTable returns an empty table terminated by end-of-table.
func NewTable(tag Tag) *Table {
	return NewTableWithEnd(tag, TagEndOfTable)
}

// NewTableWithEnd returns an empty table with a custom terminator tag.
// Class records end with TagClassEnd and object records with
// TagObjectRecordEnd.
func NewTableWithEnd(tag, end Tag) *Table {
	return &Table{tag: tag, end: end}
}

// Tag returns the parent tag.
func (t *Table) Tag() Tag {
	return t.tag
}

// Add appends a child.
func (t *Table) Add(c *Chunk) {
	t.children = append(t.children, c)
}

// Len returns the number of children, not counting the terminator.
func (t *Table) Len() int {
	return len(t.children)
}

// Chunk folds the children and the terminator into the parent chunk.
func (t *Table) Chunk(cfg binary.Config) (*Chunk, error) {
	b, err := NewBuilder(t.tag, cfg)
	if err != nil {
		return nil, err
	}
	for i, c := range t.children {
		if err := b.WriteChunk(c); err != nil {
			return nil, fmt.Errorf("%s child %d: %w", t.tag, i, err)
		}
	}
	if err := b.WriteShort(t.end, 0); err != nil {
		return nil, fmt.Errorf("%s terminator: %w", t.tag, err)
	}
	return b.Chunk(), nil
}
