package alloc

import (
	"errors"
	"fmt"
)

// ErrMismatch is returned when the ledger disagrees with the number of
// bytes actually written.
var ErrMismatch = errors.New("offset ledger does not match bytes written")

// Ledger records the top-level spans of an archive in write order.
// Spans are appended at the current end address, which then advances.
// A ledger belongs to a single write and is not safe for concurrent use.
type Ledger struct {
	// eofAddr is the end of the last recorded span
	eofAddr uint64

	// baseAddr is where the first span starts
	baseAddr uint64

	spans []Span
	stats Stats
}

// Span is one recorded region of the archive.
type Span struct {
	Addr uint64
	Size uint64
	Tag  string
}

// End returns the address just past the span.
func (s Span) End() uint64 {
	return s.Addr + s.Size
}

// Stats contains ledger statistics.
type Stats struct {
	TotalSpans  uint64
	TotalBytes  uint64
	LargestSpan uint64
}

// New creates a ledger whose first span starts at baseAddr.
func New(baseAddr uint64) *Ledger {
	return &Ledger{
		eofAddr:  baseAddr,
		baseAddr: baseAddr,
	}
}

// Record appends a span of the given size and returns its address.
// Zero sized spans are not recorded.
func (l *Ledger) Record(size uint64, tag string) uint64 {
	if size == 0 {
		return l.eofAddr
	}

	addr := l.eofAddr
	l.eofAddr += size

	l.spans = append(l.spans, Span{
		Addr: addr,
		Size: size,
		Tag:  tag,
	})

	l.stats.TotalSpans++
	l.stats.TotalBytes += size
	if size > l.stats.LargestSpan {
		l.stats.LargestSpan = size
	}

	return addr
}

// EOFAddr returns the end of the last recorded span.
func (l *Ledger) EOFAddr() uint64 {
	return l.eofAddr
}


// Stats returns a copy of the ledger statistics.
func (l *Ledger) Stats() Stats {
	return l.stats
}


// Check compares the ledger's end address with pos, the writer's byte
// count.
func (l *Ledger) Check(pos int64) error {
	if pos < 0 || uint64(pos) != l.eofAddr {
		return fmt.Errorf("%w: ledger ends at %d, writer at %d", ErrMismatch, l.eofAddr, pos)
	}
	return nil
}

// Validate checks that the spans are contiguous, start at the base
// address and end at the EOF address.
func (l *Ledger) Validate() error {
	next := l.baseAddr
	for _, s := range l.spans {
		if s.Addr != next {
			if s.Addr < next {
				return fmt.Errorf("span %q at 0x%x overlaps the previous span ending at 0x%x", s.Tag, s.Addr, next)
			}
			return fmt.Errorf("gap before span %q: 0x%x to 0x%x", s.Tag, next, s.Addr)
		}
		next = s.End()
	}
	if next != l.eofAddr {
		return fmt.Errorf("spans end at 0x%x, EOF is 0x%x", next, l.eofAddr)
	}
	return nil
}

