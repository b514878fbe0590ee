// Package alloc keeps the byte-offset ledger of a 3dm archive as it is
// written.
//
// The archive is written strictly forward, so every top-level piece
// (start section, each table, the end mark) occupies the span right after
// the previous one. The orchestrator records each span as it is emitted
// and checks the ledger against the writer's byte counter; the end-of-file
// marker is derived from that agreed position.
//
//	l := alloc.New(0)
//	l.Record(uint64(startSize), "start")
//	if err := l.Check(w.Pos()); err != nil { ... }
package alloc
