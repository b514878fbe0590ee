// Package chunk implements the nestable chunk records of the 3dm format.
//
// Every piece of a 3dm archive after the 32 byte start header is a chunk:
//
//	tag (4 bytes) | length slot (4 or 8 bytes) | content | CRC-32 (optional)
//
// A short chunk carries a signed value in its length slot and has neither
// content nor checksum. A long chunk carries len(content) in the slot, or
// len(content)+4 when the tag is checksummed, followed by the content and
// the CRC-32 (IEEE) of exactly the content bytes.
//
// Whether a tag is short, and whether it is checksummed, is decided by the
// static table behind [Tag.Encoding]. Tags that are not in the table are
// rejected when written.
//
// # Construction
//
// Chunks are built bottom-up and never patched. Each buffering step owns
// its buffer and its checksum accumulator:
//
//   - [NewShort] and [NewLong] wrap a value or finished content.
//   - [Builder] accumulates content through an embedded binary writer and
//     returns the chunk with its checksum.
//   - [Table] collects children, appends one terminator short chunk and
//     folds everything into a parent long chunk.
//   - [Nest] wraps a single child in a parent chunk.
//
// [Write] emits a finished chunk to a sink.
//
// # Inspection
//
// [Scan] walks an encoded chunk stream into [Header] values, descending into
// container tags and verifying checksum trailers. It does not decode record
// semantics.
//
// # Errors
//
//   - [ErrNilChunk]: a nil chunk was written or added to a table
//   - [ErrMissingContent]: a long chunk with a non-zero length has no content
//   - [ErrLengthMismatch]: Length does not match len(Content)
//   - [ErrUnknownTag]: the tag is not in the static encoding table
//   - [ErrWrongSizeClass]: a short tag was given content, or the reverse
//   - [ErrShortValueRange]: a short value does not fit the length slot
//   - [ErrTruncated], [ErrChecksumMismatch]: reported by [Scan]
package chunk
