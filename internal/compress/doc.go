// Package compress implements the raw/compressed buffer strategy used for
// bulk arrays inside class payloads.
//
// A buffer is written as a header of three fields
//
//	size (uint32) | CRC-32 of the uncompressed bytes (uint32) | method (uint8)
//
// followed by the payload. Buffers of at most [Threshold] bytes use
// [MethodRaw] and are copied verbatim. Larger buffers use [MethodDeflate]:
// the bytes are zlib compressed at best compression and emitted as one
// checksummed anonymous chunk.
//
// Compression failures are fatal. There is no fallback to raw storage.
package compress
