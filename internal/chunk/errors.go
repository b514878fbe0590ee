package chunk

import "errors"

// Errors
var (
	ErrNilChunk         = errors.New("nil chunk")
	ErrMissingContent   = errors.New("long chunk has no content")
	ErrLengthMismatch   = errors.New("chunk length does not match content")
	ErrUnknownTag       = errors.New("unknown chunk tag")
	ErrWrongSizeClass   = errors.New("wrong chunk size class for tag")
	ErrShortValueRange  = errors.New("short chunk value out of range")
	ErrTruncated        = errors.New("truncated chunk")
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")
)
