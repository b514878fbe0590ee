package threedm

import (
	"errors"

	"github.com/robert-malhotra/go-3dm/internal/alloc"
)

// Common errors
var (
	ErrNilScene              = errors.New("nil scene")
	ErrInvalidFormatVersion  = errors.New("invalid format version: must be 1 to 5")
	ErrInvalidEncoderVersion = errors.New("invalid encoder revision")
	ErrNotArchive            = errors.New("not a 3dm archive")

	// ErrLedgerMismatch reports that the bytes written disagree with the
	// sizes of the chunks that were emitted.
	ErrLedgerMismatch = alloc.ErrMismatch
)
