package codec

import "errors"

// Sentinel decode errors. Callers should compare with errors.Is; call sites
// wrap these with fmt.Errorf("...: %w", ErrX) to add context, matching the
// error style used throughout this module.
var (
	// ErrInvalidLength is returned when a fixed-width field does not have
	// the expected number of bytes.
	ErrInvalidLength = errors.New("codec: invalid length")
	// ErrInvalidChecksum is returned when a cb58 checksum does not match.
	ErrInvalidChecksum = errors.New("codec: invalid checksum")
	// ErrTruncatedBuffer is returned when a packer runs out of bytes while
	// reading a field.
	ErrTruncatedBuffer = errors.New("codec: truncated buffer")
	// ErrUnknownTypeID is returned when a tagged union's type tag does not
	// match any registered variant.
	ErrUnknownTypeID = errors.New("codec: unknown type id")
)
