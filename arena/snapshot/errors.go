package snapshot

import "errors"

var (
	// ErrShortBuffer indicates an encoding shorter than its header claims.
	ErrShortBuffer = errors.New("snapshot: buffer too short")

	// ErrLengthMismatch indicates trailing bytes after the declared payload.
	ErrLengthMismatch = errors.New("snapshot: length does not match header")
)
