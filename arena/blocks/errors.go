package blocks

import "errors"

var (
	// ErrBadSize indicates a non-positive word count.
	ErrBadSize = errors.New("blocks: size must be positive")

	// ErrBadRef indicates a reference that does not name a live record.
	ErrBadRef = errors.New("blocks: bad block reference")

	// ErrNotFree indicates an attempt to split a block that is in use.
	ErrNotFree = errors.New("blocks: expected free block")

	// ErrAlreadyFree indicates an attempt to release a block that is already free.
	ErrAlreadyFree = errors.New("blocks: block already free")

	// ErrTooSmall indicates the block cannot hold the requested number of words.
	ErrTooSmall = errors.New("blocks: block smaller than request")

	// ErrCorrupt is wrapped by Check when an invariant does not hold.
	ErrCorrupt = errors.New("blocks: invariant violated")
)
