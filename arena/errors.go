package arena

import "errors"

var (
	// ErrNotInitialized indicates a call that needs a Ready arena.
	ErrNotInitialized = errors.New("arena: not initialized")

	// ErrNoSpace indicates that no hole can satisfy the request.
	ErrNoSpace = errors.New("arena: no hole large enough")

	// ErrBadAddress indicates an address that is not the start of a used block.
	ErrBadAddress = errors.New("arena: bad address")

	// ErrCapacityExceeded indicates a word count beyond MaxWords.
	ErrCapacityExceeded = errors.New("arena: word count exceeds 16-bit encoding domain")

	// ErrBackingStore indicates that reserving the backing buffer failed.
	ErrBackingStore = errors.New("arena: backing store reservation failed")

	// ErrBadSize indicates a non-positive word or byte count.
	ErrBadSize = errors.New("arena: size must be positive")

	// ErrBadWordSize indicates a non-positive word size.
	ErrBadWordSize = errors.New("arena: word size must be positive")

	// ErrStrategyMismatch indicates the fit strategy chose an offset that is
	// not a free block large enough for the request.
	ErrStrategyMismatch = errors.New("arena: strategy chose an unusable hole")
)
