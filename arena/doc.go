// Package arena simulates a user-space memory allocator over one contiguous,
// pre-reserved region of fixed-size words.
//
// # Overview
//
// A Manager owns a backing buffer of Words()*WordSize() bytes and a block list
// (see package blocks) that partitions the buffer's words into used blocks and
// holes. Allocate asks the active fit strategy (see package fit) to pick a
// hole, carves the request from the front of it and returns the address of the
// first byte. Free marks the block free again and merges it with adjacent
// holes.
//
// # Usage Example
//
//	m, err := arena.New(8, fit.BestFit)
//	if err != nil {
//	    return err
//	}
//	if err := m.Initialize(1024); err != nil {
//	    return err
//	}
//	defer m.Shutdown()
//
//	addr, err := m.Allocate(100) // 13 words
//	if err != nil {
//	    return err
//	}
//	buf, _ := m.Bytes(addr)
//	copy(buf, payload)
//
//	err = m.Free(addr)
//
// # States
//
// A Manager starts Uninitialized. Initialize moves it to Ready, shutting down a
// previous arena first. Shutdown moves it back. Every other call on an
// Uninitialized manager returns ErrNotInitialized.
//
// # Snapshots
//
// HoleList and Bitmap return the binary encodings described in package
// snapshot; Dump writes the hole list as text. Each call returns a fresh
// buffer the caller owns.
//
// # Errors
//
// Failures are ordinary error results (ErrNoSpace, ErrBadAddress,
// ErrCapacityExceeded, ErrBackingStore, ErrNotInitialized). A failed call never
// changes the arena.
//
// # Logging
//
// Managers log through log/slog. Without WithLogger, output is discarded
// unless the ARENA_LOG_ALLOC environment variable is set, which sends debug
// logs to stderr.
package arena
