// Package blocks tracks the partition of an arena's word range into free and
// used blocks.
//
// # Overview
//
// A List is an ordered, gapless, non-overlapping sequence of Block records that
// together cover [0, Total()). Each record is either free (a hole) or used.
// Two list-adjacent records are never both free: every Release coalesces the
// released block with its free neighbors before returning.
//
// # Storage
//
// Records live in a slab (a slice) and are linked by int32 indices instead of
// pointers. A Ref is the index of a record in the slab. Records discarded by a
// merge go on a recycle stack and are handed out again by later splits, so the
// slab never grows beyond the largest block count the list has held.
//
// A Ref is only meaningful until the next mutating call: Split and Release may
// recycle the slot it names.
//
// # Operations
//
//	l, _ := blocks.New(26)
//	ref, ok := l.Locate(0, true)   // free block at word 0
//	used, _ := l.Split(ref, 10)    // [0,10) used, [10,26) free
//	merged, _ := l.Release(used)   // back to a single free [0,26)
//
// All operations are O(number of blocks) in the worst case. The list is not
// safe for concurrent use.
package blocks
