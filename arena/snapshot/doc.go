// Package snapshot encodes read-only views of a block list.
//
// Two binary layouts are produced, both little-endian:
//
//	hole list: [numHoles u16] [offset u16][size u16] ...
//	bitmap:    [byteLength u16] [byteLength bytes, bit i set when word i is used]
//
// Bitmap bits are packed low bit first within each byte, in ascending word
// order. Every call returns a freshly allocated buffer owned by the caller.
//
// A size field of 0 in the hole list stands for MaxWords, the only hole size
// that does not fit in 16 bits.
//
// The decoders return roaring bitmaps of used words so that the two encodings
// of one state can be compared directly.
package snapshot
