package snapshot

import (
	"fmt"

	"github.com/joshuapare/wordarena/arena/blocks"
	"github.com/joshuapare/wordarena/internal/buf"
)

// MaxWords is the largest arena both encodings can describe.
const MaxWords = 1 << 16

const (
	holeHeaderSize = 2
	holeEntrySize  = 4
)

// HoleList encodes the free blocks of l.
func HoleList(l *blocks.List) []byte {
	return EncodeHoles(l.Holes())
}

// EncodeHoles encodes holes in order. Callers keep offsets below MaxWords and
// sizes in (0, MaxWords]; larger values are truncated to 16 bits.
func EncodeHoles(holes []blocks.Hole) []byte {
	out := make([]byte, 0, holeHeaderSize+holeEntrySize*len(holes))
	out = buf.AppendU16LE(out, uint16(len(holes)))
	for _, h := range holes {
		out = buf.AppendU16LE(out, uint16(h.Offset))
		// MaxWords wraps to 0, which DecodeHoleList maps back.
		out = buf.AppendU16LE(out, uint16(h.Size))
	}
	return out
}

// DecodeHoleList parses a hole-list encoding.
func DecodeHoleList(b []byte) ([]blocks.Hole, error) {
	count, ok := buf.U16At(b, 0)
	if !ok {
		return nil, fmt.Errorf("%w: hole list header needs %d bytes, have %d", ErrShortBuffer, holeHeaderSize, len(b))
	}
	want := holeHeaderSize + holeEntrySize*int(count)
	switch {
	case len(b) < want:
		return nil, fmt.Errorf("%w: %d holes need %d bytes, have %d", ErrShortBuffer, count, want, len(b))
	case len(b) > want:
		return nil, fmt.Errorf("%w: %d holes need %d bytes, have %d", ErrLengthMismatch, count, want, len(b))
	}

	holes := make([]blocks.Hole, count)
	for i := range holes {
		base := holeHeaderSize + holeEntrySize*i
		off := buf.U16LE(b[base:])
		size := int(buf.U16LE(b[base+2:]))
		if size == 0 {
			size = MaxWords
		}
		holes[i] = blocks.Hole{Offset: int(off), Size: size}
	}
	return holes, nil
}
