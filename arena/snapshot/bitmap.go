package snapshot

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/joshuapare/wordarena/arena/blocks"
	"github.com/joshuapare/wordarena/internal/buf"
)

const bitmapHeaderSize = 2

// Bitmap encodes one bit per word of l, set for used words.
func Bitmap(l *blocks.List) []byte {
	n := buf.CeilDiv(l.Total(), 8)
	out := make([]byte, bitmapHeaderSize+n)
	buf.PutU16LE(out, 0, uint16(n))
	payload := out[bitmapHeaderSize:]

	for b := range l.All() {
		if !b.Free {
			setRange(payload, b.Offset, b.End())
		}
	}
	return out
}

// setRange sets bits [from, to) in p.
func setRange(p []byte, from, to int) {
	for from < to && from%8 != 0 {
		p[from/8] |= 1 << (from % 8)
		from++
	}
	for ; from+8 <= to; from += 8 {
		p[from/8] = 0xFF
	}
	for ; from < to; from++ {
		p[from/8] |= 1 << (from % 8)
	}
}

// DecodeBitmap parses a bitmap encoding and returns the set of used words
// together with the payload length in bytes.
func DecodeBitmap(b []byte) (*roaring.Bitmap, int, error) {
	n, ok := buf.U16At(b, 0)
	if !ok {
		return nil, 0, fmt.Errorf("%w: bitmap header needs %d bytes, have %d", ErrShortBuffer, bitmapHeaderSize, len(b))
	}
	payload, ok := buf.Slice(b, bitmapHeaderSize, int(n))
	if !ok {
		return nil, 0, fmt.Errorf("%w: bitmap declares %d bytes, have %d", ErrShortBuffer, n, len(b)-bitmapHeaderSize)
	}
	if len(b) != bitmapHeaderSize+int(n) {
		return nil, 0, fmt.Errorf("%w: bitmap declares %d bytes, have %d", ErrLengthMismatch, n, len(b)-bitmapHeaderSize)
	}

	used := roaring.New()
	for i, by := range payload {
		if by == 0 {
			continue
		}
		for bit := range 8 {
			if by&(1<<bit) != 0 {
				used.Add(uint32(i*8 + bit))
			}
		}
	}
	return used, int(n), nil
}

// UsedFromHoles returns the words of [0, total) not covered by holes.
func UsedFromHoles(holes []blocks.Hole, total int) *roaring.Bitmap {
	used := roaring.New()
	if total <= 0 {
		return used
	}
	used.AddRange(0, uint64(total))
	for _, h := range holes {
		used.RemoveRange(uint64(h.Offset), uint64(h.Offset+h.Size))
	}
	return used
}

// Agree reports whether a hole-list encoding and a bitmap encoding describe
// the same used words for an arena of total words.
func Agree(holeList, bitmap []byte, total int) error {
	holes, err := DecodeHoleList(holeList)
	if err != nil {
		return err
	}
	fromBits, n, err := DecodeBitmap(bitmap)
	if err != nil {
		return err
	}
	if want := buf.CeilDiv(total, 8); n != want {
		return fmt.Errorf("%w: bitmap has %d bytes for %d words, want %d", ErrLengthMismatch, n, total, want)
	}
	// Padding bits past total must be clear.
	if fromBits.GetCardinality() > 0 && int(fromBits.Maximum()) >= total {
		return fmt.Errorf("snapshot: bitmap marks word %d beyond arena end %d", fromBits.Maximum(), total)
	}
	fromHoles := UsedFromHoles(holes, total)
	if !fromHoles.Equals(fromBits) {
		diff := roaring.Xor(fromHoles, fromBits)
		return fmt.Errorf("snapshot: encodings disagree on %d words, first %d", diff.GetCardinality(), diff.Minimum())
	}
	return nil
}
