package snapshot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/wordarena/arena/blocks"
)

// exampleList builds holes [0,10] [12,2] [20,6] over 26 words.
func exampleList(t testing.TB) *blocks.List {
	t.Helper()
	l, err := blocks.New(26)
	require.NoError(t, err)

	off := 0
	for _, sz := range []int{10, 2, 2, 6} {
		ref, ok := l.Locate(off, true)
		require.True(t, ok)
		_, err = l.Split(ref, sz)
		require.NoError(t, err)
		off += sz
	}
	for _, off := range []int{0, 12} {
		ref, ok := l.Locate(off, false)
		require.True(t, ok)
		_, _, err = l.Release(ref)
		require.NoError(t, err)
	}
	require.Equal(t, []blocks.Hole{{Offset: 0, Size: 10}, {Offset: 12, Size: 2}, {Offset: 20, Size: 6}}, l.Holes())
	return l
}

func TestHoleList_Example(t *testing.T) {
	got := HoleList(exampleList(t))
	want := []byte{
		3, 0,
		0, 0, 10, 0,
		12, 0, 2, 0,
		20, 0, 6, 0,
	}
	assert.Equal(t, want, got)
}

func TestBitmap_Example(t *testing.T) {
	got := Bitmap(exampleList(t))
	assert.Equal(t, []byte{0x04, 0x00, 0x00, 0xCC, 0x0F, 0x00}, got)
}

func TestHoleList_FullyUsed(t *testing.T) {
	l, err := blocks.New(8)
	require.NoError(t, err)
	ref, _ := l.Locate(0, true)
	_, err = l.Split(ref, 8)
	require.NoError(t, err)

	assert.Equal(t, []byte{0, 0}, HoleList(l))
	assert.Equal(t, []byte{1, 0, 0xFF}, Bitmap(l))

	holes, err := DecodeHoleList(HoleList(l))
	require.NoError(t, err)
	assert.Empty(t, holes)
}

func TestBitmap_FullyFree(t *testing.T) {
	l, err := blocks.New(9)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0, 0, 0}, Bitmap(l))
}

func TestMaxWordsHoleRoundTrip(t *testing.T) {
	l, err := blocks.New(MaxWords)
	require.NoError(t, err)

	enc := HoleList(l)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0}, enc)

	holes, err := DecodeHoleList(enc)
	require.NoError(t, err)
	assert.Equal(t, []blocks.Hole{{Offset: 0, Size: MaxWords}}, holes)

	bm := Bitmap(l)
	assert.Len(t, bm, 2+MaxWords/8)
	assert.Equal(t, []byte{0x00, 0x20}, bm[:2])
	require.NoError(t, Agree(enc, bm, MaxWords))
}

func TestDecodeHoleList_Errors(t *testing.T) {
	_, err := DecodeHoleList(nil)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = DecodeHoleList([]byte{2, 0, 0, 0, 1, 0})
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = DecodeHoleList([]byte{0, 0, 9})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestDecodeBitmap(t *testing.T) {
	used, n, err := DecodeBitmap([]byte{0x04, 0x00, 0x00, 0xCC, 0x0F, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []uint32{10, 11, 14, 15, 16, 17, 18, 19}, used.ToArray())

	_, _, err = DecodeBitmap([]byte{1})
	assert.ErrorIs(t, err, ErrShortBuffer)
	_, _, err = DecodeBitmap([]byte{3, 0, 1})
	assert.ErrorIs(t, err, ErrShortBuffer)
	_, _, err = DecodeBitmap([]byte{1, 0, 1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestAgree_DetectsMismatch(t *testing.T) {
	l := exampleList(t)
	holes := HoleList(l)
	bm := Bitmap(l)
	require.NoError(t, Agree(holes, bm, 26))

	flipped := append([]byte(nil), bm...)
	flipped[2] |= 0x01 // word 0 marked used
	assert.Error(t, Agree(holes, flipped, 26))

	padded := append([]byte(nil), bm...)
	padded[5] |= 0x80 // word 31, past the arena end
	assert.Error(t, Agree(holes, padded, 26))

	assert.ErrorIs(t, Agree(holes, bm, 40), ErrLengthMismatch)
}

// TestEncodingsAgree_Random checks that both encodings agree on which words
// are free across random block layouts.
func TestEncodingsAgree_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for iter := range 200 {
		total := 1 + rng.Intn(300)
		l, err := blocks.New(total)
		require.NoError(t, err)

		for range rng.Intn(40) {
			holes := l.Holes()
			if len(holes) == 0 {
				break
			}
			h := holes[rng.Intn(len(holes))]
			ref, _ := l.Locate(h.Offset, true)
			_, err = l.Split(ref, 1+rng.Intn(h.Size))
			require.NoError(t, err)
		}
		for _, b := range l.Blocks() {
			if !b.Free && rng.Intn(3) == 0 {
				ref, ok := l.Locate(b.Offset, false)
				require.True(t, ok)
				_, _, err = l.Release(ref)
				require.NoError(t, err)
			}
		}

		require.NoError(t, Agree(HoleList(l), Bitmap(l), total), "iter %d total %d", iter, total)
	}
}

func TestFormatText(t *testing.T) {
	assert.Equal(t, "[0, 10] - [12, 2] - [20, 6]", FormatText(exampleList(t).Holes()))
	assert.Equal(t, "[4, 1]", FormatText([]blocks.Hole{{Offset: 4, Size: 1}}))
	assert.Equal(t, "", FormatText(nil))
}
