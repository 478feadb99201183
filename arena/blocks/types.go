package blocks

// Ref is the slab index of a block record.
type Ref = int32

// nilRef marks the absence of a neighbor.
const nilRef Ref = -1

// Block is a maximal run of words sharing the same free/used status.
type Block struct {
	Offset int  // first word index
	Size   int  // number of words, always > 0
	Free   bool // true if the block is a hole
}

// End returns the word index one past the last word of b.
func (b Block) End() int { return b.Offset + b.Size }

// Hole is a free block as reported by Holes and the hole-list encoding.
type Hole struct {
	Offset int
	Size   int
}

// Merge reports which neighbors Coalesce absorbed.
type Merge uint8

const (
	// MergedBackward is set when the predecessor absorbed the block.
	MergedBackward Merge = 1 << iota
	// MergedForward is set when the successor was absorbed.
	MergedForward
)

// node is a slab slot: a block plus its index links.
type node struct {
	Block
	prev Ref
	next Ref
	live bool
}
