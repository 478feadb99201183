package blocks

import (
	"fmt"
	"iter"
)

// List is the ordered partition of [0, total) into blocks.
type List struct {
	nodes   []node
	recycle []Ref // discarded slots available for reuse
	head    Ref
	total   int
	count   int // live records
}

// New returns a list holding a single free block spanning [0, total).
func New(total int) (*List, error) {
	if total <= 0 {
		return nil, ErrBadSize
	}
	l := &List{
		nodes: make([]node, 0, 16),
		head:  nilRef,
		total: total,
	}
	l.head = l.newNode(Block{Offset: 0, Size: total, Free: true})
	return l, nil
}

// Total returns the number of words covered by the list.
func (l *List) Total() int { return l.total }

// Len returns the number of blocks in the list.
func (l *List) Len() int { return l.count }

// Block returns a copy of the block named by ref.
func (l *List) Block(ref Ref) (Block, error) {
	if !l.valid(ref) {
		return Block{}, ErrBadRef
	}
	return l.nodes[ref].Block, nil
}

// Locate scans from the head for the block starting at offset whose free
// state equals free. A miss is a normal outcome, not an error.
func (l *List) Locate(offset int, free bool) (Ref, bool) {
	for r := l.head; r != nilRef; r = l.nodes[r].next {
		n := &l.nodes[r]
		if n.Offset == offset && n.Free == free {
			return r, true
		}
		if n.Offset > offset {
			break
		}
	}
	return nilRef, false
}

// Split carves words from the front of the free block ref and marks that part
// used. A nonzero remainder becomes a new free block directly after it; an
// exact fit flips the block in place. Split returns ref, which now names the
// used block.
func (l *List) Split(ref Ref, words int) (Ref, error) {
	if words <= 0 {
		return nilRef, ErrBadSize
	}
	if !l.valid(ref) {
		return nilRef, ErrBadRef
	}
	cur := &l.nodes[ref]
	if !cur.Free {
		return nilRef, ErrNotFree
	}
	switch {
	case cur.Size == words:
		cur.Free = false
	case cur.Size > words:
		rest := Block{Offset: cur.Offset + words, Size: cur.Size - words, Free: true}
		cur.Size = words
		cur.Free = false
		// newNode may grow the slab, so cur must not be used past this point.
		l.insertAfter(ref, l.newNode(rest))
	default:
		return nilRef, ErrTooSmall
	}
	return ref, nil
}

// Release marks the used block ref free and coalesces it with its free
// neighbors. It returns the ref of the resulting free block.
func (l *List) Release(ref Ref) (Ref, Merge, error) {
	if !l.valid(ref) {
		return nilRef, 0, ErrBadRef
	}
	if l.nodes[ref].Free {
		return nilRef, 0, ErrAlreadyFree
	}
	l.nodes[ref].Free = true
	merged, how := l.Coalesce(ref)
	return merged, how, nil
}

// Coalesce merges the free block ref with a free predecessor and then with a
// free successor. The predecessor is checked first because absorbing ref
// changes which record the successor check starts from. The returned ref names
// the surviving block. Coalesce on a used or invalid ref does nothing.
func (l *List) Coalesce(ref Ref) (Ref, Merge) {
	if !l.valid(ref) || !l.nodes[ref].Free {
		return ref, 0
	}
	var how Merge
	cur := ref
	if p := l.nodes[cur].prev; p != nilRef && l.nodes[p].Free {
		l.nodes[p].Size += l.nodes[cur].Size
		l.unlink(cur)
		cur = p
		how |= MergedBackward
	}
	if n := l.nodes[cur].next; n != nilRef && l.nodes[n].Free {
		l.nodes[cur].Size += l.nodes[n].Size
		l.unlink(n)
		how |= MergedForward
	}
	return cur, how
}

// All yields the blocks in list order.
func (l *List) All() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for r := l.head; r != nilRef; r = l.nodes[r].next {
			if !yield(l.nodes[r].Block) {
				return
			}
		}
	}
}

// Blocks returns a copy of every block in list order.
func (l *List) Blocks() []Block {
	out := make([]Block, 0, l.count)
	for b := range l.All() {
		out = append(out, b)
	}
	return out
}

// Holes returns the free blocks in list order. The result is empty, not nil,
// when every word is in use.
func (l *List) Holes() []Hole {
	holes := make([]Hole, 0, l.count/2+1)
	for b := range l.All() {
		if b.Free {
			holes = append(holes, Hole{Offset: b.Offset, Size: b.Size})
		}
	}
	return holes
}

// Check validates the partition invariants and returns the first violation
// found, wrapped in ErrCorrupt.
func (l *List) Check() error {
	if l.head == nilRef {
		return fmt.Errorf("%w: empty list", ErrCorrupt)
	}
	want := 0
	seen := 0
	prevFree := false
	prev := nilRef
	for r := l.head; r != nilRef; r = l.nodes[r].next {
		n := &l.nodes[r]
		if !n.live {
			return fmt.Errorf("%w: dead record %d linked at word %d", ErrCorrupt, r, want)
		}
		if n.prev != prev {
			return fmt.Errorf("%w: record %d has prev %d, want %d", ErrCorrupt, r, n.prev, prev)
		}
		if n.Size <= 0 {
			return fmt.Errorf("%w: block at %d has size %d", ErrCorrupt, n.Offset, n.Size)
		}
		if n.Offset != want {
			return fmt.Errorf("%w: block at %d, want %d", ErrCorrupt, n.Offset, want)
		}
		if n.Free && prevFree {
			return fmt.Errorf("%w: adjacent free blocks at %d", ErrCorrupt, n.Offset)
		}
		prevFree = n.Free
		want = n.End()
		prev = r
		seen++
		if seen > l.count {
			return fmt.Errorf("%w: cycle after %d records", ErrCorrupt, seen)
		}
	}
	if want != l.total {
		return fmt.Errorf("%w: blocks end at %d, want %d", ErrCorrupt, want, l.total)
	}
	if seen != l.count {
		return fmt.Errorf("%w: %d linked records, count %d", ErrCorrupt, seen, l.count)
	}
	return nil
}

func (l *List) valid(ref Ref) bool {
	return ref >= 0 && int(ref) < len(l.nodes) && l.nodes[ref].live
}

// newNode stores b in a recycled slot when one is available.
func (l *List) newNode(b Block) Ref {
	n := node{Block: b, prev: nilRef, next: nilRef, live: true}
	l.count++
	if k := len(l.recycle); k > 0 {
		r := l.recycle[k-1]
		l.recycle = l.recycle[:k-1]
		l.nodes[r] = n
		return r
	}
	l.nodes = append(l.nodes, n)
	return Ref(len(l.nodes) - 1)
}

func (l *List) insertAfter(at, r Ref) {
	next := l.nodes[at].next
	l.nodes[r].prev = at
	l.nodes[r].next = next
	if next != nilRef {
		l.nodes[next].prev = r
	}
	l.nodes[at].next = r
}

// unlink removes r from the chain and recycles its slot.
func (l *List) unlink(r Ref) {
	n := l.nodes[r]
	if n.prev != nilRef {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nilRef {
		l.nodes[n.next].prev = n.prev
	}
	l.nodes[r] = node{prev: nilRef, next: nilRef}
	l.recycle = append(l.recycle, r)
	l.count--
}
