package arena

// Stats holds operation counters for a Manager. Counters survive Shutdown and
// re-initialization.
type Stats struct {
	Initializations  int   // successful Initialize calls
	AllocCalls       int   // Allocate calls made while Ready
	AllocFailures    int   // Allocate calls that returned an error
	FreeCalls        int   // Free calls made while Ready
	FreeFailures     int   // Free calls that returned an error
	Splits           int   // allocations that left a remainder hole
	CoalesceBackward int   // frees merged into the preceding hole
	CoalesceForward  int   // frees that absorbed the following hole
	WordsAllocated   int64 // total words handed out
	WordsFreed       int64 // total words returned
}

// Metrics describes the current layout of the arena.
type Metrics struct {
	Words         int     // arena size in words
	WordSize      int     // bytes per word
	Blocks        int     // number of blocks
	UsedWords     int     // words in used blocks
	FreeWords     int     // words in holes
	Holes         int     // number of holes
	LargestHole   int     // size of the largest hole in words
	Utilization   float64 // UsedWords / Words
	Fragmentation float64 // 1 - LargestHole / FreeWords; 0 when nothing is free
}

// Stats returns a copy of the operation counters.
func (m *Manager) Stats() Stats { return m.stats }

// Metrics returns a snapshot of the arena layout. All fields except WordSize
// are zero when Uninitialized.
func (m *Manager) Metrics() Metrics {
	mt := Metrics{WordSize: m.wordSize}
	if !m.Initialized() {
		return mt
	}
	mt.Words = m.list.Total()
	for b := range m.list.All() {
		mt.Blocks++
		if !b.Free {
			mt.UsedWords += b.Size
			continue
		}
		mt.Holes++
		mt.FreeWords += b.Size
		mt.LargestHole = max(mt.LargestHole, b.Size)
	}
	mt.Utilization = float64(mt.UsedWords) / float64(mt.Words)
	if mt.FreeWords > 0 {
		mt.Fragmentation = 1 - float64(mt.LargestHole)/float64(mt.FreeWords)
	}
	return mt
}
