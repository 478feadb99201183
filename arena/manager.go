package arena

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unsafe"

	"github.com/joshuapare/wordarena/arena/blocks"
	"github.com/joshuapare/wordarena/arena/fit"
	"github.com/joshuapare/wordarena/arena/snapshot"
	"github.com/joshuapare/wordarena/internal/backing"
	"github.com/joshuapare/wordarena/internal/buf"
	"github.com/joshuapare/wordarena/internal/writer"
)

// MaxWords is the largest arena Initialize accepts.
const MaxWords = snapshot.MaxWords

// Addr is a byte address inside the arena's backing buffer. The zero Addr is
// the null address.
type Addr uintptr

// Manager owns one arena: its backing buffer, its block list and the active
// fit strategy. A Manager is either Uninitialized or Ready. It is not safe for
// concurrent use.
type Manager struct {
	wordSize int
	strategy fit.Strategy
	reserve  Reserver
	log      *slog.Logger

	// Ready state; all zero while Uninitialized.
	backing []byte
	release func() error
	list    *blocks.List

	stats Stats
}

// New returns an Uninitialized manager with wordSize bytes per word. A nil
// strategy selects fit.BestFit.
func New(wordSize int, strategy fit.Strategy, opts ...Option) (*Manager, error) {
	if wordSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadWordSize, wordSize)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = defaultLogger()
	}
	if o.reserve == nil {
		o.reserve = backing.Reserve
	}
	if strategy == nil {
		strategy = fit.BestFit
	}
	return &Manager{
		wordSize: wordSize,
		strategy: strategy,
		reserve:  o.reserve,
		log:      o.logger,
	}, nil
}

// Initialize makes the manager Ready with a single free block of words words.
// A Ready manager is shut down first, but only once the new backing buffer has
// been reserved: on failure the previous state is left intact.
func (m *Manager) Initialize(words int) error {
	if words <= 0 {
		return fmt.Errorf("%w: %d words", ErrBadSize, words)
	}
	if words > MaxWords {
		return fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, words, MaxWords)
	}
	n := words * m.wordSize
	if n/m.wordSize != words {
		return fmt.Errorf("%w: %d words of %d bytes overflows", ErrBackingStore, words, m.wordSize)
	}

	data, release, err := m.reserve(n)
	if err != nil {
		m.log.Error("backing reservation failed", "bytes", n, "error", err)
		return fmt.Errorf("%w: %w", ErrBackingStore, err)
	}
	if len(data) < n {
		if release != nil {
			_ = release()
		}
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBackingStore, len(data), n)
	}
	list, err := blocks.New(words)
	if err != nil {
		_ = release()
		return err
	}

	if m.Initialized() {
		if err := m.Shutdown(); err != nil {
			m.log.Warn("implicit shutdown failed", "error", err)
		}
	}
	m.backing = data[:n:n]
	m.release = release
	m.list = list
	m.stats.Initializations++
	m.log.Debug("initialized", "words", words, "word_size", m.wordSize, "bytes", n)
	return nil
}

// Shutdown releases the backing buffer and every block. It is a no-op on an
// Uninitialized manager. The manager is Uninitialized afterwards even when
// releasing the buffer reports an error.
func (m *Manager) Shutdown() error {
	if !m.Initialized() {
		return nil
	}
	release := m.release
	m.backing = nil
	m.release = nil
	m.list = nil
	m.log.Debug("shut down")
	if release != nil {
		if err := release(); err != nil {
			return fmt.Errorf("arena: release backing store: %w", err)
		}
	}
	return nil
}

// Initialized reports whether the manager is Ready.
func (m *Manager) Initialized() bool { return m.list != nil }

// Allocate reserves ceil(n / WordSize()) words chosen by the active fit
// strategy and returns the address of the first byte.
func (m *Manager) Allocate(n int) (Addr, error) {
	if !m.Initialized() {
		return 0, ErrNotInitialized
	}
	m.stats.AllocCalls++
	if n <= 0 {
		m.stats.AllocFailures++
		return 0, fmt.Errorf("%w: %d bytes", ErrBadSize, n)
	}
	words := buf.CeilDiv(n, m.wordSize)

	offset, ok := m.strategy.Select(words, m.list.Holes())
	if !ok {
		m.stats.AllocFailures++
		m.log.Debug("allocate: no fit", "bytes", n, "words", words)
		return 0, fmt.Errorf("%w: %d words", ErrNoSpace, words)
	}

	ref, found := m.list.Locate(offset, true)
	if !found {
		m.stats.AllocFailures++
		m.log.Error("allocate: strategy chose a non-hole", "offset", offset, "words", words)
		return 0, fmt.Errorf("%w: no hole at word %d", ErrStrategyMismatch, offset)
	}
	before := m.list.Len()
	if _, err := m.list.Split(ref, words); err != nil {
		m.stats.AllocFailures++
		m.log.Error("allocate: split failed", "offset", offset, "words", words, "error", err)
		return 0, fmt.Errorf("%w: %w", ErrStrategyMismatch, err)
	}
	if m.list.Len() > before {
		m.stats.Splits++
	}
	m.stats.WordsAllocated += int64(words)

	m.log.Debug("allocated", "bytes", n, "words", words, "offset", offset)
	return m.addrOf(offset), nil
}

// Free returns the used block starting at addr to the arena and coalesces it
// with free neighbors. Addresses that do not start a used block, including a
// second Free of the same address, are rejected without changing state.
func (m *Manager) Free(addr Addr) error {
	if !m.Initialized() {
		return ErrNotInitialized
	}
	m.stats.FreeCalls++
	offset, err := m.offsetOf(addr)
	if err != nil {
		m.stats.FreeFailures++
		m.log.Debug("free rejected", "addr", uintptr(addr), "error", err)
		return err
	}
	ref, found := m.list.Locate(offset, false)
	if !found {
		m.stats.FreeFailures++
		m.log.Debug("free rejected", "offset", offset, "error", ErrBadAddress)
		return fmt.Errorf("%w: no used block at word %d", ErrBadAddress, offset)
	}
	b, _ := m.list.Block(ref)
	_, how, err := m.list.Release(ref)
	if err != nil {
		m.stats.FreeFailures++
		return fmt.Errorf("%w: %w", ErrBadAddress, err)
	}
	if how&blocks.MergedBackward != 0 {
		m.stats.CoalesceBackward++
	}
	if how&blocks.MergedForward != 0 {
		m.stats.CoalesceForward++
	}
	m.stats.WordsFreed += int64(b.Size)
	m.log.Debug("freed", "offset", offset, "words", b.Size)
	return nil
}

// SetFitStrategy replaces the active strategy for subsequent allocations.
// A nil strategy selects fit.BestFit.
func (m *Manager) SetFitStrategy(s fit.Strategy) {
	if s == nil {
		s = fit.BestFit
	}
	m.strategy = s
}

// Holes returns the current free blocks in offset order.
func (m *Manager) Holes() ([]blocks.Hole, error) {
	if !m.Initialized() {
		return nil, ErrNotInitialized
	}
	return m.list.Holes(), nil
}

// Blocks returns every block in offset order.
func (m *Manager) Blocks() ([]blocks.Block, error) {
	if !m.Initialized() {
		return nil, ErrNotInitialized
	}
	return m.list.Blocks(), nil
}

// HoleList returns the hole-list encoding of the current state.
func (m *Manager) HoleList() ([]byte, error) {
	if !m.Initialized() {
		return nil, ErrNotInitialized
	}
	return snapshot.HoleList(m.list), nil
}

// Bitmap returns the bitmap encoding of the current state.
func (m *Manager) Bitmap() ([]byte, error) {
	if !m.Initialized() {
		return nil, ErrNotInitialized
	}
	return snapshot.Bitmap(m.list), nil
}

// WriteHoleText writes the hole list as "[off, size] - [off, size]" to w.
func (m *Manager) WriteHoleText(w io.Writer) error {
	if !m.Initialized() {
		return ErrNotInitialized
	}
	_, err := io.WriteString(w, snapshot.FormatText(m.list.Holes()))
	return err
}

// Dump writes the hole list as text to path, creating or replacing the file.
func (m *Manager) Dump(path string) error {
	return m.DumpTo(context.Background(), &writer.FileWriter{Path: path})
}

// DumpTo hands the text hole list to sink.
func (m *Manager) DumpTo(ctx context.Context, sink writer.Sink) error {
	if !m.Initialized() {
		return ErrNotInitialized
	}
	text := snapshot.FormatText(m.list.Holes())
	if err := sink.WriteDump([]byte(text)); err != nil {
		m.log.ErrorContext(ctx, "dump failed", "error", err)
		return fmt.Errorf("arena: dump: %w", err)
	}
	m.log.DebugContext(ctx, "dumped hole list", "bytes", len(text))
	return nil
}

// Bytes returns the storage of the used block starting at addr.
func (m *Manager) Bytes(addr Addr) ([]byte, error) {
	if !m.Initialized() {
		return nil, ErrNotInitialized
	}
	offset, err := m.offsetOf(addr)
	if err != nil {
		return nil, err
	}
	ref, found := m.list.Locate(offset, false)
	if !found {
		return nil, fmt.Errorf("%w: no used block at word %d", ErrBadAddress, offset)
	}
	b, _ := m.list.Block(ref)
	start, end := b.Offset*m.wordSize, b.End()*m.wordSize
	return m.backing[start:end:end], nil
}

// Check validates the block-list invariants.
func (m *Manager) Check() error {
	if !m.Initialized() {
		return ErrNotInitialized
	}
	return m.list.Check()
}

// WordSize returns the number of bytes per word.
func (m *Manager) WordSize() int { return m.wordSize }

// Words returns the arena size in words, or 0 when Uninitialized.
func (m *Manager) Words() int {
	if !m.Initialized() {
		return 0
	}
	return m.list.Total()
}

// ArenaBase returns the address of the first byte of the arena, or 0 when
// Uninitialized.
func (m *Manager) ArenaBase() Addr {
	if !m.Initialized() {
		return 0
	}
	return Addr(unsafe.Pointer(unsafe.SliceData(m.backing)))
}

// ArenaByteLimit returns the arena size in bytes, or 0 when Uninitialized.
func (m *Manager) ArenaByteLimit() int {
	return len(m.backing)
}

func (m *Manager) addrOf(offset int) Addr {
	return m.ArenaBase() + Addr(offset*m.wordSize)
}

// offsetOf maps addr to a word index, rejecting null, out-of-range and
// mid-word addresses.
func (m *Manager) offsetOf(addr Addr) (int, error) {
	base := m.ArenaBase()
	if addr == 0 {
		return 0, fmt.Errorf("%w: null", ErrBadAddress)
	}
	if addr < base || addr >= base+Addr(len(m.backing)) {
		return 0, fmt.Errorf("%w: %#x outside arena", ErrBadAddress, uintptr(addr))
	}
	rel := int(addr - base)
	if rel%m.wordSize != 0 {
		return 0, fmt.Errorf("%w: %#x not word aligned", ErrBadAddress, uintptr(addr))
	}
	return rel / m.wordSize, nil
}
