package arena

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"sync"
	"unsafe"

	"github.com/softdevteam/vtable-bench/internal/mmap"
)

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(ctx context.Context, amount int64) error
	ReleaseMemory(amount int64)
}

var (
	// ErrClosed is returned when allocating from a closed arena.
	ErrClosed = errors.New("arena: closed")
	// ErrTooLarge is returned when a block does not fit in a chunk.
	ErrTooLarge = errors.New("arena: block larger than chunk")
	// ErrLeak is returned by Close when blocks were never freed.
	ErrLeak = errors.New("arena: blocks still live at close")
)

const (
	// DefaultChunkSize is the default size of a chunk (1MB).
	DefaultChunkSize = 1024 * 1024
	// DefaultAlignment is the minimum block alignment (one word).
	DefaultAlignment = unsafe.Sizeof(uintptr(0))
)

// Stats tracks arena memory usage metrics.
//
// Note on semantics:
//   - BytesReserved: total memory mapped from the OS
//   - BytesUsed: bytes of live blocks, as requested (before alignment)
//   - TotalAllocs / TotalFrees: cumulative counts
//   - LiveBlocks: TotalAllocs - TotalFrees
//   - Reused: allocations served from a free list
type Stats struct {
	ChunksAllocated uint64
	BytesReserved   uint64
	BytesUsed       uint64
	TotalAllocs     uint64
	TotalFrees      uint64
	LiveBlocks      uint64
	Reused          uint64
}

// Arena is an off-heap block allocator.
//
// Alloc and Free are safe for concurrent use. Close must not run
// concurrently with either.
type Arena struct {
	mu        sync.Mutex
	chunkSize int
	chunks    []*mmap.Mapping
	current   []byte
	offset    uintptr

	// free maps a size class to the head of an intrusive list threaded
	// through the first word of each freed block.
	free map[Layout]unsafe.Pointer

	tracking bool
	live     map[uintptr]Layout

	acquirer MemoryAcquirer
	stats    Stats
	closed   bool
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithMemoryAcquirer charges every chunk against acquirer.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(a *Arena) {
		a.acquirer = acquirer
	}
}

// WithTracking records every live block. Freeing a block that is not live
// (a double free or a foreign pointer) then panics.
func WithTracking() Option {
	return func(a *Arena) {
		a.tracking = true
	}
}

// New creates a new Arena with the given chunk size, rounded up to a power of two.
func New(chunkSize int, opts ...Option) (*Arena, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	chunkSize = 1 << bits.Len(uint(chunkSize-1)) //nolint:gosec // chunkSize > 0

	a := &Arena{
		chunkSize: chunkSize,
		free:      make(map[Layout]unsafe.Pointer),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.tracking {
		a.live = make(map[uintptr]Layout)
	}

	return a, nil
}

// Alloc returns a zero-filled block for l. Freed blocks are not re-zeroed.
// A zero-size layout yields a nil pointer.
func (a *Arena) Alloc(l Layout) (unsafe.Pointer, error) {
	return a.AllocContext(context.Background(), l)
}

// AllocContext is Alloc with a context for the memory acquirer.
func (a *Arena) AllocContext(ctx context.Context, l Layout) (unsafe.Pointer, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, l)
	}
	if l.Size == 0 {
		return nil, nil
	}

	class, err := a.classOf(l)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrClosed
	}

	p := a.free[class]
	if p != nil {
		a.free[class] = *(*unsafe.Pointer)(p)
		a.stats.Reused++
	} else {
		p, err = a.bump(ctx, class)
		if err != nil {
			return nil, err
		}
	}

	if a.tracking {
		a.live[uintptr(p)] = class
	}
	a.stats.TotalAllocs++
	a.stats.LiveBlocks++
	a.stats.BytesUsed += uint64(l.Size)

	return p, nil
}

// Free returns the block at p, allocated with layout l, to the arena.
// Free(nil, l) is a no-op.
func (a *Arena) Free(p unsafe.Pointer, l Layout) {
	if p == nil {
		return
	}

	class, err := a.classOf(l)
	if err != nil {
		panic(fmt.Sprintf("arena: free with %v: %v", l, err))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		panic("arena: free after close")
	}

	if a.tracking {
		got, ok := a.live[uintptr(p)]
		if !ok {
			panic(fmt.Sprintf("arena: free of block %p that is not live (double free?)", p))
		}
		if got != class {
			panic(fmt.Sprintf("arena: block %p freed with %v, allocated with %v", p, class, got))
		}
		delete(a.live, uintptr(p))
	}
	if a.stats.LiveBlocks == 0 {
		panic("arena: more frees than allocations")
	}

	// Link through the first word. The link is written as an integer so no
	// write barrier sees the stale contents of the block.
	*(*uintptr)(p) = uintptr(a.free[class])
	a.free[class] = p

	a.stats.TotalFrees++
	a.stats.LiveBlocks--
	a.stats.BytesUsed -= uint64(l.Size)
}

// NewObject allocates a block for T and copies v into it.
// T must not contain pointers into the Go heap.
func NewObject[T any](a *Arena, v T) (*T, error) {
	p, err := a.Alloc(LayoutOf[T]())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &v, nil
	}
	dst := (*T)(p)
	*dst = v
	return dst, nil
}

// FreeObject frees a block obtained from NewObject.
func FreeObject[T any](a *Arena, p *T) {
	l := LayoutOf[T]()
	if l.Size == 0 {
		return
	}
	a.Free(unsafe.Pointer(p), l)
}

// IsLive reports whether p is a live block. It always returns false without
// WithTracking.
func (a *Arena) IsLive(p unsafe.Pointer) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.live[uintptr(p)]
	return ok
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Close unmaps every chunk. Pointers into the arena become invalid.
// Close returns ErrLeak if any block was still live; the memory is released
// regardless. Close is idempotent.
func (a *Arena) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	var errs []error
	if a.stats.LiveBlocks > 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrLeak, a.stats.LiveBlocks))
	}

	for _, m := range a.chunks {
		if err := m.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.acquirer != nil && a.stats.BytesReserved > 0 {
		a.acquirer.ReleaseMemory(int64(a.stats.BytesReserved)) //nolint:gosec // bounded by mapped memory
	}

	a.chunks = nil
	a.current = nil
	a.offset = 0
	a.free = nil
	a.live = nil
	a.stats.BytesReserved = 0

	return errors.Join(errs...)
}

// Usage returns the memory usage percentage.
func (a *Arena) Usage() float64 {
	stats := a.Stats()
	if stats.BytesReserved == 0 {
		return 0
	}
	return float64(stats.BytesUsed) / float64(stats.BytesReserved) * 100
}

func (a *Arena) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{chunks: %d, reserved: %.2f MB, used: %.2f MB, live: %d, allocs: %d, frees: %d}",
		stats.ChunksAllocated,
		float64(stats.BytesReserved)/(1024*1024),
		float64(stats.BytesUsed)/(1024*1024),
		stats.LiveBlocks,
		stats.TotalAllocs,
		stats.TotalFrees,
	)
}

// classOf maps a layout to the size class it is served from. Every class
// is at least one word in size and alignment so a freed block can hold its
// free-list link.
func (a *Arena) classOf(l Layout) (Layout, error) {
	align := max(l.Align, DefaultAlignment)
	size, ok := alignUp(max(l.Size, DefaultAlignment), align)
	if !ok {
		return Layout{}, fmt.Errorf("%w: size overflow", ErrInvalidLayout)
	}
	if size > uintptr(a.chunkSize) || align > uintptr(a.chunkSize) {
		return Layout{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	return Layout{Size: size, Align: align}, nil
}

// bump carves class out of the current chunk, mapping a new one if needed.
// Called with a.mu held.
func (a *Arena) bump(ctx context.Context, class Layout) (unsafe.Pointer, error) {
	if a.current != nil {
		if p, ok := a.tryBump(class); ok {
			return p, nil
		}
	}

	if err := a.allocateChunkLocked(ctx); err != nil {
		return nil, err
	}

	p, ok := a.tryBump(class)
	if !ok {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, class.Size)
	}
	return p, nil
}

func (a *Arena) tryBump(class Layout) (unsafe.Pointer, bool) {
	// Chunks are page aligned, so aligning the offset aligns the address.
	start, ok := alignUp(a.offset, class.Align)
	if !ok {
		return nil, false
	}
	end := start + class.Size
	if end < start || end > uintptr(len(a.current)) {
		return nil, false
	}
	a.offset = end
	return unsafe.Pointer(&a.current[start]), true //nolint:gosec // unsafe is required for arena implementation
}

func (a *Arena) allocateChunkLocked(ctx context.Context) error {
	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(ctx, int64(a.chunkSize)); err != nil {
			return err
		}
	}

	// Off-heap anonymous mapping keeps blocks out of the GC's sight.
	mapping, err := mmap.MapAnon(a.chunkSize)
	if err != nil {
		if a.acquirer != nil {
			a.acquirer.ReleaseMemory(int64(a.chunkSize))
		}
		return fmt.Errorf("failed to map anonymous memory for chunk: %w", err)
	}
	_ = mapping.Advise(mmap.AccessWillNeed)

	a.chunks = append(a.chunks, mapping)
	a.current = mapping.Bytes()
	a.offset = 0

	a.stats.ChunksAllocated++
	a.stats.BytesReserved += uint64(mapping.Size()) //nolint:gosec // mapping sizes are positive

	return nil
}
