package arena

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softdevteam/vtable-bench/internal/resource"
)

func newArena(t testing.TB, chunkSize int, opts ...Option) *Arena {
	t.Helper()
	a, err := New(chunkSize, opts...)
	require.NoError(t, err)
	return a
}

func TestArena_New(t *testing.T) {
	t.Run("default chunk size", func(t *testing.T) {
		a := newArena(t, 0)
		defer a.Close()

		assert.Equal(t, DefaultChunkSize, a.chunkSize)
		assert.Equal(t, uint64(0), a.Stats().ChunksAllocated, "chunks are mapped lazily")
	})

	t.Run("rounds up to power of two", func(t *testing.T) {
		a := newArena(t, 1000)
		defer a.Close()

		assert.Equal(t, 1024, a.chunkSize)
	})
}

func TestArena_Alloc(t *testing.T) {
	t.Run("basic allocation", func(t *testing.T) {
		a := newArena(t, 1024)
		defer a.Close()

		l := Layout{Size: 100, Align: 8}
		p, err := a.Alloc(l)
		require.NoError(t, err)
		require.NotNil(t, p)

		buf := unsafe.Slice((*byte)(p), 100)
		for i, b := range buf {
			if b != 0 {
				t.Errorf("byte at index %d not zero: %d", i, b)
			}
		}

		a.Free(p, l)
	})

	t.Run("zero size", func(t *testing.T) {
		a := newArena(t, 1024)
		defer a.Close()

		p, err := a.Alloc(Layout{Size: 0, Align: 1})
		require.NoError(t, err)
		assert.Nil(t, p)
		a.Free(nil, Layout{Size: 0, Align: 1})
	})

	t.Run("alignment", func(t *testing.T) {
		a := newArena(t, 4096)
		defer a.Close()

		for _, align := range []uintptr{1, 2, 4, 8, 16, 64} {
			for _, size := range []uintptr{1, 3, 5, 7, 9, 15, 17} {
				p, err := a.Alloc(Layout{Size: size, Align: align})
				require.NoError(t, err)
				want := max(align, DefaultAlignment)
				assert.Zero(t, uintptr(p)%want, "size=%d align=%d ptr=%p", size, align, p)
			}
		}
	})

	t.Run("multiple chunks", func(t *testing.T) {
		a := newArena(t, 128)
		defer a.Close()

		for i := 0; i < 10; i++ {
			_, err := a.Alloc(Layout{Size: 64, Align: 8})
			require.NoError(t, err)
		}

		assert.Greater(t, a.Stats().ChunksAllocated, uint64(1))
	})

	t.Run("too large", func(t *testing.T) {
		a := newArena(t, 128)
		defer a.Close()

		_, err := a.Alloc(Layout{Size: 256, Align: 8})
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("invalid layout", func(t *testing.T) {
		a := newArena(t, 128)
		defer a.Close()

		_, err := a.Alloc(Layout{Size: 8, Align: 6})
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("distinct blocks", func(t *testing.T) {
		a := newArena(t, 1024)
		defer a.Close()

		seen := make(map[uintptr]bool)
		l := LayoutOf[uint64]()
		for i := 0; i < 300; i++ {
			p, err := a.Alloc(l)
			require.NoError(t, err)
			require.False(t, seen[uintptr(p)], "block handed out twice")
			seen[uintptr(p)] = true
			*(*uint64)(p) = uint64(i)
		}
	})
}

func TestArena_FreeReuses(t *testing.T) {
	a := newArena(t, 1024, WithTracking())
	defer a.Close()

	l := Layout{Size: 16, Align: 8}
	p1, err := a.Alloc(l)
	require.NoError(t, err)
	a.Free(p1, l)

	p2, err := a.Alloc(l)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Equal(t, uint64(1), a.Stats().Reused)

	a.Free(p2, l)
}

func TestArena_FreeListDoesNotMixClasses(t *testing.T) {
	a := newArena(t, 1024)
	defer a.Close()

	small := Layout{Size: 8, Align: 8}
	big := Layout{Size: 32, Align: 8}

	p, err := a.Alloc(small)
	require.NoError(t, err)
	a.Free(p, small)

	q, err := a.Alloc(big)
	require.NoError(t, err)
	assert.NotEqual(t, p, q)
	a.Free(q, big)
}

func TestArena_Stats(t *testing.T) {
	a := newArena(t, 1024)
	defer a.Close()

	l := Layout{Size: 10, Align: 8}
	ps := make([]unsafe.Pointer, 5)
	for i := range ps {
		p, err := a.Alloc(l)
		require.NoError(t, err)
		ps[i] = p
	}

	stats := a.Stats()
	assert.Equal(t, uint64(5), stats.TotalAllocs)
	assert.Equal(t, uint64(5), stats.LiveBlocks)
	assert.Equal(t, uint64(50), stats.BytesUsed)
	assert.Equal(t, uint64(1024), stats.BytesReserved)

	for _, p := range ps {
		a.Free(p, l)
	}

	stats = a.Stats()
	assert.Equal(t, uint64(5), stats.TotalFrees)
	assert.Equal(t, uint64(0), stats.LiveBlocks)
	assert.Equal(t, uint64(0), stats.BytesUsed)
}

func TestArena_Tracking(t *testing.T) {
	t.Run("double free panics", func(t *testing.T) {
		a := newArena(t, 1024, WithTracking())
		defer a.Close()

		l := WordLayout()
		p, err := a.Alloc(l)
		require.NoError(t, err)
		assert.True(t, a.IsLive(p))

		a.Free(p, l)
		assert.False(t, a.IsLive(p))
		assert.Panics(t, func() { a.Free(p, l) })
	})

	t.Run("foreign pointer panics", func(t *testing.T) {
		a := newArena(t, 1024, WithTracking())
		defer a.Close()

		var x uint64
		assert.Panics(t, func() { a.Free(unsafe.Pointer(&x), LayoutOf[uint64]()) })
	})

	t.Run("layout mismatch panics", func(t *testing.T) {
		a := newArena(t, 1024, WithTracking())
		defer a.Close()

		p, err := a.Alloc(Layout{Size: 16, Align: 8})
		require.NoError(t, err)
		assert.Panics(t, func() { a.Free(p, Layout{Size: 32, Align: 8}) })
	})

	t.Run("untracked over-free panics", func(t *testing.T) {
		a := newArena(t, 1024)
		defer a.Close()

		l := WordLayout()
		p, err := a.Alloc(l)
		require.NoError(t, err)
		a.Free(p, l)
		assert.Panics(t, func() { a.Free(p, l) })
	})
}

func TestArena_NewObject(t *testing.T) {
	a := newArena(t, 1024, WithTracking())
	defer a.Close()

	p, err := NewObject(a, pair{a: 42, b: 7})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), p.a)
	assert.Equal(t, uint32(7), p.b)
	assert.True(t, a.IsLive(unsafe.Pointer(p)))

	FreeObject(a, p)
	assert.Equal(t, uint64(0), a.Stats().LiveBlocks)
}

func TestArena_Close(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		a := newArena(t, 1024)
		l := WordLayout()
		p, err := a.Alloc(l)
		require.NoError(t, err)
		a.Free(p, l)

		require.NoError(t, a.Close())
		require.NoError(t, a.Close())

		_, err = a.Alloc(l)
		assert.ErrorIs(t, err, ErrClosed)
		assert.Equal(t, uint64(0), a.Stats().BytesReserved)
	})

	t.Run("leak", func(t *testing.T) {
		a := newArena(t, 1024)
		_, err := a.Alloc(WordLayout())
		require.NoError(t, err)

		err = a.Close()
		assert.ErrorIs(t, err, ErrLeak)
	})
}

func TestArena_MemoryAcquirer(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 2048})
	a := newArena(t, 1024, WithMemoryAcquirer(rc))

	l := Layout{Size: 512, Align: 8}
	for i := 0; i < 4; i++ {
		_, err := a.Alloc(l)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2048), rc.MemoryUsage())

	_, err := a.Alloc(l)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

	_, err = a.AllocContext(context.Background(), l)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

	assert.ErrorIs(t, a.Close(), ErrLeak)
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestArena_Usage(t *testing.T) {
	a := newArena(t, 1024)
	defer a.Close()

	assert.Zero(t, a.Usage())

	l := Layout{Size: 512, Align: 8}
	p, err := a.Alloc(l)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, a.Usage(), 0.01)
	assert.Contains(t, a.String(), "live: 1")

	a.Free(p, l)
}

func TestArena_Concurrent(t *testing.T) {
	a := newArena(t, DefaultChunkSize, WithTracking())
	defer a.Close()

	const goroutines = 16
	const allocsPerGoroutine = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)

	l := LayoutOf[uint64]()
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < allocsPerGoroutine; j++ {
				p, err := a.Alloc(l)
				if err != nil {
					t.Error(err)
					return
				}
				*(*uint64)(p) = uint64(j)
				a.Free(p, l)
			}
		}()
	}

	wg.Wait()

	stats := a.Stats()
	assert.Equal(t, uint64(goroutines*allocsPerGoroutine), stats.TotalAllocs)
	assert.Equal(t, uint64(0), stats.LiveBlocks)
}

func BenchmarkArena_Alloc(b *testing.B) {
	sizes := []uintptr{8, 16, 64, 256}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			a := newArena(b, DefaultChunkSize)
			defer a.Close()

			l := Layout{Size: size, Align: 8}
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				p, _ := a.Alloc(l)
				a.Free(p, l)
			}
		})
	}
}

func BenchmarkArena_vs_New(b *testing.B) {
	b.Run("arena", func(b *testing.B) {
		a := newArena(b, DefaultChunkSize)
		defer a.Close()

		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			p, _ := NewObject(a, pair{a: uint64(i)})
			FreeObject(a, p)
		}
	})

	b.Run("new", func(b *testing.B) {
		b.ReportAllocs()
		var sink *pair
		for i := 0; i < b.N; i++ {
			sink = &pair{a: uint64(i)}
		}
		_ = sink
	})
}
