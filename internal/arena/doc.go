// Package arena provides an off-heap block allocator with explicit lifetimes.
//
// Blocks are carved out of anonymous memory mappings (see internal/mmap), so
// they are invisible to the garbage collector: a block lives until Free is
// called on it or the arena is closed. Callers control the exact layout of
// each block through Layout.
//
// Blocks must not hold pointers into the Go heap. Pointers to static data
// (such as method tables) and to other arena blocks are fine.
//
// # Usage
//
//	a, err := arena.New(0, arena.WithTracking())
//	if err != nil { ... }
//	defer a.Close()
//
//	word := arena.WordLayout()
//	l, off, _ := word.Extend(arena.LayoutOf[Payload]())
//	p, _ := a.Alloc(l)
//	*(*Payload)(unsafe.Add(p, off)) = payload
//	a.Free(p, l)
package arena
