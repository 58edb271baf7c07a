// Package strategy implements the four collection layouts whose dispatch
// cost is measured.
//
//   - Fat: N independently allocated objects, each held through an interface
//     value (method table + data address).
//   - FatShared: N copies of one interface value.
//   - Inner: N one-word handles, each to its own [method table][object] block.
//   - InnerShared: N copies of one handle to a single such block.
//
// Objects and blocks come from an arena, so every allocation has an explicit
// lifetime: Teardown releases exactly what Build allocated, once.
//
// Pass panics if any element reports the wrong sentinel. A broken layout
// must never produce a timing.
package strategy

import (
	"fmt"
	"unsafe"

	"github.com/softdevteam/vtable-bench/dispatch"
	"github.com/softdevteam/vtable-bench/internal/arena"
	"github.com/softdevteam/vtable-bench/value"
)

// Layout names.
const (
	NameFat         = "fat"
	NameFatShared   = "fat-multiref"
	NameInner       = "innervtable"
	NameInnerShared = "innervtable-multiref"
)

// Strategy is one way of laying out a collection of value.GetVal objects.
type Strategy interface {
	// Name returns the layout name.
	Name() string
	// Build allocates the collection.
	Build() error
	// Pass calls Val once on every element, in order, and panics on a wrong
	// result.
	Pass()
	// Teardown releases everything Build allocated. It is idempotent.
	Teardown()
	// Len returns the number of elements.
	Len() int
}

// Factory constructs a Strategy over n elements allocated from a.
type Factory func(a *arena.Arena, n int) Strategy

// mismatch is kept out of line so the pass loops stay small.
//
//go:noinline
func mismatch(name string, i int, got, want uint) {
	panic(fmt.Sprintf("strategy %s: element %d returned %#x, want %#x", name, i, got, want))
}

// PrefixedLayout returns the layout of a block holding one method table word
// followed by a T, and the offset of the T. It panics unless the block is
// exactly one word larger than T.
func PrefixedLayout[T any]() (arena.Layout, uintptr) {
	obj := arena.LayoutOf[T]()
	l, off, err := arena.WordLayout().Extend(obj)
	if err != nil {
		panic(fmt.Sprintf("strategy: prefixed layout: %v", err))
	}
	if l.Size != dispatch.WordSize+unsafe.Sizeof(*new(T)) {
		panic(fmt.Sprintf("strategy: prefixed layout is %d bytes, want %d", l.Size, dispatch.WordSize+obj.Size))
	}
	if off != dispatch.WordSize {
		panic(fmt.Sprintf("strategy: object offset is %d, want %d", off, dispatch.WordSize))
	}
	return l, off
}

// writePrefixed allocates one [method table][T] block.
func writePrefixed[T any, P value.Kind[T]](a *arena.Arena, l arena.Layout, off uintptr, vt dispatch.VTable) (dispatch.Thin, error) {
	p, err := a.Alloc(l)
	if err != nil {
		return dispatch.Thin{}, err
	}
	dispatch.Store(p, vt)
	*(*T)(unsafe.Add(p, off)) = value.New[T, P]()
	return dispatch.NewThin(p), nil
}
