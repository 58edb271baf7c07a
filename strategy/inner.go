package strategy

import (
	"fmt"

	"github.com/softdevteam/vtable-bench/dispatch"
	"github.com/softdevteam/vtable-bench/internal/arena"
	"github.com/softdevteam/vtable-bench/value"
)

type inner[T any, P value.Kind[T]] struct {
	a       *arena.Arena
	n       int
	want    uint
	layout  arena.Layout
	handles []dispatch.Thin
}

// NewInner lays out n one-word handles, each pointing at its own block that
// starts with the method table of T followed by the object.
func NewInner[T any, P value.Kind[T]](a *arena.Arena, n int) Strategy {
	return &inner[T, P]{a: a, n: n, want: value.Sentinel[T, P]()}
}

func (s *inner[T, P]) Name() string { return NameInner }

func (s *inner[T, P]) Len() int { return len(s.handles) }

func (s *inner[T, P]) Build() error {
	dispatch.CheckHandleSizes()

	// All instances of T share one method table.
	vt := dispatch.VTableFor[T, P]()
	l, off := PrefixedLayout[T]()
	s.layout = l

	s.handles = make([]dispatch.Thin, 0, s.n)
	for i := 0; i < s.n; i++ {
		h, err := writePrefixed[T, P](s.a, l, off, vt)
		if err != nil {
			s.Teardown()
			return fmt.Errorf("%s: element %d: %w", NameInner, i, err)
		}
		s.handles = append(s.handles, h)
	}
	return nil
}

func (s *inner[T, P]) Pass() {
	want := s.want
	for i, h := range s.handles {
		if got := h.Fat().Val(); got != want {
			mismatch(NameInner, i, got, want)
		}
	}
}

func (s *inner[T, P]) Teardown() {
	for _, h := range s.handles {
		s.a.Free(h.Pointer(), s.layout)
	}
	s.handles = nil
}

type innerShared[T any, P value.Kind[T]] struct {
	a       *arena.Arena
	n       int
	want    uint
	layout  arena.Layout
	owner   dispatch.Thin
	handles []dispatch.Thin
}

// NewInnerShared lays out n copies of one handle to a single
// [method table][object] block.
func NewInnerShared[T any, P value.Kind[T]](a *arena.Arena, n int) Strategy {
	return &innerShared[T, P]{a: a, n: n, want: value.Sentinel[T, P]()}
}

func (s *innerShared[T, P]) Name() string { return NameInnerShared }

func (s *innerShared[T, P]) Len() int { return len(s.handles) }

func (s *innerShared[T, P]) Build() error {
	dispatch.CheckHandleSizes()

	vt := dispatch.VTableFor[T, P]()
	l, off := PrefixedLayout[T]()
	s.layout = l

	h, err := writePrefixed[T, P](s.a, l, off, vt)
	if err != nil {
		return fmt.Errorf("%s: %w", NameInnerShared, err)
	}
	s.owner = h

	s.handles = make([]dispatch.Thin, s.n)
	for i := range s.handles {
		s.handles[i] = h
	}
	return nil
}

func (s *innerShared[T, P]) Pass() {
	want := s.want
	for i, h := range s.handles {
		if got := h.Fat().Val(); got != want {
			mismatch(NameInnerShared, i, got, want)
		}
	}
}

// Teardown frees the one shared block exactly once.
func (s *innerShared[T, P]) Teardown() {
	if s.owner.Pointer() != nil {
		s.a.Free(s.owner.Pointer(), s.layout)
		s.owner = dispatch.Thin{}
	}
	s.handles = nil
}
