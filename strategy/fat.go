package strategy

import (
	"fmt"

	"github.com/softdevteam/vtable-bench/dispatch"
	"github.com/softdevteam/vtable-bench/internal/arena"
	"github.com/softdevteam/vtable-bench/value"
)

type fat[T any, P value.Kind[T]] struct {
	a       *arena.Arena
	n       int
	want    uint
	handles []value.GetVal
}

// NewFat lays out n independently allocated objects of kind T, each held
// through its own interface value.
func NewFat[T any, P value.Kind[T]](a *arena.Arena, n int) Strategy {
	return &fat[T, P]{a: a, n: n, want: value.Sentinel[T, P]()}
}

func (s *fat[T, P]) Name() string { return NameFat }

func (s *fat[T, P]) Len() int { return len(s.handles) }

func (s *fat[T, P]) Build() error {
	dispatch.CheckHandleSizes()

	s.handles = make([]value.GetVal, 0, s.n)
	for i := 0; i < s.n; i++ {
		p, err := arena.NewObject(s.a, value.New[T, P]())
		if err != nil {
			s.Teardown()
			return fmt.Errorf("%s: element %d: %w", NameFat, i, err)
		}
		s.handles = append(s.handles, P(p))
	}
	return nil
}

func (s *fat[T, P]) Pass() {
	want := s.want
	for i, h := range s.handles {
		if got := h.Val(); got != want {
			mismatch(NameFat, i, got, want)
		}
	}
}

func (s *fat[T, P]) Teardown() {
	for _, h := range s.handles {
		arena.FreeObject(s.a, (*T)(h.(P)))
	}
	s.handles = nil
}

type fatShared[T any, P value.Kind[T]] struct {
	a       *arena.Arena
	n       int
	want    uint
	owner   *T
	handles []value.GetVal
}

// NewFatShared lays out n copies of one interface value referring to a
// single object of kind T.
func NewFatShared[T any, P value.Kind[T]](a *arena.Arena, n int) Strategy {
	return &fatShared[T, P]{a: a, n: n, want: value.Sentinel[T, P]()}
}

func (s *fatShared[T, P]) Name() string { return NameFatShared }

func (s *fatShared[T, P]) Len() int { return len(s.handles) }

func (s *fatShared[T, P]) Build() error {
	dispatch.CheckHandleSizes()

	p, err := arena.NewObject(s.a, value.New[T, P]())
	if err != nil {
		return fmt.Errorf("%s: %w", NameFatShared, err)
	}
	s.owner = p

	h := value.GetVal(P(p))
	s.handles = make([]value.GetVal, s.n)
	for i := range s.handles {
		s.handles[i] = h
	}
	return nil
}

func (s *fatShared[T, P]) Pass() {
	want := s.want
	for i, h := range s.handles {
		if got := h.Val(); got != want {
			mismatch(NameFatShared, i, got, want)
		}
	}
}

// Teardown frees the one shared object. The handles alias it and are
// dropped without being freed.
func (s *fatShared[T, P]) Teardown() {
	if s.owner != nil {
		arena.FreeObject(s.a, s.owner)
		s.owner = nil
	}
	s.handles = nil
}
