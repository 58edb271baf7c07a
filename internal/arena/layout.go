package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrInvalidLayout is returned for a layout whose alignment is not a power of
// two or whose size overflows.
var ErrInvalidLayout = errors.New("arena: invalid layout")

// Layout describes the size and alignment of a block.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{Size: unsafe.Sizeof(v), Align: unsafe.Alignof(v)}
}

// WordLayout returns the layout of one machine word.
func WordLayout() Layout {
	return LayoutOf[uintptr]()
}

// Valid reports whether the alignment is a non-zero power of two.
func (l Layout) Valid() bool {
	return l.Align != 0 && l.Align&(l.Align-1) == 0
}

// Extend appends next after l, placing it at the first offset that satisfies
// next's alignment. It returns the combined layout and the offset of next.
// The combined size is not padded up to the combined alignment.
func (l Layout) Extend(next Layout) (Layout, uintptr, error) {
	if !l.Valid() || !next.Valid() {
		return Layout{}, 0, fmt.Errorf("%w: extend %v with %v", ErrInvalidLayout, l, next)
	}

	offset, ok := alignUp(l.Size, next.Align)
	if !ok {
		return Layout{}, 0, fmt.Errorf("%w: size overflow", ErrInvalidLayout)
	}
	size := offset + next.Size
	if size < offset {
		return Layout{}, 0, fmt.Errorf("%w: size overflow", ErrInvalidLayout)
	}

	return Layout{Size: size, Align: max(l.Align, next.Align)}, offset, nil
}

func (l Layout) String() string {
	return fmt.Sprintf("Layout{size: %d, align: %d}", l.Size, l.Align)
}

func alignUp(n, align uintptr) (uintptr, bool) {
	mask := align - 1
	r := (n + mask) &^ mask
	return r, r >= n
}
