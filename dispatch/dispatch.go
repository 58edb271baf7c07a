// Package dispatch exposes the two halves of an interface value as data.
//
// A value.GetVal interface value is a fat handle: one word naming the
// method table of the concrete type and one word holding the object's
// address. VTable is the first word on its own, extracted once per concrete
// type and copied around like any other integer-sized value. Assemble glues
// a VTable and an address back into a callable interface value.
//
// Thin is a one-word handle to table-prefixed storage: a block whose first
// word is a VTable and whose remainder is the object.
package dispatch

import (
	"fmt"
	"unsafe"

	"github.com/softdevteam/vtable-bench/value"
)

// iface mirrors the runtime representation of a non-empty interface value.
type iface struct {
	tab  unsafe.Pointer
	data unsafe.Pointer
}

const (
	// WordSize is the size of a machine word.
	WordSize = unsafe.Sizeof(uintptr(0))
	// ThinSize is the size of a type-erased, non-polymorphic handle.
	ThinSize = unsafe.Sizeof(Thin{})
	// FatSize is the size of a polymorphic handle.
	FatSize = unsafe.Sizeof(value.GetVal(nil))
)

// CheckHandleSizes panics unless a thin handle is one word and a fat
// handle is two.
func CheckHandleSizes() {
	if ThinSize != WordSize || unsafe.Sizeof(unsafe.Pointer(nil)) != WordSize {
		panic(fmt.Sprintf("dispatch: thin handle is %d bytes, want %d", ThinSize, WordSize))
	}
	if FatSize != 2*WordSize || unsafe.Sizeof(iface{}) != FatSize {
		panic(fmt.Sprintf("dispatch: fat handle is %d bytes, want %d", FatSize, 2*WordSize))
	}
}

// VTable identifies the method set of one concrete type as seen through
// value.GetVal. Every instance of a type shares the same VTable.
type VTable struct {
	tab unsafe.Pointer
}

// VTableOf returns the method table of v's dynamic type.
func VTableOf(v value.GetVal) VTable {
	if v == nil {
		panic("dispatch: method table of nil interface")
	}
	return VTable{tab: (*iface)(unsafe.Pointer(&v)).tab}
}

// VTableFor returns the method table of *T, built from a transient
// instance that is discarded afterwards.
func VTableFor[T any, P value.Kind[T]]() VTable {
	v := value.New[T, P]()
	return VTableOf(P(&v))
}

// Assemble builds a fat handle from an object address and a method table.
// data must point at a live object of the type vt was taken from.
func Assemble(data unsafe.Pointer, vt VTable) value.GetVal {
	var v value.GetVal
	f := (*iface)(unsafe.Pointer(&v))
	f.tab = vt.tab
	f.data = data
	return v
}

// Store writes vt into the word at p.
//
// The word is written as an integer: p usually points at memory the garbage
// collector does not manage, and method tables are never freed or moved.
func Store(p unsafe.Pointer, vt VTable) {
	*(*uintptr)(p) = uintptr(vt.tab)
}

// Load reads the VTable stored at p.
func Load(p unsafe.Pointer) VTable {
	return VTable{tab: *(*unsafe.Pointer)(p)}
}

// Thin is a one-word handle to a block laid out as [VTable][object].
type Thin struct {
	p unsafe.Pointer
}

// NewThin wraps the address of a table-prefixed block.
func NewThin(p unsafe.Pointer) Thin {
	return Thin{p: p}
}

// Pointer returns the block address.
func (t Thin) Pointer() unsafe.Pointer {
	return t.p
}

// Fat reads the block's method table and pairs it with the address one
// word past the start of the block.
func (t Thin) Fat() value.GetVal {
	return Assemble(unsafe.Add(t.p, WordSize), Load(t.p))
}
