package dispatch

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softdevteam/vtable-bench/value"
)

func TestCheckHandleSizes(t *testing.T) {
	assert.NotPanics(t, CheckHandleSizes)
	assert.Equal(t, WordSize, ThinSize)
	assert.Equal(t, 2*WordSize, FatSize)
}

func TestVTableOf_SharedPerType(t *testing.T) {
	a := &value.NoRead{}
	b := &value.NoRead{}
	c := &value.WithRead{}

	assert.Equal(t, VTableOf(a), VTableOf(b))
	assert.NotEqual(t, VTableOf(a), VTableOf(c))
	assert.Equal(t, VTableOf(a), VTableFor[value.NoRead]())
	assert.Equal(t, VTableOf(c), VTableFor[value.WithRead]())
	assert.NotEqual(t, VTable{}, VTableOf(a))
}

func TestVTableOf_NilPanics(t *testing.T) {
	assert.Panics(t, func() { VTableOf(nil) })
}

func TestAssemble(t *testing.T) {
	t.Run("with read", func(t *testing.T) {
		obj := value.New[value.WithRead]()
		v := Assemble(unsafe.Pointer(&obj), VTableFor[value.WithRead]())

		assert.Equal(t, value.SentinelWithRead, v.Val())
		got, ok := v.(*value.WithRead)
		require.True(t, ok, "assembled value keeps its dynamic type")
		assert.Same(t, &obj, got)
	})

	t.Run("no read", func(t *testing.T) {
		obj := value.New[value.NoRead]()
		v := Assemble(unsafe.Pointer(&obj), VTableFor[value.NoRead]())
		assert.Equal(t, value.SentinelNoRead, v.Val())
	})
}

func TestStoreLoad(t *testing.T) {
	var word uintptr
	vt := VTableFor[value.WithRead]()

	Store(unsafe.Pointer(&word), vt)
	assert.NotZero(t, word)
	assert.Equal(t, vt, Load(unsafe.Pointer(&word)))
}

func TestThin_Fat(t *testing.T) {
	// [VTable][WithRead] laid out in a two-word buffer.
	var block [2]uintptr
	p := unsafe.Pointer(&block[0])

	Store(p, VTableFor[value.WithRead]())
	*(*value.WithRead)(unsafe.Add(p, WordSize)) = value.New[value.WithRead]()

	th := NewThin(p)
	assert.Equal(t, p, th.Pointer())
	assert.Equal(t, value.SentinelWithRead, th.Fat().Val())
	assert.Equal(t, unsafe.Pointer(&block[1]), unsafe.Pointer(th.Fat().(*value.WithRead)))
}
