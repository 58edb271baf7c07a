package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	a uint64
	b uint32
}

func TestLayoutOf(t *testing.T) {
	l := LayoutOf[pair]()
	assert.Equal(t, unsafe.Sizeof(pair{}), l.Size)
	assert.Equal(t, unsafe.Alignof(pair{}), l.Align)
	assert.True(t, l.Valid())

	w := WordLayout()
	assert.Equal(t, unsafe.Sizeof(uintptr(0)), w.Size)
	assert.Equal(t, unsafe.Alignof(uintptr(0)), w.Align)
}

func TestLayout_Extend(t *testing.T) {
	word := WordLayout()

	tests := []struct {
		name       string
		base, next Layout
		want       Layout
		offset     uintptr
	}{
		{"word then word", word, word, Layout{Size: 2 * word.Size, Align: word.Align}, word.Size},
		{"byte then word", Layout{Size: 1, Align: 1}, word, Layout{Size: 2 * word.Size, Align: word.Align}, word.Size},
		{"word then byte", word, Layout{Size: 1, Align: 1}, Layout{Size: word.Size + 1, Align: word.Align}, word.Size},
		{"empty then word", Layout{Size: 0, Align: 1}, word, word, 0},
		{"word then 16-aligned", word, Layout{Size: 16, Align: 16}, Layout{Size: 32, Align: 16}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, off, err := tt.base.Extend(tt.next)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.offset, off)
		})
	}
}

func TestLayout_ExtendInvalid(t *testing.T) {
	_, _, err := WordLayout().Extend(Layout{Size: 8, Align: 3})
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, _, err = Layout{Size: 8, Align: 0}.Extend(WordLayout())
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, _, err = Layout{Size: ^uintptr(0) - 2, Align: 1}.Extend(WordLayout())
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestLayout_ExtendNoTrailingPadding(t *testing.T) {
	l, off, err := WordLayout().Extend(Layout{Size: 1, Align: 1})
	require.NoError(t, err)

	assert.Equal(t, WordLayout().Size, off)
	assert.Equal(t, WordLayout().Size+1, l.Size)
	assert.Equal(t, WordLayout().Align, l.Align)
}
