// Package value provides the two value kinds whose method is dispatched
// dynamically by every benchmark.
//
// NoRead and WithRead have the same size. NoRead.Val never touches its
// field; WithRead.Val always loads it. Comparing the two separates the cost
// of the memory access from the cost of the dispatch itself.
package value

const (
	// SentinelNoRead is returned by NoRead.Val.
	SentinelNoRead uint = 0xdeadbeef
	// SentinelWithRead is stored in, and returned by, WithRead.
	SentinelWithRead uint = 0xfeedc0de
)

// GetVal is the capability looked up dynamically.
type GetVal interface {
	Val() uint
}

// Kind constrains a value kind T whose pointer implements GetVal.
//
// Methods use pointer receivers so that an interface value holding a *T
// carries the object address as its data word.
type Kind[T any] interface {
	*T
	GetVal
	// Init writes the kind's sentinel into the receiver.
	Init()
	// Sentinel returns the value Val must return. It never reads the receiver.
	Sentinel() uint
}

// New returns a freshly initialized T.
func New[T any, P Kind[T]]() T {
	var v T
	P(&v).Init()
	return v
}

// Sentinel returns the designated sentinel of kind T.
func Sentinel[T any, P Kind[T]]() uint {
	return P(nil).Sentinel()
}

// NoRead stores a sentinel but never reads it back.
type NoRead struct {
	_i uint
}

// Init implements Kind.
func (s *NoRead) Init() { s._i = SentinelNoRead }

// Sentinel implements Kind.
func (*NoRead) Sentinel() uint { return SentinelNoRead }

// Val returns SentinelNoRead without reading the receiver.
func (*NoRead) Val() uint { return SentinelNoRead }

// WithRead stores a sentinel and returns it from Val.
type WithRead struct {
	i uint
}

// Init implements Kind.
func (s *WithRead) Init() { s.i = SentinelWithRead }

// Sentinel implements Kind.
func (*WithRead) Sentinel() uint { return SentinelWithRead }

// Val returns the stored field.
func (s *WithRead) Val() uint { return s.i }
