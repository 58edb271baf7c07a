package testutil

import "sync/atomic"

// SentinelCounted is stored in, and returned by, Counted.
const SentinelCounted uint = 0xc0ffee

var countedCalls atomic.Uint64

// Counted is a value kind that counts calls to Val across all instances.
type Counted struct {
	i uint
}

// Init implements value.Kind.
func (c *Counted) Init() { c.i = SentinelCounted }

// Sentinel implements value.Kind.
func (*Counted) Sentinel() uint { return SentinelCounted }

// Val returns the stored field and bumps the call counter.
func (c *Counted) Val() uint {
	countedCalls.Add(1)
	return c.i
}

// CountedCalls returns the number of Counted.Val calls since the last reset.
func CountedCalls() uint64 {
	return countedCalls.Load()
}

// ResetCountedCalls zeroes the call counter.
func ResetCountedCalls() {
	countedCalls.Store(0)
}

// Broken is a value kind whose Val never matches its sentinel.
type Broken struct {
	i uint
}

// Init implements value.Kind.
func (b *Broken) Init() { b.i = 1 }

// Sentinel implements value.Kind.
func (*Broken) Sentinel() uint { return 2 }

// Val returns the stored field.
func (b *Broken) Val() uint { return b.i }
