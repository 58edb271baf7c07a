// Package mmap provides anonymous memory mappings for off-heap allocation.
//
// # Overview
//
// MapAnon returns read-write memory that lives outside the Go heap. The
// garbage collector never scans it and never frees it, so blocks carved out
// of it have an explicit lifetime: they exist until the mapping is closed.
// The arena allocator builds on this to hand out raw blocks whose layout is
// fully under the caller's control.
//
// # Usage
//
//	m, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	defer m.Close()
//
//	buf := m.Bytes()
//	_ = m.Advise(mmap.AccessWillNeed)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE, madvise(2)
//   - Others: a heap-backed slice (Advise is a no-op)
//
// # Thread Safety
//
// Close is idempotent and protected by an atomic flag. Callers must ensure
// nothing touches Bytes() after Close returns.
package mmap
