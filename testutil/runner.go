package testutil

import (
	"context"
	"fmt"
	"sync"
)

// Invocation records one FakeRunner.Run call.
type Invocation struct {
	Name       string
	Iterations int
	VectorSize int
}

// FakeRunner is an in-process stand-in for a benchmark subprocess runner.
// It returns Results[name] (or 1.0) and fails for names in Fail.
type FakeRunner struct {
	Results map[string]float64
	Fail    map[string]error

	mu    sync.Mutex
	calls []Invocation
}

// Run records the invocation and returns the configured result.
func (f *FakeRunner) Run(_ context.Context, name string, iterations, vectorSize int) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Invocation{Name: name, Iterations: iterations, VectorSize: vectorSize})

	if err, ok := f.Fail[name]; ok {
		if err == nil {
			err = fmt.Errorf("%s failed", name)
		}
		return 0, err
	}
	if v, ok := f.Results[name]; ok {
		return v, nil
	}
	return 1.0, nil
}

// Calls returns a copy of all recorded invocations.
func (f *FakeRunner) Calls() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Invocation(nil), f.calls...)
}

// CountByName returns how often each benchmark was run.
func (f *FakeRunner) CountByName() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := make(map[string]int)
	for _, c := range f.calls {
		m[c.Name]++
	}
	return m
}
