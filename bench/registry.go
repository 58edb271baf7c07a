package bench

import (
	"fmt"
	"slices"

	vtbench "github.com/softdevteam/vtable-bench"
	"github.com/softdevteam/vtable-bench/strategy"
	"github.com/softdevteam/vtable-bench/value"
)

// Benchmark names. Each is also the name of its executable under cmd/.
const (
	FatNoRead                   = "fat-no-read"
	FatWithRead                 = "fat-with-read"
	FatMultirefNoRead           = "fat-multiref-no-read"
	FatMultirefWithRead         = "fat-multiref-with-read"
	InnerVTableNoRead           = "innervtable-no-read"
	InnerVTableWithRead         = "innervtable-with-read"
	InnerVTableMultirefNoRead   = "innervtable-multiref-no-read"
	InnerVTableMultirefWithRead = "innervtable-multiref-with-read"
)

// Benchmark pairs a name with the layout and value kind it measures.
type Benchmark struct {
	Name    string
	Factory strategy.Factory
}

var registry = map[string]strategy.Factory{
	FatNoRead:                   strategy.NewFat[value.NoRead],
	FatWithRead:                 strategy.NewFat[value.WithRead],
	FatMultirefNoRead:           strategy.NewFatShared[value.NoRead],
	FatMultirefWithRead:         strategy.NewFatShared[value.WithRead],
	InnerVTableNoRead:           strategy.NewInner[value.NoRead],
	InnerVTableWithRead:         strategy.NewInner[value.WithRead],
	InnerVTableMultirefNoRead:   strategy.NewInnerShared[value.NoRead],
	InnerVTableMultirefWithRead: strategy.NewInnerShared[value.WithRead],
}

// Names returns every benchmark name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the benchmark registered under name.
func Lookup(name string) (Benchmark, error) {
	f, ok := registry[name]
	if !ok {
		return Benchmark{}, fmt.Errorf("%w: %q", vtbench.ErrUnknownBenchmark, name)
	}
	return Benchmark{Name: name, Factory: f}, nil
}
