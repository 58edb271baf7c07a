package harness

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// ErrNoBenchmarks is returned when a directory holds no benchmark executables.
var ErrNoBenchmarks = errors.New("no benchmarks found")

// Discover returns the names of the executable regular files in dir, sorted,
// skipping hidden files and any name in exclude.
func Discover(dir string, exclude ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("discover benchmarks: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || slices.Contains(exclude, name) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("discover benchmarks: %w", err)
		}
		if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			continue
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoBenchmarks, dir)
	}
	slices.Sort(names)
	return names, nil
}
