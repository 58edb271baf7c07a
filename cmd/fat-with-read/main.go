// Command fat-with-read times dynamic dispatch over independently allocated objects held through interface values; Val reads the object.
//
// Usage:
//
//	fat-with-read <iterations> <vector_size>
package main

import (
	"os"

	"github.com/softdevteam/vtable-bench/bench"
)

func main() {
	os.Exit(bench.Main(bench.FatWithRead))
}
