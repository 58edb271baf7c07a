// Command fat-multiref-with-read times dynamic dispatch over copies of one interface value; Val reads the object.
//
// Usage:
//
//	fat-multiref-with-read <iterations> <vector_size>
package main

import (
	"os"

	"github.com/softdevteam/vtable-bench/bench"
)

func main() {
	os.Exit(bench.Main(bench.FatMultirefWithRead))
}
