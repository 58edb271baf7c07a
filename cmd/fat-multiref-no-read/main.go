// Command fat-multiref-no-read times dynamic dispatch over copies of one interface value; Val does not read the object.
//
// Usage:
//
//	fat-multiref-no-read <iterations> <vector_size>
package main

import (
	"os"

	"github.com/softdevteam/vtable-bench/bench"
)

func main() {
	os.Exit(bench.Main(bench.FatMultirefNoRead))
}
