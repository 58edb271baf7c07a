// Command innervtable-multiref-with-read times dynamic dispatch over copies of one handle to a single method-table-prefixed block; Val reads the object.
//
// Usage:
//
//	innervtable-multiref-with-read <iterations> <vector_size>
package main

import (
	"os"

	"github.com/softdevteam/vtable-bench/bench"
)

func main() {
	os.Exit(bench.Main(bench.InnerVTableMultirefWithRead))
}
