// Command innervtable-multiref-no-read times dynamic dispatch over copies of one handle to a single method-table-prefixed block; Val does not read the object.
//
// Usage:
//
//	innervtable-multiref-no-read <iterations> <vector_size>
package main

import (
	"os"

	"github.com/softdevteam/vtable-bench/bench"
)

func main() {
	os.Exit(bench.Main(bench.InnerVTableMultirefNoRead))
}
