// Command innervtable-with-read times dynamic dispatch over one-word handles to blocks that start with the method table; Val reads the object.
//
// Usage:
//
//	innervtable-with-read <iterations> <vector_size>
package main

import (
	"os"

	"github.com/softdevteam/vtable-bench/bench"
)

func main() {
	os.Exit(bench.Main(bench.InnerVTableWithRead))
}
