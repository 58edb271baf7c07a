// Command fat-no-read times dynamic dispatch over independently allocated objects held through interface values; Val does not read the object.
//
// Usage:
//
//	fat-no-read <iterations> <vector_size>
package main

import (
	"os"

	"github.com/softdevteam/vtable-bench/bench"
)

func main() {
	os.Exit(bench.Main(bench.FatNoRead))
}
