package firmware

import "github.com/sarchlab/bare0/cell"

// Main is the entry point. The platform startup code calls it once, after
// static storage has been initialized, and it never returns.
//
//go:noinline
func Main() {
	New(cell.Static()).Run()
}
