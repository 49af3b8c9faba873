// Command bare0 simulates the bare0 firmware loop on a cycle-driven core.
package main

import "github.com/sarchlab/bare0/bare0/cmd"

func main() {
	cmd.Execute()
}
