//go:build tinygo

// Command bare0fw is the firmware image. Build it with TinyGo for a Cortex-M
// target; the runtime's reset handler initializes static storage and calls
// main, which hands control to the firmware loop for good.
package main

import "github.com/sarchlab/bare0/firmware"

func main() {
	firmware.Main()
}
