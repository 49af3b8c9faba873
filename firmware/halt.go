package firmware

// A Halter is the platform's fatal-error collaborator. Halt must not return.
type Halter interface {
	Halt(err error)
}

// PanicHalter halts by panicking with the error, which on a hosted build
// terminates the process the way a panic-halt handler stops the core.
type PanicHalter struct{}

// Halt panics with err.
func (PanicHalter) Halt(err error) {
	panic(err)
}
