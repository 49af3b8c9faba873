package firmware

import (
	"github.com/sarchlab/bare0/arith"
	"github.com/sarchlab/bare0/cell"
)

// A Loop drives a pair of counter cells forward. It owns the local counter
// and exposes it to no one but diagnostics.
type Loop struct {
	acc       cell.Accessor
	mode      arith.Mode
	invariant Invariant
	halter    Halter

	local uint32
	steps uint64
}

// An Option configures a Loop.
type Option func(l *Loop)

// WithMode selects the arithmetic mode. The default is arith.Wrapping.
func WithMode(m arith.Mode) Option {
	return func(l *Loop) {
		l.mode = m
	}
}

// WithInvariant enables a diagnostic check after every step.
func WithInvariant(i Invariant) Option {
	return func(l *Loop) {
		l.invariant = i
	}
}

// WithHalter sets the collaborator Run hands fatal errors to.
func WithHalter(h Halter) Option {
	return func(l *Loop) {
		l.halter = h
	}
}

// New creates a Loop bound to acc. The local counter is initialized from X
// here, before any step runs.
func New(acc cell.Accessor, opts ...Option) *Loop {
	l := &Loop{
		acc:    acc,
		mode:   arith.Wrapping,
		halter: PanicHalter{},
	}

	for _, opt := range opts {
		opt(l)
	}

	l.local = acc.ReadX()

	return l
}

// Step runs one iteration: increment the local counter, increment X, copy X
// into Y, then evaluate the configured invariant. In arith.Checked mode an
// overflowing increment panics before any cell is written for that
// increment.
func (l *Loop) Step() error {
	l.local = l.mode.Inc(l.local)

	l.acc.WriteX(l.mode.Inc(l.acc.ReadX()))
	l.acc.WriteY(l.acc.ReadX())

	l.steps++

	return l.invariant.Check(l.local, l.acc)
}

// Run steps forever. A failed invariant is handed to the Halter.
func (l *Loop) Run() {
	for {
		if err := l.Step(); err != nil {
			l.halter.Halt(err)
			panic("firmware: halter returned")
		}
	}
}

// Local returns the local counter.
func (l *Loop) Local() uint32 {
	return l.local
}

// Steps returns the number of completed steps.
func (l *Loop) Steps() uint64 {
	return l.steps
}

// Mode returns the arithmetic mode.
func (l *Loop) Mode() arith.Mode {
	return l.mode
}
