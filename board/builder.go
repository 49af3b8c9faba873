package board

import (
	"log/slog"

	"github.com/sarchlab/bare0/arith"
	"github.com/sarchlab/bare0/cell"
	"github.com/sarchlab/bare0/firmware"
	"github.com/sarchlab/bare0/timing"
)

// Builder builds Cores.
type Builder struct {
	engine    timing.EventScheduler
	xInit     uint32
	mode      arith.Mode
	invariant firmware.Invariant
	maxSteps  uint64
	logger    *slog.Logger
}

// MakeBuilder creates a builder with the firmware defaults: X starts at
// cell.XInit, wrapping arithmetic, no invariant check, unbounded steps.
func MakeBuilder() Builder {
	return Builder{
		xInit: cell.XInit,
		mode:  arith.Wrapping,
	}
}

// WithEngine sets the engine the core schedules its ticks on.
func (b Builder) WithEngine(e timing.EventScheduler) Builder {
	b.engine = e
	return b
}

// WithXInit sets the initial value of the X cell.
func (b Builder) WithXInit(v uint32) Builder {
	b.xInit = v
	return b
}

// WithMode sets the arithmetic mode.
func (b Builder) WithMode(m arith.Mode) Builder {
	b.mode = m
	return b
}

// WithInvariant enables a diagnostic check after every step.
func (b Builder) WithInvariant(i firmware.Invariant) Builder {
	b.invariant = i
	return b
}

// WithMaxSteps stops the core after n steps. Zero means never.
func (b Builder) WithMaxSteps(n uint64) Builder {
	b.maxSteps = n
	return b
}

// WithLogger sets the logger halts are reported to.
func (b Builder) WithLogger(l *slog.Logger) Builder {
	b.logger = l
	return b
}

// Build creates a core with its own bank of counter cells.
func (b Builder) Build(name string) *Core {
	if b.engine == nil {
		panic("board: engine is not set")
	}

	c := &Core{
		bank:     cell.NewBank(b.xInit),
		maxSteps: b.maxSteps,
		logger:   b.logger,
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.TickingComponent = timing.NewTickingComponent(name, b.engine, c)
	c.loop = firmware.New(c.bank,
		firmware.WithMode(b.mode),
		firmware.WithInvariant(b.invariant),
		firmware.WithHalter(c),
	)

	return c
}
