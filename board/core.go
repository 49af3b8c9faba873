// Package board simulates the microcontroller the firmware runs on. A Core
// executes one firmware loop step per clock cycle and stands in for the
// platform's halt collaborator when a step fails.
package board

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sarchlab/bare0/arith"
	"github.com/sarchlab/bare0/cell"
	"github.com/sarchlab/bare0/firmware"
	"github.com/sarchlab/bare0/timing"
)

// HookPosBeforeStep fires when a tick starts a step. The hook item is the
// number the step will have once it completes.
var HookPosBeforeStep = &timing.HookPos{Name: "BeforeStep"}

// HookPosStep fires after every completed step. The hook item is a StepInfo.
var HookPosStep = &timing.HookPos{Name: "Step"}

// HookPosHalt fires once when the core halts. The hook item is a StepInfo
// and the detail is the halt cause.
var HookPosHalt = &timing.HookPos{Name: "Halt"}

// StepInfo is the observable state of the core after a step.
type StepInfo struct {
	Cycle timing.VTimeInCycle
	Step  uint64
	Local uint32
	X     uint32
	Y     uint32
}

// Core is a simulated processor core running the firmware loop.
type Core struct {
	*timing.TickingComponent

	bank     *cell.Bank
	loop     *firmware.Loop
	maxSteps uint64
	logger   *slog.Logger

	lock     sync.Mutex
	halted   bool
	haltErr  error
	lastStep StepInfo
}

// Start schedules the first tick.
func (c *Core) Start() {
	c.TickLater()
}

// Tick runs one firmware step.
func (c *Core) Tick() bool {
	if c.isHalted() {
		return false
	}

	if c.maxSteps > 0 && c.loop.Steps() >= c.maxSteps {
		return false
	}

	c.InvokeHook(timing.HookCtx{
		Domain: c,
		Pos:    HookPosBeforeStep,
		Item:   c.loop.Steps() + 1,
	})

	err := c.step()

	info := c.snapshot()

	c.lock.Lock()
	c.lastStep = info
	c.lock.Unlock()

	if err != nil {
		c.Halt(err)
		return false
	}

	c.InvokeHook(timing.HookCtx{
		Domain: c,
		Pos:    HookPosStep,
		Item:   info,
	})

	return true
}

// step runs the loop step and converts an arithmetic abort into an error the
// same way the platform's panic handler would stop the core.
func (c *Core) step() (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		abort, ok := r.(error)
		if !ok || !errors.Is(abort, arith.ErrOverflow) {
			panic(r)
		}

		err = fmt.Errorf("board: core aborted: %w", abort)
	}()

	return c.loop.Step()
}

// Halt implements firmware.Halter. Unlike the platform collaborator it
// returns, leaving the core stopped. Only the first cause is kept.
func (c *Core) Halt(err error) {
	info := c.snapshot()

	c.lock.Lock()
	if c.halted {
		c.lock.Unlock()
		return
	}
	c.halted = true
	c.haltErr = err
	c.lock.Unlock()

	c.logger.Error("core halted",
		"core", c.Name(),
		"cycle", uint64(info.Cycle),
		"step", info.Step,
		"error", err)

	c.InvokeHook(timing.HookCtx{
		Domain: c,
		Pos:    HookPosHalt,
		Item:   info,
		Detail: err,
	})
}

func (c *Core) snapshot() StepInfo {
	x, y := c.bank.Snapshot()

	return StepInfo{
		Cycle: c.CurrentTime(),
		Step:  c.loop.Steps(),
		Local: c.loop.Local(),
		X:     x,
		Y:     y,
	}
}

func (c *Core) isHalted() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.halted
}

// Halted reports whether the core stopped, and why.
func (c *Core) Halted() (bool, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.halted, c.haltErr
}

// LastStep returns the state recorded after the most recent step.
func (c *Core) LastStep() StepInfo {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.lastStep
}

// Steps returns the number of completed steps.
func (c *Core) Steps() uint64 {
	return c.loop.Steps()
}

// MaxSteps returns the step budget, 0 meaning unbounded.
func (c *Core) MaxSteps() uint64 {
	return c.maxSteps
}

// Cells returns the accessor of the core's counter cells.
func (c *Core) Cells() cell.Accessor {
	return c.bank
}

// Mode returns the arithmetic mode the loop runs with.
func (c *Core) Mode() arith.Mode {
	return c.loop.Mode()
}

var _ firmware.Halter = (*Core)(nil)
