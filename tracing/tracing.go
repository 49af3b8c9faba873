// Package tracing records the steps of a simulated core.
package tracing

import (
	"context"
	"sync/atomic"

	"github.com/sarchlab/bare0/board"
	"github.com/sarchlab/bare0/datarecording"
	"github.com/sarchlab/bare0/timing"
)

// StepTable is the table StepTracer writes to.
const StepTable = "step"

// StepRecord is one row of the step table. A halting core adds a final row
// with Halted set and the cause filled in.
type StepRecord struct {
	Core   string
	Cycle  uint64
	Step   uint64
	Local  uint32
	X      uint32
	Y      uint32
	Mode   string
	Halted bool
	Cause  string
}

// StepTracer is a hook that writes every step and halt of a core into a
// DataRecorder.
type StepTracer struct {
	recorder datarecording.DataRecorder
	count    atomic.Uint64
}

// NewStepTracer creates the step table and returns a tracer writing to it.
func NewStepTracer(recorder datarecording.DataRecorder) *StepTracer {
	recorder.CreateTable(StepTable, StepRecord{})

	return &StepTracer{recorder: recorder}
}

// Func implements timing.Hook.
func (t *StepTracer) Func(ctx timing.HookCtx) {
	if ctx.Pos != board.HookPosStep && ctx.Pos != board.HookPosHalt {
		return
	}

	core := ctx.Domain.(*board.Core)
	info := ctx.Item.(board.StepInfo)

	rec := StepRecord{
		Core:  core.Name(),
		Cycle: uint64(info.Cycle),
		Step:  info.Step,
		Local: info.Local,
		X:     info.X,
		Y:     info.Y,
		Mode:  core.Mode().String(),
	}

	if ctx.Pos == board.HookPosHalt {
		rec.Halted = true
		if err, ok := ctx.Detail.(error); ok {
			rec.Cause = err.Error()
		}
	}

	t.recorder.InsertData(StepTable, rec)
	t.count.Add(1)
}

// Count returns the number of rows written.
func (t *StepTracer) Count() uint64 {
	return t.count.Load()
}

// ReadSteps reads step rows back from a recording, in step order.
func ReadSteps(
	ctx context.Context,
	reader datarecording.DataReader,
	limit int,
) ([]StepRecord, int, error) {
	reader.MapTable(StepTable, StepRecord{})

	rows, total, err := reader.Query(ctx, StepTable, datarecording.QueryParams{
		OrderBy: "Cycle, Halted",
		Limit:   limit,
	})
	if err != nil {
		return nil, 0, err
	}

	records := make([]StepRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, *r.(*StepRecord))
	}

	return records, total, nil
}
