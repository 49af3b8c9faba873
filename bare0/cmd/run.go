package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/bare0/board"
	"github.com/sarchlab/bare0/config"
	"github.com/sarchlab/bare0/datarecording"
	"github.com/sarchlab/bare0/monitoring"
	"github.com/sarchlab/bare0/timing"
	"github.com/sarchlab/bare0/tracing"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the loop cycle by cycle and record every step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSimulation(cmd.Context(), cfg)
	},
}

func init() {
	defaults := config.Default()
	flags := runCmd.Flags()

	flags.Uint64("cycles", defaults.Cycles,
		"number of loop steps to simulate, 0 to run forever")
	flags.Float64("freq-mhz", defaults.FreqMHz, "core clock in MHz")
	addCoreFlags(flags)
	flags.String("record", "",
		"recording database path without extension (default: unique name)")
	flags.Bool("no-record", false, "do not record steps")
	flags.Bool("monitor", false, "serve the monitoring page")
	flags.Int("monitor-port", 0, "monitoring port (default: random)")
	flags.Bool("open-browser", false, "open the monitoring page in a browser")

	rootCmd.AddCommand(runCmd)
}

func runSimulation(ctx context.Context, c config.Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	engine := timing.NewSerialEngine()
	core := board.MakeBuilder().
		WithEngine(engine).
		WithXInit(c.XInit).
		WithMode(c.Mode).
		WithInvariant(c.Invariant).
		WithMaxSteps(c.Cycles).
		WithLogger(logger).
		Build("Core")

	var recorder datarecording.DataRecorder
	if c.Record {
		recorder = datarecording.New(c.RecordPath)
		core.AcceptHook(tracing.NewStepTracer(recorder))
	}

	if c.Monitor {
		m, err := startMonitor(c, engine, core)
		if err != nil {
			return err
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			_ = m.StopServer(shutdownCtx)
		}()
	}

	freq := timing.Freq(c.FreqMHz) * timing.MHz

	logger.Info("simulation started",
		"x_init", c.XInit,
		"mode", c.Mode.String(),
		"invariant", c.Invariant.String(),
		"cycles", c.Cycles,
		"freq_mhz", c.FreqMHz)

	start := time.Now()

	core.Start()

	release := haltOnCancel(ctx, engine, core)
	err := engine.Run()
	release()

	if err != nil {
		return err
	}

	if recorder != nil {
		if err := recorder.Close(); err != nil {
			return fmt.Errorf("close recording: %w", err)
		}
	}

	last := core.LastStep()
	logger.Info("simulation finished",
		"steps", core.Steps(),
		"cycle", uint64(last.Cycle),
		"simulated", freq.Elapsed(last.Cycle).String(),
		"wall", time.Since(start).String())

	fmt.Printf("steps=%d local=%d X=%d Y=%d\n",
		core.Steps(), last.Local, last.X, last.Y)

	if halted, cause := core.Halted(); halted {
		return fmt.Errorf("core halted: %w", cause)
	}

	return nil
}

// haltOnCancel halts the core between two events once ctx is done, so the
// engine drains and buffered records are still written. The returned
// function stops watching ctx.
func haltOnCancel(
	ctx context.Context,
	engine timing.Engine,
	core *board.Core,
) (release func()) {
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)

		select {
		case <-done:
		case <-ctx.Done():
			engine.Pause()
			core.Halt(fmt.Errorf("interrupted: %w", context.Cause(ctx)))
			engine.Continue()
		}
	}()

	return func() {
		close(done)
		<-exited
	}
}

func startMonitor(
	c config.Config,
	engine timing.Engine,
	core *board.Core,
) (*monitoring.Monitor, error) {
	m := monitoring.NewMonitor().
		WithPortNumber(c.MonitorPort).
		WithLogger(logger)
	m.RegisterEngine(engine)
	m.RegisterCore(core)

	if c.Cycles > 0 {
		bar := m.CreateProgressBar("steps", c.Cycles)
		core.AcceptHook(monitoring.StepProgressHook(bar))
	}

	if _, err := m.StartServer(); err != nil {
		return nil, err
	}

	if c.OpenBrowser {
		if err := m.OpenInBrowser(); err != nil {
			logger.Warn("cannot open browser", "error", err)
		}
	}

	return m, nil
}
