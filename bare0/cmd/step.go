package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/bare0/arith"
	"github.com/sarchlab/bare0/cell"
	"github.com/sarchlab/bare0/config"
	"github.com/sarchlab/bare0/firmware"
)

var stepCount int

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Run the first loop iterations and print (Local, X, Y)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return printSteps(os.Stdout, cfg, stepCount)
	},
}

func init() {
	flags := stepCmd.Flags()

	flags.IntVarP(&stepCount, "count", "n", 10, "number of iterations")
	addCoreFlags(flags)

	rootCmd.AddCommand(stepCmd)
}

func printSteps(out io.Writer, c config.Config, n int) (err error) {
	bank := cell.NewBank(c.XInit)
	loop := firmware.New(bank,
		firmware.WithMode(c.Mode),
		firmware.WithInvariant(c.Invariant))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	defer tw.Flush()

	fmt.Fprintf(tw, "step\tlocal\tX\tY\t\n")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t\n", 0, loop.Local(), bank.ReadX(), bank.ReadY())

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		abort, ok := r.(error)
		if !ok || !errors.Is(abort, arith.ErrOverflow) {
			panic(r)
		}

		err = fmt.Errorf("step %d aborted: %w", loop.Steps()+1, abort)
	}()

	for i := 0; i < n; i++ {
		stepErr := loop.Step()

		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t\n",
			loop.Steps(), loop.Local(), bank.ReadX(), bank.ReadY())

		if stepErr != nil {
			return stepErr
		}
	}

	return nil
}
