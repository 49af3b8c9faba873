package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/bare0/datarecording"
	"github.com/sarchlab/bare0/tracing"
)

var reportLimit int

var reportCmd = &cobra.Command{
	Use:   "report [recording.sqlite3]",
	Short: "Print the steps stored in a recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printReport(cmd, os.Stdout, args[0], reportLimit)
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportLimit, "limit", 20,
		"maximum number of rows to print, 0 for all")

	rootCmd.AddCommand(reportCmd)
}

func printReport(cmd *cobra.Command, out io.Writer, path string, limit int) error {
	if !strings.HasSuffix(path, ".sqlite3") {
		path += ".sqlite3"
	}

	reader, err := datarecording.NewReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	records, total, err := tracing.ReadSteps(cmd.Context(), reader, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "core\tcycle\tstep\tlocal\tX\tY\tmode\thalt\n")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%s\t%s\n",
			r.Core, r.Cycle, r.Step, r.Local, r.X, r.Y, r.Mode, r.Cause)
	}

	if len(records) < total {
		fmt.Fprintf(tw, "... %d of %d rows\n", len(records), total)
	}

	return nil
}
