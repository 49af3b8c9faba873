package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sarchlab/bare0/config"
)

// addCoreFlags registers the flags that configure the simulated core.
func addCoreFlags(flags *pflag.FlagSet) {
	defaults := config.Default()

	flags.Uint32("x-init", defaults.XInit, "initial value of the X cell")
	flags.String("mode", defaults.Mode.String(),
		"arithmetic mode: wrapping or checked")
	flags.String("invariant", defaults.Invariant.String(),
		"check after every step: none, equal or y-lags-by-one")
}

// applyFlags copies the flags the user set explicitly into c, so that flags
// override the environment and the environment overrides defaults.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	var err error

	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed && err == nil
	}

	if changed("cycles") {
		c.Cycles, err = flags.GetUint64("cycles")
	}
	if changed("freq-mhz") {
		c.FreqMHz, err = flags.GetFloat64("freq-mhz")
	}
	if changed("x-init") {
		c.XInit, err = flags.GetUint32("x-init")
	}
	if changed("mode") {
		var s string
		if s, err = flags.GetString("mode"); err == nil {
			err = c.Mode.Set(s)
		}
	}
	if changed("invariant") {
		var s string
		if s, err = flags.GetString("invariant"); err == nil {
			err = c.Invariant.Set(s)
		}
	}
	if changed("record") {
		c.RecordPath, err = flags.GetString("record")
	}
	if changed("no-record") {
		var off bool
		off, err = flags.GetBool("no-record")
		c.Record = !off
	}
	if changed("monitor") {
		c.Monitor, err = flags.GetBool("monitor")
	}
	if changed("monitor-port") {
		c.MonitorPort, err = flags.GetInt("monitor-port")
	}
	if changed("open-browser") {
		c.OpenBrowser, err = flags.GetBool("open-browser")
	}
	if changed("log-level") {
		c.LogLevel, err = flags.GetString("log-level")
	}
	if changed("log-file") {
		c.LogFile, err = flags.GetString("log-file")
	}

	return err
}
