// Package cmd provides the command-line interface of bare0.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/bare0/config"
	"github.com/sarchlab/bare0/logs"
)

var (
	envFile string
	cfg     config.Config
	logger  *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bare0",
	Short: "bare0 runs the bare-metal counter loop on a simulated core.",
	Long: `bare0 runs the bare-metal counter loop on a simulated core. ` +
		`The run command simulates the loop cycle by cycle and records every step, ` +
		`step prints the first iterations as a table, and report reads a recording back.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(envFile)
		if err != nil {
			return err
		}

		cfg = loaded
		if err := applyFlags(cmd, &cfg); err != nil {
			return err
		}

		return setupLogger()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	defaults := config.Default()

	flags.StringVar(&envFile, "env-file", ".env",
		"file of BARE0_* variables loaded before the environment")
	flags.String("log-level", defaults.LogLevel,
		"log level: debug, info, warn or error")
	flags.String("log-file", "", "also write JSON logs to this file")
}

func setupLogger() error {
	if err := logs.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	var file *os.File
	if cfg.LogFile != "" {
		var err error
		file, err = os.OpenFile(cfg.LogFile,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}

		atexit.Register(func() { file.Close() })
	}

	if file != nil {
		logger = logs.New(os.Stderr, file)
	} else {
		logger = logs.New(os.Stderr, nil)
	}

	slog.SetDefault(logger)

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. An interrupt or SIGTERM cancels the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
