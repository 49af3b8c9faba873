// Package config holds the settings of a simulation run. Values come from
// defaults, then a .env file, then BARE0_* environment variables, then
// command-line flags, each layer overriding the previous one.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sarchlab/bare0/arith"
	"github.com/sarchlab/bare0/cell"
	"github.com/sarchlab/bare0/firmware"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "BARE0_"

// Config is the configuration of one simulation run.
type Config struct {
	// Cycles is the step budget of the core. Zero runs forever.
	Cycles uint64 `env:"CYCLES"`

	// FreqMHz is the simulated core clock.
	FreqMHz float64 `env:"FREQ_MHZ"`

	XInit     uint32             `env:"X_INIT"`
	Mode      arith.Mode         `env:"MODE"`
	Invariant firmware.Invariant `env:"INVARIANT"`

	// RecordPath is the recording database path without the .sqlite3
	// extension. Empty picks a unique name.
	RecordPath string `env:"RECORD_PATH"`
	Record     bool   `env:"RECORD"`

	Monitor     bool `env:"MONITOR"`
	MonitorPort int  `env:"MONITOR_PORT"`
	OpenBrowser bool `env:"OPEN_BROWSER"`

	LogLevel string `env:"LOG_LEVEL"`
	LogFile  string `env:"LOG_FILE"`
}

// Default returns the firmware's own defaults.
func Default() Config {
	return Config{
		Cycles:    1000,
		FreqMHz:   16,
		XInit:     cell.XInit,
		Mode:      arith.Wrapping,
		Invariant: firmware.InvariantNone,
		Record:    true,
		LogLevel:  "info",
	}
}

// Load returns the defaults overridden by envFile (if it exists) and then by
// the process environment.
func Load(envFile string) (Config, error) {
	cfg := Default()

	environ := map[string]string{}
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config: read %s: %w", envFile, err)
		}

		for k, v := range fileEnv {
			environ[k] = v
		}
	}

	for k, v := range env.ToMap(os.Environ()) {
		environ[k] = v
	}

	if err := cfg.ApplyEnv(environ); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields with the BARE0_* variables found in environ.
// A field whose variable does not parse keeps its value; all parse errors
// are returned together.
func (c *Config) ApplyEnv(environ map[string]string) error {
	if environ == nil {
		environ = map[string]string{}
	}

	err := env.ParseWithOptions(c, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// Validate reports settings that cannot run.
func (c Config) Validate() error {
	if c.FreqMHz <= 0 {
		return fmt.Errorf("config: frequency must be positive, got %g MHz",
			c.FreqMHz)
	}

	if !c.Monitor && c.MonitorPort != 0 {
		return errors.New("config: monitor port cannot be set when monitoring is disabled")
	}

	if !c.Monitor && c.OpenBrowser {
		return errors.New("config: cannot open a browser when monitoring is disabled")
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		return fmt.Errorf("config: invalid monitor port %d", c.MonitorPort)
	}

	return nil
}
