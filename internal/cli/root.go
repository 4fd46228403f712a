// Package cli wires the proviso commands: checking contract files,
// verifying contracts against live systems and browsing the run
// journal.
package cli

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Journal string
	Timeout time.Duration
}

// envConfig carries environment defaults for flags, so CI can set the
// journal path and a global deadline without touching invocations.
type envConfig struct {
	Journal string        `env:"PROVISO_JOURNAL"`
	Timeout time.Duration `env:"PROVISO_TIMEOUT"`
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the proviso CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	var cfg envConfig
	_ = env.Parse(&cfg)

	cmd := &cobra.Command{
		Use:   "proviso",
		Short: "proviso - contract verification for integration tests",
		Long: `Verify declarative contracts against observable system state.

A contract file names clauses; each clause observes a system (by
running a command or reading a snapshot file) and checks the observed
JSON against path constraints, retrying until a wall-clock budget runs
out. Results are journaled to SQLite.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Journal, "journal", cfg.Journal, "path to SQLite run journal (none to disable)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", cfg.Timeout, "overall deadline for a run (0 for none)")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger builds the command logger: silent by default, debug-level
// console output on stderr with --verbose.
func newLogger(cmd *cobra.Command, opts *RootOptions) *zap.Logger {
	if !opts.Verbose {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(cmd.ErrOrStderr()),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
