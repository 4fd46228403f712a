package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"proviso/internal/specfile"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <contract.yaml>",
		Short: "Validate and compile a contract file without running it",
		Long: `Validate a contract file against the schema and compile its
clauses, without observing anything. Catches structural mistakes
(unknown ops, missing observers, bad durations) before a run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(cmd, opts)
	defer func() { _ = logger.Sync() }()

	doc, err := specfile.Load(path)
	if err != nil {
		return checkError(err)
	}
	contract, err := specfile.Compile(doc, logger)
	if err != nil {
		return checkError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Contract %q OK (%d clause(s))\n",
		contract.Title(), len(contract.Clauses()))
	return nil
}

func checkError(err error) error {
	var loadErr *specfile.LoadError
	if errors.As(err, &loadErr) {
		return WrapExitError(ExitCommandError, loadErr.Code, errors.New(loadErr.Message))
	}
	return WrapExitError(ExitCommandError, "invalid contract file", err)
}
