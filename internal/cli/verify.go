package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"proviso/internal/contract"
	"proviso/internal/journal"
	"proviso/internal/specfile"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <contract.yaml>",
		Short: "Verify a contract against the observed system",
		Long: `Load a contract file, observe each clause's system and verify
its constraints, retrying failed clauses within their retry budgets.

The process exits 0 when every clause is satisfied and 1 when any
clause times out, so contracts slot directly into CI pipelines.

Example:
  proviso verify deploy-contract.yaml
  proviso verify --journal runs.db --format json contract.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runVerify(opts *RootOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(cmd, opts)
	defer func() { _ = logger.Sync() }()

	doc, err := specfile.Load(path)
	if err != nil {
		return checkError(err)
	}

	var recorders []contract.Option
	recorders = append(recorders, contract.WithContractLogger(logger))
	if opts.Journal != "" {
		store, err := journal.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening journal", err)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				logger.Error("closing journal", zap.Error(closeErr))
			}
		}()
		recorders = append(recorders, contract.WithRecorder(store))
	}

	compiled, err := specfile.Compile(doc, logger)
	if err != nil {
		return checkError(err)
	}
	// Recompose with the recorder attached; Compile only knows about
	// the document, not the CLI's journal choice.
	ctr := contract.New(compiled.Title(), compiled.Clauses(), recorders...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	result, err := ctr.Verify(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "verification aborted", err)
	}

	if renderErr := RenderResult(cmd.OutOrStdout(), opts.Format, result); renderErr != nil {
		return WrapExitError(ExitCommandError, "rendering result", renderErr)
	}
	if !result.Valid() {
		return &ExitError{Code: ExitFailure, Message: "contract failed"}
	}
	return nil
}
