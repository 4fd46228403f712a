package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"proviso/internal/journal"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Limit int
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List journaled contract runs",
		Long: `List recent contract runs from the journal, most recent first.
Requires --journal (or PROVISO_JOURNAL).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list")
	return cmd
}

type runRow struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartedAt string `json:"started_at"`
	Verdict   string `json:"verdict"`
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	if opts.Journal == "" {
		return WrapExitError(ExitCommandError, "no journal configured", nil)
	}
	store, err := journal.Open(opts.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening journal", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runs, err := store.ListRuns(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "listing runs", err)
	}

	rows := make([]runRow, 0, len(runs))
	for _, run := range runs {
		verdict := "in progress"
		if run.Valid.Valid {
			verdict = "FAILED"
			if run.Valid.Bool {
				verdict = "OK"
			}
		}
		rows = append(rows, runRow{
			ID:        run.ID,
			Title:     run.Title,
			StartedAt: run.StartedAt,
			Verdict:   verdict,
		})
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s  %-10s  %s  %s\n", row.StartedAt, row.Verdict, row.ID, row.Title)
	}
	return nil
}
