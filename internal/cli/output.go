package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"proviso/internal/contract"
	"proviso/internal/verify"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // contract satisfied
	ExitFailure      = 1 // contract failed (clause timed out)
	ExitCommandError = 2 // command error (bad file, bad flags, journal unavailable)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// runReport is the JSON shape of a contract run.
type runReport struct {
	RunID   string         `json:"run_id,omitempty"`
	Title   string         `json:"title"`
	Valid   bool           `json:"valid"`
	Clauses []clauseReport `json:"clauses"`
}

type clauseReport struct {
	Title    string `json:"title"`
	State    string `json:"state"`
	Attempts int    `json:"attempts"`
	Summary  string `json:"summary"`
}

func buildReport(result *contract.Result) runReport {
	report := runReport{
		RunID:   result.RunID,
		Title:   result.Title,
		Valid:   result.Valid(),
		Clauses: make([]clauseReport, 0, len(result.ClauseResults)),
	}
	for _, cr := range result.ClauseResults {
		report.Clauses = append(report.Clauses, clauseReport{
			Title:    cr.Clause.Title(),
			State:    string(cr.State),
			Attempts: cr.Attempts,
			Summary:  cr.Verification.Comment(),
		})
	}
	return report
}

// RenderResult writes a contract result in the configured format.
func RenderResult(w io.Writer, format string, result *contract.Result) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(buildReport(result))
	}
	return renderText(w, result)
}

func renderText(w io.Writer, result *contract.Result) error {
	verdict := "FAILED"
	if result.Valid() {
		verdict = "OK"
	}
	fmt.Fprintf(w, "Contract %q %s\n", result.Title, verdict)
	for _, cr := range result.ClauseResults {
		mark := "FAIL"
		if cr.Valid() {
			mark = "PASS"
		}
		fmt.Fprintf(w, "  [%s] %s (%s after %d attempt(s))\n",
			mark, cr.Clause.Title(), cr.State, cr.Attempts)
		for _, line := range strings.Split(cr.Verification.Comment(), "\n") {
			fmt.Fprintf(w, "        %s\n", line)
		}
		if !cr.Valid() {
			renderConstraintDetails(w, cr.Verification)
		}
	}
	return nil
}

// renderConstraintDetails lists the failed constraints of an invalid
// clause so the terminal output names what was expected, not just
// that the clause failed.
func renderConstraintDetails(w io.Writer, verification *verify.ObservationResult) {
	for _, p := range verification.FailedConstraints() {
		fmt.Fprintf(w, "        unsatisfied: %v\n", p)
	}
	for _, bad := range verification.BadResults() {
		cause := bad.Result.Cause()
		if cause != nil {
			fmt.Fprintf(w, "        error: %v\n", cause)
		}
	}
}
