package contract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder receives the results of a contract run, clause by clause.
// The journal store implements it; a nil recorder disables recording.
type Recorder interface {
	BeginRun(ctx context.Context, runID, title string, startedAt time.Time) error
	RecordClause(ctx context.Context, runID string, result *ClauseResult) error
	FinishRun(ctx context.Context, runID string, valid bool, finishedAt time.Time) error
}

// Contract aggregates clauses. Verification runs every clause to
// completion with no short-circuit across clauses, so a full
// multi-clause failure report is always available.
type Contract struct {
	title    string
	clauses  []*Clause
	recorder Recorder
	clock    Clock
	logger   *zap.Logger
}

// Option configures a Contract at construction.
type Option func(*Contract)

// WithRecorder attaches a run recorder.
func WithRecorder(recorder Recorder) Option {
	return func(c *Contract) { c.recorder = recorder }
}

// WithContractClock injects a clock for run timestamps.
func WithContractClock(clock Clock) Option {
	return func(c *Contract) { c.clock = clock }
}

// WithContractLogger sets the contract logger.
func WithContractLogger(logger *zap.Logger) Option {
	return func(c *Contract) { c.logger = logger }
}

// New creates a contract over the given clauses.
func New(title string, clauses []*Clause, opts ...Option) *Contract {
	c := &Contract{
		title:   title,
		clauses: clauses,
		clock:   systemClock{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Title returns the contract name.
func (c *Contract) Title() string { return c.title }

// Clauses returns the contract's clauses.
func (c *Contract) Clauses() []*Clause { return c.clauses }

// Result is the outcome of verifying a contract: valid iff every
// clause is valid.
type Result struct {
	RunID         string
	Title         string
	ClauseResults []*ClauseResult
}

// Valid reports whether every clause was satisfied.
func (r *Result) Valid() bool {
	for _, cr := range r.ClauseResults {
		if !cr.Valid() {
			return false
		}
	}
	return true
}

// Comment implements pred.Result.
func (r *Result) Comment() string {
	verdict := "FAILED"
	if r.Valid() {
		verdict = "OK"
	}
	lines := make([]string, 0, len(r.ClauseResults)+1)
	lines = append(lines, fmt.Sprintf("Contract %s", verdict))
	for _, cr := range r.ClauseResults {
		lines = append(lines, "  * "+cr.Comment())
	}
	return strings.Join(lines, "\n")
}

// Cause implements pred.Result.
func (r *Result) Cause() error { return nil }

// Verify runs every clause to completion. A clause configuration
// error (missing observer or verifier) is fatal and aborts the run;
// clause timeouts are ordinary invalid results.
func (c *Contract) Verify(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	started := c.clock.Now()
	c.logger.Info("verifying contract",
		zap.String("contract", c.title),
		zap.String("run_id", runID),
		zap.Int("clauses", len(c.clauses)))

	if c.recorder != nil {
		if err := c.recorder.BeginRun(ctx, runID, c.title, started); err != nil {
			return nil, fmt.Errorf("recording run start: %w", err)
		}
	}

	result := &Result{RunID: runID, Title: c.title}
	for _, clause := range c.clauses {
		clauseResult, err := clause.Verify(ctx)
		if err != nil {
			return nil, err
		}
		result.ClauseResults = append(result.ClauseResults, clauseResult)

		if c.recorder != nil {
			if err := c.recorder.RecordClause(ctx, runID, clauseResult); err != nil {
				c.logger.Warn("failed to record clause result",
					zap.String("clause", clause.Title()), zap.Error(err))
			}
		}
	}

	if c.recorder != nil {
		if err := c.recorder.FinishRun(ctx, runID, result.Valid(), c.clock.Now()); err != nil {
			c.logger.Warn("failed to record run end", zap.Error(err))
		}
	}

	c.logger.Info("contract verified",
		zap.String("contract", c.title),
		zap.Bool("valid", result.Valid()))
	return result, nil
}
