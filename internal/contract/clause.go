package contract

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"proviso/internal/observe"
	"proviso/internal/verify"
)

// ClauseState is the terminal state of one clause verification.
type ClauseState string

const (
	// StateAttempting means verification is still in progress.
	StateAttempting ClauseState = "ATTEMPTING"

	// StateSucceeded means an attempt passed within the retry budget.
	StateSucceeded ClauseState = "SUCCEEDED"

	// StateTimedOut means the retry budget was exhausted; the last
	// invalid result is reported.
	StateTimedOut ClauseState = "TIMED_OUT"
)

// maxPollInterval caps the sleep between verification attempts.
const maxPollInterval = 5 * time.Second

// Clause binds an observer and a verifier with a bounded retry
// policy. It is the unit of contract verification: each attempt
// collects a fresh observation and verifies it, retrying on failure
// until the wall-clock budget runs out.
//
// A Clause is immutable and reusable; each Verify call owns its own
// observations and results.
type Clause struct {
	title        string
	observer     observe.Observer
	verifier     verify.Verifier
	retryableFor time.Duration
	clock        Clock
	logger       *zap.Logger
}

// ClauseOption configures a Clause at construction.
type ClauseOption func(*Clause)

// WithRetryBudget sets how long verification may keep retrying. Zero
// means exactly one attempt.
func WithRetryBudget(d time.Duration) ClauseOption {
	return func(c *Clause) { c.retryableFor = d }
}

// WithClock injects a clock, for deterministic tests.
func WithClock(clock Clock) ClauseOption {
	return func(c *Clause) { c.clock = clock }
}

// WithLogger sets the clause logger.
func WithLogger(logger *zap.Logger) ClauseOption {
	return func(c *Clause) { c.logger = logger }
}

// NewClause creates a clause. The observer and verifier may be nil
// here to support incremental construction, but must be bound by the
// time Verify is called.
func NewClause(title string, observer observe.Observer, verifier verify.Verifier, opts ...ClauseOption) *Clause {
	c := &Clause{
		title:    title,
		observer: observer,
		verifier: verifier,
		clock:    systemClock{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Title returns the clause name.
func (c *Clause) Title() string { return c.title }

// RetryBudget returns the clause's retry budget.
func (c *Clause) RetryBudget() time.Duration { return c.retryableFor }

// ClauseResult is the outcome of verifying one clause to completion.
type ClauseResult struct {
	Clause       *Clause
	State        ClauseState
	Attempts     int
	Verification *verify.ObservationResult
}

// Valid reports whether the clause was satisfied.
func (r *ClauseResult) Valid() bool { return r.State == StateSucceeded }

// Comment implements pred.Result.
func (r *ClauseResult) Comment() string {
	verdict := "FAILED"
	if r.Valid() {
		verdict = "OK"
	}
	return fmt.Sprintf("Clause %q %s", r.Clause.Title(), verdict)
}

// Cause implements pred.Result.
func (r *ClauseResult) Cause() error { return nil }

// Verify repeatedly observes and verifies until an attempt passes or
// the wall-clock deadline expires. A clause with no bound observer or
// verifier is a fatal configuration error, never retried. Timeout is
// not an error: the last invalid result is returned with state
// TIMED_OUT and the caller decides what a failed clause means.
func (c *Clause) Verify(ctx context.Context) (*ClauseResult, error) {
	if c.observer == nil {
		return nil, fmt.Errorf("no observer bound to clause %q", c.title)
	}
	if c.verifier == nil {
		return nil, fmt.Errorf("no verifier bound to clause %q", c.title)
	}

	start := c.clock.Now()
	deadline := start.Add(c.retryableFor)
	attempts := 0

	for {
		verification := c.verifyOnce(ctx)
		attempts++

		if verification.Valid() {
			c.logger.Debug("clause satisfied",
				zap.String("clause", c.title), zap.Int("attempts", attempts))
			return &ClauseResult{
				Clause:       c,
				State:        StateSucceeded,
				Attempts:     attempts,
				Verification: verification,
			}, nil
		}

		now := c.clock.Now()
		if !now.Before(deadline) {
			if c.retryableFor > 0 {
				c.logger.Debug("giving up on clause",
					zap.String("clause", c.title),
					zap.Duration("budget", c.retryableFor),
					zap.Int("attempts", attempts))
			}
			return &ClauseResult{
				Clause:       c,
				State:        StateTimedOut,
				Attempts:     attempts,
				Verification: verification,
			}, nil
		}

		// Poll at a tenth of the budget, capped at five seconds and
		// never past the deadline.
		remaining := deadline.Sub(now)
		sleep := min(remaining, min(maxPollInterval, c.retryableFor/10))
		c.logger.Debug("clause not yet satisfied, retrying",
			zap.String("clause", c.title),
			zap.Duration("remaining", remaining),
			zap.Duration("sleep", sleep))
		c.clock.Sleep(sleep)

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("verifying clause %q: %w", c.title, err)
		}
	}
}

// verifyOnce performs a single observation and verification attempt.
func (c *Clause) verifyOnce(ctx context.Context) *verify.ObservationResult {
	observation := c.observer.Observe(ctx)
	return c.verifier.Verify(observation)
}
