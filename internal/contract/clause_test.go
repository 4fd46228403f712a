package contract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proviso/internal/jsonval"
	"proviso/internal/observe"
	"proviso/internal/pred"
	"proviso/internal/testutil"
	"proviso/internal/verify"
)

// scriptedObserver returns one canned object per attempt, repeating
// the final entry once the script is exhausted.
type scriptedObserver struct {
	script []jsonval.Value
	calls  int
}

func (s *scriptedObserver) Observe(context.Context) *observe.Observation {
	obs := observe.NewObservation()
	i := s.calls
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	s.calls++
	obs.AddObject(s.script[i])
	return obs
}

func stateIs(state string) verify.Verifier {
	return verify.NewValueVerifier("state is "+state, []pred.Predicate{
		pred.NewPathPredicate("state", pred.StrEQ(state)),
	}, false)
}

func stateObject(state string) jsonval.Value {
	return jsonval.Object{"state": jsonval.String(state)}
}

func TestClause_SucceedsFirstAttempt(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	clause := NewClause("server up",
		observe.NewStaticObserver(stateObject("UP")),
		stateIs("UP"),
		WithClock(clock))

	result, err := clause.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateSucceeded, result.State)
	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, clock.Sleeps())
}

func TestClause_ZeroBudgetMeansOneAttempt(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	observer := &scriptedObserver{script: []jsonval.Value{stateObject("DOWN")}}
	clause := NewClause("server up", observer, stateIs("UP"), WithClock(clock))

	result, err := clause.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateTimedOut, result.State)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 1, observer.calls)
	assert.Empty(t, clock.Sleeps(), "no retry budget, no polling")
	assert.False(t, result.Verification.Valid())
}

func TestClause_RetriesUntilObserverConverges(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	observer := &scriptedObserver{script: []jsonval.Value{
		stateObject("PENDING"),
		stateObject("PENDING"),
		stateObject("UP"),
	}}
	clause := NewClause("server up", observer, stateIs("UP"),
		WithClock(clock), WithRetryBudget(60*time.Second))

	result, err := clause.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateSucceeded, result.State)
	assert.Equal(t, 3, result.Attempts)
	// 60s budget: a tenth is 6s, capped at the 5s poll ceiling.
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, clock.Sleeps())
}

func TestClause_PollIntervalIsTenthOfBudget(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	observer := &scriptedObserver{script: []jsonval.Value{
		stateObject("PENDING"),
		stateObject("UP"),
	}}
	clause := NewClause("server up", observer, stateIs("UP"),
		WithClock(clock), WithRetryBudget(20*time.Second))

	_, err := clause.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{2 * time.Second}, clock.Sleeps())
}

func TestClause_TimesOutWithLastResult(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	observer := &scriptedObserver{script: []jsonval.Value{stateObject("DOWN")}}
	clause := NewClause("server up", observer, stateIs("UP"),
		WithClock(clock), WithRetryBudget(10*time.Second))

	result, err := clause.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateTimedOut, result.State)
	// 1s polls against a 10s budget: ten sleeps, eleven attempts.
	assert.Equal(t, 11, result.Attempts)
	assert.Len(t, clock.Sleeps(), 10)
	require.NotNil(t, result.Verification, "last failed verification is reported")
	assert.False(t, result.Verification.Valid())
	assert.False(t, result.Valid())
	assert.Equal(t, `Clause "server up" FAILED`, result.Comment())
}

func TestClause_ContextCancellationAborts(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	observer := &scriptedObserver{script: []jsonval.Value{stateObject("DOWN")}}
	clause := NewClause("server up", observer, stateIs("UP"),
		WithClock(clock), WithRetryBudget(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := clause.Verify(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClause_MissingObserverIsFatal(t *testing.T) {
	clause := NewClause("broken", nil, stateIs("UP"))
	_, err := clause.Verify(context.Background())
	assert.Error(t, err)

	clause = NewClause("broken", observe.NewStaticObserver(), nil)
	_, err = clause.Verify(context.Background())
	assert.Error(t, err)
}

func TestClauseResult_Comment(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	clause := NewClause("server up",
		observe.NewStaticObserver(stateObject("UP")), stateIs("UP"),
		WithClock(clock))

	result, err := clause.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `Clause "server up" OK`, result.Comment())
}
