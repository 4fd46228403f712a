package contract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proviso/internal/observe"
	"proviso/internal/testutil"
)

type recordedCall struct {
	op    string
	runID string
}

type fakeRecorder struct {
	calls []recordedCall
}

func (r *fakeRecorder) BeginRun(_ context.Context, runID, _ string, _ time.Time) error {
	r.calls = append(r.calls, recordedCall{op: "begin", runID: runID})
	return nil
}

func (r *fakeRecorder) RecordClause(_ context.Context, runID string, _ *ClauseResult) error {
	r.calls = append(r.calls, recordedCall{op: "clause", runID: runID})
	return nil
}

func (r *fakeRecorder) FinishRun(_ context.Context, runID string, _ bool, _ time.Time) error {
	r.calls = append(r.calls, recordedCall{op: "finish", runID: runID})
	return nil
}

func TestContract_RunsEveryClause(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	failing := NewClause("first",
		observe.NewStaticObserver(stateObject("DOWN")), stateIs("UP"),
		WithClock(clock))
	passing := NewClause("second",
		observe.NewStaticObserver(stateObject("UP")), stateIs("UP"),
		WithClock(clock))

	c := New("deployment", []*Clause{failing, passing},
		WithContractClock(clock))
	result, err := c.Verify(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Valid())
	require.Len(t, result.ClauseResults, 2,
		"a failed clause does not stop later clauses")
	assert.False(t, result.ClauseResults[0].Valid())
	assert.True(t, result.ClauseResults[1].Valid())
	assert.NotEmpty(t, result.RunID)
}

func TestContract_RecorderSeesWholeRun(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	clause := NewClause("only",
		observe.NewStaticObserver(stateObject("UP")), stateIs("UP"),
		WithClock(clock))

	recorder := &fakeRecorder{}
	c := New("deployment", []*Clause{clause},
		WithRecorder(recorder), WithContractClock(clock))

	result, err := c.Verify(context.Background())
	require.NoError(t, err)
	require.True(t, result.Valid())

	require.Len(t, recorder.calls, 3)
	assert.Equal(t, "begin", recorder.calls[0].op)
	assert.Equal(t, "clause", recorder.calls[1].op)
	assert.Equal(t, "finish", recorder.calls[2].op)
	for _, call := range recorder.calls {
		assert.Equal(t, result.RunID, call.runID)
	}
}

func TestContract_Comment(t *testing.T) {
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	clause := NewClause("only",
		observe.NewStaticObserver(stateObject("UP")), stateIs("UP"),
		WithClock(clock))

	c := New("deployment", []*Clause{clause}, WithContractClock(clock))
	result, err := c.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Contract OK\n  * Clause \"only\" OK", result.Comment())
}

func TestContract_FatalClauseConfigAbortsRun(t *testing.T) {
	broken := NewClause("broken", nil, stateIs("UP"))
	c := New("deployment", []*Clause{broken})

	_, err := c.Verify(context.Background())
	assert.Error(t, err)
}
