// Package verify combines predicates into verifiers that judge whole
// observations: a disjunctive-normal-form combinator, a constraint
// verifier with strict coverage semantics, and a failure verifier
// that expects specific observation errors.
package verify

import (
	"fmt"

	"proviso/internal/jsonval"
	"proviso/internal/observe"
	"proviso/internal/pred"
)

// ObjectResult pairs an observed object with one verdict about it.
type ObjectResult struct {
	Object jsonval.Value
	Result pred.Result
}

// ObservationResult is the structured outcome of verifying one
// observation. It satisfies pred.Result so contract results can nest
// it uniformly.
type ObservationResult struct {
	valid       bool
	comment     string
	observation *observe.Observation
	all         []pred.Result
	good        []ObjectResult
	bad         []ObjectResult
	failed      []pred.Predicate
}

// Valid implements pred.Result.
func (r *ObservationResult) Valid() bool { return r.valid }

// Comment implements pred.Result.
func (r *ObservationResult) Comment() string { return r.comment }

// Cause implements pred.Result.
func (r *ObservationResult) Cause() error { return nil }

// Observation returns the observation that was verified.
func (r *ObservationResult) Observation() *observe.Observation { return r.observation }

// AllResults returns every sub-evaluation that was attempted, not
// just the winning DNF term, for diagnostics.
func (r *ObservationResult) AllResults() []pred.Result { return r.all }

// GoodResults returns the object/verdict pairs that passed.
func (r *ObservationResult) GoodResults() []ObjectResult { return r.good }

// BadResults returns the object/verdict pairs that failed.
func (r *ObservationResult) BadResults() []ObjectResult { return r.bad }

// FailedConstraints returns the predicates that matched no object.
func (r *ObservationResult) FailedConstraints() []pred.Predicate { return r.failed }

// resultBuilder accumulates sub-results during a single synchronous
// verification pass. Never shared across goroutines.
type resultBuilder struct {
	observation *observe.Observation
	all         []pred.Result
	good        []ObjectResult
	bad         []ObjectResult
	failed      []pred.Predicate

	// validatedObjects collects the distinct objects satisfying at
	// least one constraint, for strict coverage accounting. Objects
	// are compared by deep equality since JSON values are unhashable.
	validatedObjects []jsonval.Value
}

func newResultBuilder(observation *observe.Observation) *resultBuilder {
	return &resultBuilder{observation: observation}
}

func (b *resultBuilder) markValidated(obj jsonval.Value) {
	for _, seen := range b.validatedObjects {
		if jsonval.Equal(seen, obj) {
			return
		}
	}
	b.validatedObjects = append(b.validatedObjects, obj)
}

// addMapResult merges the partition of one constraint mapped over
// the object list, recording each per-object attempt.
func (b *resultBuilder) addMapResult(constraint pred.Predicate, mr *pred.MapResult, satisfied bool) {
	b.all = append(b.all, mr.Results()...)
	b.addAttempts(constraint, mr, satisfied)
}

// addAttempts merges the partition without re-recording the attempts
// themselves, for callers that already appended a composite result
// covering them. An unsatisfied constraint is recorded as failed.
func (b *resultBuilder) addAttempts(constraint pred.Predicate, mr *pred.MapResult, satisfied bool) {
	for _, attempt := range mr.Good() {
		b.good = append(b.good, ObjectResult{Object: attempt.Object, Result: attempt.Result})
		b.markValidated(attempt.Object)
	}
	for _, attempt := range mr.Bad() {
		b.bad = append(b.bad, ObjectResult{Object: attempt.Object, Result: attempt.Result})
	}
	if !satisfied {
		b.failed = append(b.failed, constraint)
	}
}

// merge folds another verifier's result into this one. Both must
// refer to the same observation.
func (b *resultBuilder) merge(other *ObservationResult) {
	b.all = append(b.all, other.all...)
	b.good = append(b.good, other.good...)
	b.bad = append(b.bad, other.bad...)
	b.failed = append(b.failed, other.failed...)
	for _, entry := range other.good {
		b.markValidated(entry.Object)
	}
}

func (b *resultBuilder) build(valid bool, comment string) *ObservationResult {
	return &ObservationResult{
		valid:       valid,
		comment:     comment,
		observation: b.observation,
		all:         b.all,
		good:        b.good,
		bad:         b.bad,
		failed:      b.failed,
	}
}

// Verifier judges whether an observation satisfies some expectation.
type Verifier interface {
	// Title names the verifier for reporting.
	Title() string

	// Verify judges the observation.
	Verify(observation *observe.Observation) *ObservationResult
}

func verdictComment(title string, valid bool) string {
	if valid {
		return fmt.Sprintf("%q is satisfied.", title)
	}
	return fmt.Sprintf("%q failed.", title)
}
