package observe

import (
	"context"

	"proviso/internal/jsonval"
	"proviso/internal/pred"
)

// Observer collects a fresh Observation per verification attempt.
// Observation failures (unreachable source, undecodable payload) are
// recorded as Observation errors, not returned: the contract layer
// decides whether an errored observation fails verification.
type Observer interface {
	Observe(ctx context.Context) *Observation
}

// StaticObserver returns the same fixed objects on every attempt.
// Useful for tests and for verifying pre-collected snapshots.
type StaticObserver struct {
	objects []jsonval.Value
}

// NewStaticObserver creates an observer over fixed objects.
func NewStaticObserver(objects ...jsonval.Value) *StaticObserver {
	return &StaticObserver{objects: objects}
}

// Observe implements Observer.
func (s *StaticObserver) Observe(context.Context) *Observation {
	obs := NewObservation()
	obs.AddAllObjects(s.objects)
	return obs
}

// filterObjects applies an optional filter predicate to collected
// objects, keeping only the ones the filter accepts.
func filterObjects(objects []jsonval.Value, filter pred.Predicate) []jsonval.Value {
	if filter == nil {
		return objects
	}
	kept := make([]jsonval.Value, 0, len(objects))
	for _, obj := range objects {
		if filter.Evaluate(obj).Valid() {
			kept = append(kept, obj)
		}
	}
	return kept
}

// decodeIntoObservation decodes a JSON payload into an observation.
// A top-level array contributes each element as its own object, any
// other document is a single object.
func decodeIntoObservation(data []byte, filter pred.Predicate, obs *Observation) {
	value, err := jsonval.Decode(data)
	if err != nil {
		obs.AddError(&ObservationError{Op: "decode", Err: err})
		return
	}
	if arr, ok := value.(jsonval.Array); ok {
		obs.AddAllObjects(filterObjects(arr, filter))
		return
	}
	obs.AddAllObjects(filterObjects([]jsonval.Value{value}, filter))
}

// ObservationError wraps a collection failure with the operation that
// produced it. The message is what failure verifiers match against.
type ObservationError struct {
	Op  string
	Err error
}

func (e *ObservationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ObservationError) Unwrap() error { return e.Err }
