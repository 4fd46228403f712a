package pred

import (
	"fmt"

	"proviso/internal/jsonval"
)

// Attempt pairs an object with the result of applying a predicate to
// it, forming the entries of a MapResult partition.
type Attempt struct {
	Object jsonval.Value
	Result Result
}

func (a Attempt) String() string {
	return fmt.Sprintf("%s -> %s", jsonval.Canonical(a.Object), Summary(a.Result))
}

// MapResult partitions a collection under one predicate into the
// attempts that passed and the attempts that failed.
type MapResult struct {
	resultText
	pred    Predicate
	objects []jsonval.Value
	results []Result
	good    []Attempt
	bad     []Attempt
}

// Pred returns the mapped predicate.
func (r *MapResult) Pred() Predicate { return r.pred }

// Objects returns the collection the predicate was mapped over.
func (r *MapResult) Objects() []jsonval.Value { return r.objects }

// Results returns every attempt's result in order.
func (r *MapResult) Results() []Result { return r.results }

// Good returns the attempts that passed.
func (r *MapResult) Good() []Attempt { return r.good }

// Bad returns the attempts that failed.
func (r *MapResult) Bad() []Attempt { return r.bad }

// MapPredicate applies a predicate to every element of a list value
// (or to the value itself when it is not a list) and is valid when
// the number of passing elements falls within [min, max].
type MapPredicate struct {
	pred Predicate
	min  int
	max  int // Unbounded for no upper bound
}

// Unbounded disables the upper cardinality bound.
const Unbounded = -1

// NewMapPredicate creates a map predicate. max may be Unbounded.
func NewMapPredicate(pred Predicate, min, max int) *MapPredicate {
	return &MapPredicate{pred: pred, min: min, max: max}
}

// Pred returns the mapped predicate.
func (p *MapPredicate) Pred() Predicate { return p.pred }

func (p *MapPredicate) String() string {
	return fmt.Sprintf("Map(%v)", p.pred)
}

// Evaluate implements Predicate.
func (p *MapPredicate) Evaluate(value jsonval.Value) Result {
	var objects []jsonval.Value
	switch v := value.(type) {
	case nil, jsonval.Null:
		// Nothing to map over: zero attempts, zero matches.
	case jsonval.Array:
		objects = v
	default:
		objects = []jsonval.Value{value}
	}

	result := &MapResult{pred: p.pred, objects: objects}
	for _, obj := range objects {
		attempt := Attempt{Object: obj, Result: p.pred.Evaluate(obj)}
		result.results = append(result.results, attempt.Result)
		if attempt.Result.Valid() {
			result.good = append(result.good, attempt)
		} else {
			result.bad = append(result.bad, attempt)
		}
	}

	count := len(result.good)
	valid := count >= p.min && (p.max == Unbounded || count <= p.max)
	result.valid = valid
	result.comment = fmt.Sprintf("%d of %d objects satisfied %v.", count, len(objects), p.pred)
	return result
}
