package pred

import (
	"fmt"

	"proviso/internal/jsonval"
)

// ExistentialPredicate accepts a list when at least one element
// satisfies the bound element predicate. Evaluation stops at the
// first passing element and reports only that good result; if no
// element passes, every failing attempt is reported. Nested lists
// recurse. Applied to a non-list value, the element predicate is
// applied directly.
type ExistentialPredicate struct {
	elemPred Predicate
}

// Exists creates an existential quantifier over elemPred.
func Exists(elemPred Predicate) *ExistentialPredicate {
	return &ExistentialPredicate{elemPred: elemPred}
}

func (p *ExistentialPredicate) String() string {
	return fmt.Sprintf("Exists(%v)", p.elemPred)
}

// Evaluate implements Predicate.
func (p *ExistentialPredicate) Evaluate(value jsonval.Value) Result {
	list, ok := value.(jsonval.Array)
	if !ok {
		return p.elemPred.Evaluate(value)
	}

	bad := make([]Result, 0, len(list))
	for _, elem := range list {
		var result Result
		if _, nested := elem.(jsonval.Array); nested {
			result = p.Evaluate(elem)
		} else {
			result = p.elemPred.Evaluate(elem)
		}
		if result.Valid() {
			return NewCompositeResult(true, p, []Result{result})
		}
		bad = append(bad, result)
	}
	return NewCompositeResult(false, p, bad)
}

// UniversalPredicate accepts a list when every element satisfies the
// bound element predicate. Every element is always evaluated, since
// all failures are diagnostically relevant. Applied to a non-list
// value, the element predicate is applied directly.
type UniversalPredicate struct {
	elemPred Predicate
}

// All creates a universal quantifier over elemPred.
func All(elemPred Predicate) *UniversalPredicate {
	return &UniversalPredicate{elemPred: elemPred}
}

func (p *UniversalPredicate) String() string {
	return fmt.Sprintf("All(%v)", p.elemPred)
}

// Evaluate implements Predicate.
func (p *UniversalPredicate) Evaluate(value jsonval.Value) Result {
	list, ok := value.(jsonval.Array)
	if !ok {
		return p.elemPred.Evaluate(value)
	}

	results := make([]Result, 0, len(list))
	valid := true
	for _, elem := range list {
		result := p.elemPred.Evaluate(elem)
		results = append(results, result)
		if !result.Valid() {
			valid = false
		}
	}
	return NewCompositeResult(valid, p, results)
}
