package pred

import (
	"fmt"

	"proviso/internal/jsonval"
)

// CardinalityKind classifies the outcome of a cardinality check.
type CardinalityKind string

const (
	// CardinalityConfirmed means the match count fell within bounds
	// (including "none expected, none found").
	CardinalityConfirmed CardinalityKind = "confirmed"

	// CardinalityMissing means matches were expected but none found.
	CardinalityMissing CardinalityKind = "missing"

	// CardinalityUnexpected means matches were found where none were
	// expected (max == 0).
	CardinalityUnexpected CardinalityKind = "unexpected"

	// CardinalityFailedRange means matches were found but the count
	// fell outside [min, max].
	CardinalityFailedRange CardinalityKind = "failed-range"
)

// CardinalityResult reports how many elements of a collection
// satisfied the mapped predicate and how that count classified
// against the bounds. The underlying MapResult records the per-object
// partition.
type CardinalityResult struct {
	resultText
	Kind      CardinalityKind
	Pred      *CardinalityPredicate
	Source    jsonval.Value
	Count     int
	MapResult *MapResult
}

// CardinalityPredicate wraps a predicate in a collection-mapping
// operation and bounds the number of passing elements to [min, max].
// max may be Unbounded.
type CardinalityPredicate struct {
	pred    Predicate
	mapPred *MapPredicate
	min     int
	max     int
}

// NewCardinality creates a cardinality predicate over pred.
func NewCardinality(pred Predicate, min, max int) *CardinalityPredicate {
	return &CardinalityPredicate{
		pred:    pred,
		mapPred: NewMapPredicate(pred, min, max),
		min:     min,
		max:     max,
	}
}

// Pred returns the mapped predicate.
func (p *CardinalityPredicate) Pred() Predicate { return p.pred }

// Min returns the lower bound.
func (p *CardinalityPredicate) Min() int { return p.min }

// Max returns the upper bound, Unbounded for none.
func (p *CardinalityPredicate) Max() int { return p.max }

func (p *CardinalityPredicate) String() string {
	maxStr := "Any"
	if p.max != Unbounded {
		maxStr = fmt.Sprintf("%d", p.max)
	}
	return fmt.Sprintf("Cardinality(%v) %d..%s", p.pred, p.min, maxStr)
}

// Evaluate implements Predicate.
func (p *CardinalityPredicate) Evaluate(value jsonval.Value) Result {
	mapResult := p.mapPred.Evaluate(value).(*MapResult)
	count := len(mapResult.Good())

	var kind CardinalityKind
	switch {
	case count == 0 && p.max != 0:
		kind = CardinalityMissing
	case count == 0:
		kind = CardinalityConfirmed
	case p.max == 0:
		kind = CardinalityUnexpected
	case count >= p.min && (p.max == Unbounded || count <= p.max):
		kind = CardinalityConfirmed
	default:
		kind = CardinalityFailedRange
	}

	return &CardinalityResult{
		resultText: resultText{
			valid:   kind == CardinalityConfirmed,
			comment: p.classifyComment(kind, count),
		},
		Kind:      kind,
		Pred:      p,
		Source:    value,
		Count:     count,
		MapResult: mapResult,
	}
}

func (p *CardinalityPredicate) classifyComment(kind CardinalityKind, count int) string {
	switch kind {
	case CardinalityConfirmed:
		if count == 0 {
			return fmt.Sprintf("Confirmed no %v.", p.pred)
		}
		return fmt.Sprintf("Confirmed %v with count=%d.", p.pred, count)
	case CardinalityMissing:
		return fmt.Sprintf("Expected to find %v. No values found.", p.pred)
	case CardinalityUnexpected:
		return fmt.Sprintf("Found unexpected %v: count=%d.", p.pred, count)
	default:
		maxStr := "Any"
		if p.max != Unbounded {
			maxStr = fmt.Sprintf("%d", p.max)
		}
		return fmt.Sprintf("Found %d %v but expected %d..%s.", count, p.pred, p.min, maxStr)
	}
}
