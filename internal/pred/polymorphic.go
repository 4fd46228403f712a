package pred

import (
	"fmt"

	"proviso/internal/jsonval"
)

// ContainsPredicate interprets "contains" by the runtime type of the
// value it is applied to:
//
//	string  -> operand is a substring
//	object  -> operand is a subset
//	number  -> operand equals the value
//	list    -> list operand is a subset; any other operand exists
//	           in some element, recursing into nested lists
//	bool,
//	null    -> operand equals the value
type ContainsPredicate struct {
	operand jsonval.Value
}

// Contains creates a polymorphic containment predicate for operand.
func Contains(operand jsonval.Value) *ContainsPredicate {
	return &ContainsPredicate{operand: operand}
}

func (p *ContainsPredicate) String() string {
	return fmt.Sprintf("contains %s", jsonval.Canonical(p.operand))
}

// Evaluate implements Predicate.
func (p *ContainsPredicate) Evaluate(value jsonval.Value) Result {
	switch v := value.(type) {
	case jsonval.String:
		operand, ok := p.operand.(jsonval.String)
		if !ok {
			return NewTypeMismatchResult(
				PathAttrs{Source: value}, jsonval.KindString, jsonval.KindOf(p.operand))
		}
		return StrSubstr(string(operand)).Evaluate(value)

	case jsonval.Object:
		operand, ok := p.operand.(jsonval.Object)
		if !ok {
			return NewTypeMismatchResult(
				PathAttrs{Source: value}, jsonval.KindObject, jsonval.KindOf(p.operand))
		}
		return DictSubset(operand).Evaluate(value)

	case jsonval.Number:
		operand, ok := p.operand.(jsonval.Number)
		if !ok {
			return NewTypeMismatchResult(
				PathAttrs{Source: value}, jsonval.KindNumber, jsonval.KindOf(p.operand))
		}
		return NumEQ(float64(operand)).Evaluate(value)

	case jsonval.Array:
		if operand, ok := p.operand.(jsonval.Array); ok {
			return ListSubset(operand, false).Evaluate(value)
		}
		// The value is a list but the operand is not: existential
		// search, recursing into nested lists until something matches
		// or the list is exhausted.
		for _, elem := range v {
			if result := p.Evaluate(elem); result.Valid() {
				return result
			}
		}
		return NewPathValueResult(PathAttrs{Source: value}, value, p, false)

	default:
		// Containment degenerates to equality for null and bool.
		valid := jsonval.Equal(value, p.operand)
		return NewPathValueResult(PathAttrs{Source: value}, value, p, valid)
	}
}

// EquivalentPredicate is a type-dispatching polymorphic equality: the
// operand must have the same runtime kind as the value and compare
// deep-equal to it. Lists are compared as multisets, so element order
// does not matter.
type EquivalentPredicate struct {
	operand jsonval.Value
}

// Equivalent creates a polymorphic equality predicate for operand.
func Equivalent(operand jsonval.Value) *EquivalentPredicate {
	return &EquivalentPredicate{operand: operand}
}

func (p *EquivalentPredicate) String() string {
	return fmt.Sprintf("equivalent %s", jsonval.Canonical(p.operand))
}

// Evaluate implements Predicate.
func (p *EquivalentPredicate) Evaluate(value jsonval.Value) Result {
	if jsonval.KindOf(p.operand) != jsonval.KindOf(value) {
		return NewTypeMismatchResult(
			PathAttrs{Source: value}, jsonval.KindOf(value), jsonval.KindOf(p.operand))
	}
	if operand, ok := p.operand.(jsonval.Array); ok {
		return ListSimilar(operand).Evaluate(value)
	}
	valid := jsonval.Equal(value, p.operand)
	return NewPathValueResult(PathAttrs{Source: value}, value, p, valid)
}

// DifferentPredicate is the polymorphic inequality dual of
// EquivalentPredicate, except that lists compare element-by-element
// in order.
type DifferentPredicate struct {
	operand jsonval.Value
}

// Different creates a polymorphic inequality predicate for operand.
func Different(operand jsonval.Value) *DifferentPredicate {
	return &DifferentPredicate{operand: operand}
}

func (p *DifferentPredicate) String() string {
	return fmt.Sprintf("different %s", jsonval.Canonical(p.operand))
}

// Evaluate implements Predicate.
func (p *DifferentPredicate) Evaluate(value jsonval.Value) Result {
	if jsonval.KindOf(p.operand) != jsonval.KindOf(value) {
		return NewTypeMismatchResult(
			PathAttrs{Source: value}, jsonval.KindOf(value), jsonval.KindOf(p.operand))
	}
	valid := !jsonval.Equal(value, p.operand)
	return NewPathValueResult(PathAttrs{Source: value}, value, p, valid)
}
