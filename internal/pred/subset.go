package pred

import (
	"fmt"

	"proviso/internal/jsonval"
)

// DictSubsetPredicate requires every key in its operand to be present
// in the target object with a matching value: nested objects and
// lists recurse under the same subset rule, scalar values must match
// exactly. A missing key at any depth names the exact path.
type DictSubsetPredicate struct {
	operand jsonval.Object
}

// DictSubset creates a subset predicate for operand.
func DictSubset(operand jsonval.Object) *DictSubsetPredicate {
	return &DictSubsetPredicate{operand: operand}
}

func (p *DictSubsetPredicate) String() string {
	return fmt.Sprintf("has-subset %s", jsonval.Canonical(p.operand))
}

// Evaluate implements Predicate.
func (p *DictSubsetPredicate) Evaluate(value jsonval.Value) Result {
	target, ok := value.(jsonval.Object)
	if !ok {
		return NewTypeMismatchResult(
			PathAttrs{Source: value}, jsonval.KindObject, jsonval.KindOf(value))
	}
	return p.isSubset(value, "", p.operand, target)
}

// isSubset checks that every entry of a appears in b, recursing into
// compound values. path locates b within source.
func (p *DictSubsetPredicate) isSubset(source jsonval.Value, path string, a, b jsonval.Object) Result {
	for _, key := range a.SortedKeys() {
		want := a[key]
		keyPath := JoinPath(path, key)

		got, ok := b[key]
		if !ok {
			return NewMissingPathResult(PathAttrs{
				Source: source,
				Path:   keyPath,
				Trace:  []PathValue{{Path: path, Value: b}},
			})
		}

		switch gotValue := got.(type) {
		case jsonval.Object:
			wantObj, ok := want.(jsonval.Object)
			if !ok {
				return NewTypeMismatchResult(
					PathAttrs{Source: source, Path: keyPath},
					jsonval.KindOf(want), jsonval.KindObject)
			}
			if result := p.isSubset(source, keyPath, wantObj, gotValue); !result.Valid() {
				return result
			}

		case jsonval.Array:
			var elemPred Predicate
			if wantArr, ok := want.(jsonval.Array); ok {
				elemPred = ListSubset(wantArr, false)
			} else {
				elemPred = Contains(want)
			}
			if result := elemPred.Evaluate(gotValue); !result.Valid() {
				return Rebase(result, source, keyPath, nil)
			}

		default:
			if jsonval.KindOf(want) != jsonval.KindOf(got) {
				return NewTypeMismatchResult(
					PathAttrs{Source: source, Path: keyPath, Trace: []PathValue{{Path: path, Value: b}}},
					jsonval.KindOf(got), jsonval.KindOf(want))
			}
			if !jsonval.Equal(want, got) {
				return NewPathValueResult(
					PathAttrs{Source: source, Path: keyPath, Trace: []PathValue{{Path: keyPath, Value: got}}},
					got, equalityFor(want), false)
			}
		}
	}

	return NewPathValueResult(
		PathAttrs{Source: source, Path: path, Trace: []PathValue{{Path: path, Value: b}}},
		b, p, true)
}

// equalityFor picks the kind-appropriate equality predicate for a
// terminal operand value, used to attribute subset failures.
func equalityFor(operand jsonval.Value) Predicate {
	switch v := operand.(type) {
	case jsonval.String:
		return StrEQ(string(v))
	case jsonval.Number:
		return NumEQ(float64(v))
	default:
		return Equivalent(operand)
	}
}

// listMatcher implements the shared membership test behind list
// subset and membership predicates. The non-strict default matches a
// compound element when some target element contains it as a subset;
// strict mode requires an exact element match.
type listMatcher struct {
	strict bool
}

func (m listMatcher) verifyElem(elem jsonval.Value, list jsonval.Array) bool {
	if m.strict || isScalar(elem) {
		for _, item := range list {
			if jsonval.Equal(elem, item) {
				return true
			}
		}
		return false
	}

	var elemPred Predicate
	switch v := elem.(type) {
	case jsonval.Array:
		elemPred = ListSubset(v, false)
	case jsonval.Object:
		elemPred = DictSubset(v)
	default:
		return false
	}

	for _, item := range list {
		if elemPred.Evaluate(item).Valid() {
			return true
		}
	}
	return false
}

func isScalar(v jsonval.Value) bool {
	switch jsonval.KindOf(v) {
	case jsonval.KindArray, jsonval.KindObject:
		return false
	}
	return true
}

// ListSubsetPredicate requires every operand element to be present in
// the target list, under the listMatcher rules.
type ListSubsetPredicate struct {
	listMatcher
	operand jsonval.Array
}

// ListSubset creates a list-subset predicate for operand.
func ListSubset(operand jsonval.Array, strict bool) *ListSubsetPredicate {
	return &ListSubsetPredicate{listMatcher{strict: strict}, operand}
}

func (p *ListSubsetPredicate) String() string {
	return fmt.Sprintf("has-subset %s", jsonval.Canonical(p.operand))
}

// Evaluate implements Predicate.
func (p *ListSubsetPredicate) Evaluate(value jsonval.Value) Result {
	target, ok := value.(jsonval.Array)
	if !ok {
		return NewTypeMismatchResult(
			PathAttrs{Source: value}, jsonval.KindArray, jsonval.KindOf(value))
	}
	for _, elem := range p.operand {
		if !p.verifyElem(elem, target) {
			return NewPathValueResult(PathAttrs{Source: value}, value, p, false)
		}
	}
	return NewPathValueResult(PathAttrs{Source: value}, value, p, true)
}

// ListMembershipPredicate requires the single operand to be present
// in the target list.
type ListMembershipPredicate struct {
	listMatcher
	operand jsonval.Value
}

// ListMembership creates a membership predicate for operand.
func ListMembership(operand jsonval.Value, strict bool) *ListMembershipPredicate {
	return &ListMembershipPredicate{listMatcher{strict: strict}, operand}
}

func (p *ListMembershipPredicate) String() string {
	return fmt.Sprintf("has-elem %s", jsonval.Canonical(p.operand))
}

// Evaluate implements Predicate.
func (p *ListMembershipPredicate) Evaluate(value jsonval.Value) Result {
	target, ok := value.(jsonval.Array)
	if !ok {
		return NewTypeMismatchResult(
			PathAttrs{Source: value}, jsonval.KindArray, jsonval.KindOf(value))
	}
	valid := p.verifyElem(p.operand, target)
	return NewPathValueResult(PathAttrs{Source: value}, value, p, valid)
}
