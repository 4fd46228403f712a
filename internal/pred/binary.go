package pred

import (
	"fmt"
	"regexp"
	"strings"

	"proviso/internal/jsonval"
)

// comparisonPredicate binds an operand and a comparison function,
// optionally enforcing a runtime kind on the value. A mismatched
// kind yields a TypeMismatchResult, never a panic.
type comparisonPredicate struct {
	name    string
	operand jsonval.Value
	kind    jsonval.Kind // required value kind, empty for no constraint
	compare func(value, operand jsonval.Value) bool
}

func (p *comparisonPredicate) Evaluate(value jsonval.Value) Result {
	if p.kind != "" && jsonval.KindOf(value) != p.kind {
		return NewTypeMismatchResult(
			PathAttrs{Source: value}, p.kind, jsonval.KindOf(value))
	}
	valid := p.compare(value, p.operand)
	return NewPathValueResult(PathAttrs{Source: value}, value, p, valid)
}

func (p *comparisonPredicate) String() string {
	return fmt.Sprintf("%s %s", p.name, jsonval.Canonical(p.operand))
}

// StrEQ matches string values equal to operand.
func StrEQ(operand string) Predicate {
	return &comparisonPredicate{
		name: "==", operand: jsonval.String(operand), kind: jsonval.KindString,
		compare: func(v, o jsonval.Value) bool { return v == o },
	}
}

// StrNE matches string values different from operand.
func StrNE(operand string) Predicate {
	return &comparisonPredicate{
		name: "!=", operand: jsonval.String(operand), kind: jsonval.KindString,
		compare: func(v, o jsonval.Value) bool { return v != o },
	}
}

// StrSubstr matches string values containing operand as a substring.
func StrSubstr(operand string) Predicate {
	return &comparisonPredicate{
		name: "has-substring", operand: jsonval.String(operand), kind: jsonval.KindString,
		compare: func(v, o jsonval.Value) bool {
			return strings.Contains(string(v.(jsonval.String)), string(o.(jsonval.String)))
		},
	}
}

// StrRegex matches string values containing a match of the pattern.
// An unparseable pattern is a construction-time error.
func StrRegex(pattern string) (Predicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regexp %q: %w", pattern, err)
	}
	return &comparisonPredicate{
		name: "matches", operand: jsonval.String(pattern), kind: jsonval.KindString,
		compare: func(v, _ jsonval.Value) bool {
			return re.MatchString(string(v.(jsonval.String)))
		},
	}, nil
}

func numPredicate(name string, operand float64, op func(a, b float64) bool) Predicate {
	return &comparisonPredicate{
		name: name, operand: jsonval.Number(operand), kind: jsonval.KindNumber,
		compare: func(v, o jsonval.Value) bool {
			return op(float64(v.(jsonval.Number)), float64(o.(jsonval.Number)))
		},
	}
}

// NumEQ matches numeric values equal to operand.
func NumEQ(operand float64) Predicate {
	return numPredicate("==", operand, func(a, b float64) bool { return a == b })
}

// NumNE matches numeric values different from operand.
func NumNE(operand float64) Predicate {
	return numPredicate("!=", operand, func(a, b float64) bool { return a != b })
}

// NumLE matches numeric values at most operand.
func NumLE(operand float64) Predicate {
	return numPredicate("<=", operand, func(a, b float64) bool { return a <= b })
}

// NumGE matches numeric values at least operand.
func NumGE(operand float64) Predicate {
	return numPredicate(">=", operand, func(a, b float64) bool { return a >= b })
}

// DictEQ matches object values deep-equal to operand.
func DictEQ(operand jsonval.Object) Predicate {
	return &comparisonPredicate{
		name: "==", operand: operand, kind: jsonval.KindObject,
		compare: jsonval.Equal,
	}
}

// DictNE matches object values not deep-equal to operand.
func DictNE(operand jsonval.Object) Predicate {
	return &comparisonPredicate{
		name: "!=", operand: operand, kind: jsonval.KindObject,
		compare: func(v, o jsonval.Value) bool { return !jsonval.Equal(v, o) },
	}
}

// ListEQ matches array values deep-equal to operand.
func ListEQ(operand jsonval.Array) Predicate {
	return &comparisonPredicate{
		name: "==", operand: operand, kind: jsonval.KindArray,
		compare: jsonval.Equal,
	}
}

// ListNE matches array values not deep-equal to operand.
func ListNE(operand jsonval.Array) Predicate {
	return &comparisonPredicate{
		name: "!=", operand: operand, kind: jsonval.KindArray,
		compare: func(v, o jsonval.Value) bool { return !jsonval.Equal(v, o) },
	}
}

// ListSimilar matches array values holding the same elements as
// operand regardless of order. Duplicates count: every element must
// be paired with a distinct element of the other side.
func ListSimilar(operand jsonval.Array) Predicate {
	return &comparisonPredicate{
		name: "~=", operand: operand, kind: jsonval.KindArray,
		compare: func(v, o jsonval.Value) bool {
			return listsSimilar(v.(jsonval.Array), o.(jsonval.Array))
		},
	}
}

func listsSimilar(a, b jsonval.Array) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, elem := range a {
		found := false
		for i, other := range b {
			if !used[i] && jsonval.Equal(elem, other) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
