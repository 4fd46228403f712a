package pred

import (
	"fmt"
	"slices"

	"proviso/internal/jsonval"
)

// PathAttrs carries the location context shared by path results:
// the outermost source value, the path addressed within it, and the
// ordered trace of traversal steps taken to get there.
type PathAttrs struct {
	Source jsonval.Value
	Path   string
	Trace  []PathValue
}

// PathValueResult reports a value reached at a path, together with
// the verdict of the predicate (if any) that inspected it.
type PathValueResult struct {
	resultText
	PathAttrs
	Value jsonval.Value
	Pred  Predicate // originating predicate, may be nil for bare lookups
}

// NewPathValueResult builds a found-value result.
func NewPathValueResult(attrs PathAttrs, value jsonval.Value, p Predicate, valid bool) *PathValueResult {
	var msg string
	if valid {
		msg = fmt.Sprintf("Found %s at %q.", jsonval.Canonical(value), attrs.Path)
	} else if p != nil {
		msg = fmt.Sprintf("%s at %q does not satisfy %v.", jsonval.Canonical(value), attrs.Path, p)
	} else {
		msg = fmt.Sprintf("%s at %q is not acceptable.", jsonval.Canonical(value), attrs.Path)
	}
	return &PathValueResult{
		resultText: resultText{valid: valid, comment: msg},
		PathAttrs:  attrs,
		Value:      value,
		Pred:       p,
	}
}

// MissingPathResult reports that the addressed path does not exist.
type MissingPathResult struct {
	resultText
	PathAttrs
}

// NewMissingPathResult builds an invalid missing-path result.
func NewMissingPathResult(attrs PathAttrs) *MissingPathResult {
	return &MissingPathResult{
		resultText: resultText{
			valid:   false,
			comment: fmt.Sprintf("Missing path %q.", attrs.Path),
		},
		PathAttrs: attrs,
	}
}

// TypeMismatchResult reports that a value had the wrong runtime type
// for the operation applied to it.
type TypeMismatchResult struct {
	resultText
	PathAttrs
	Expected jsonval.Kind
	Actual   jsonval.Kind
}

// NewTypeMismatchResult builds an invalid type-mismatch result.
func NewTypeMismatchResult(attrs PathAttrs, expected, actual jsonval.Kind) *TypeMismatchResult {
	comment := fmt.Sprintf("Expected %s but found %s.", expected, actual)
	if attrs.Path != "" {
		comment = fmt.Sprintf("Expected %s at %q but found %s.", expected, attrs.Path, actual)
	}
	return &TypeMismatchResult{
		resultText: resultText{valid: false, comment: comment},
		PathAttrs:  attrs,
		Expected:   expected,
		Actual:     actual,
	}
}

// Rebase clones a diagnostic result into an enclosing context so that
// a failure anywhere always shows its full location in the original
// tree, even when nested inside quantifiers or lists. The clone's
// paths are prefixed with basePath, its source is replaced by source,
// and baseTrace is prepended to its trace. Results without location
// context are returned unchanged.
func Rebase(r Result, source jsonval.Value, basePath string, baseTrace []PathValue) Result {
	switch res := r.(type) {
	case *PathValueResult:
		clone := *res
		clone.PathAttrs = rebaseAttrs(res.PathAttrs, source, basePath, baseTrace)
		return &clone
	case *MissingPathResult:
		clone := *res
		clone.PathAttrs = rebaseAttrs(res.PathAttrs, source, basePath, baseTrace)
		return &clone
	case *TypeMismatchResult:
		clone := *res
		clone.PathAttrs = rebaseAttrs(res.PathAttrs, source, basePath, baseTrace)
		return &clone
	case *CompositeResult:
		results := make([]Result, len(res.results))
		for i, sub := range res.results {
			results[i] = Rebase(sub, source, basePath, baseTrace)
		}
		clone := *res
		clone.results = results
		return &clone
	case *MapResult:
		results := make([]Result, len(res.results))
		for i, sub := range res.results {
			results[i] = Rebase(sub, source, basePath, baseTrace)
		}
		clone := *res
		clone.results = results
		clone.good = rebaseAttempts(res.good, source, basePath, baseTrace)
		clone.bad = rebaseAttempts(res.bad, source, basePath, baseTrace)
		return &clone
	}
	return r
}

func rebaseAttrs(attrs PathAttrs, source jsonval.Value, basePath string, baseTrace []PathValue) PathAttrs {
	trace := slices.Clone(baseTrace)
	for _, pv := range attrs.Trace {
		trace = append(trace, PathValue{Path: JoinPath(basePath, pv.Path), Value: pv.Value})
	}
	return PathAttrs{
		Source: source,
		Path:   JoinPath(basePath, attrs.Path),
		Trace:  trace,
	}
}

func rebaseAttempts(attempts []Attempt, source jsonval.Value, basePath string, baseTrace []PathValue) []Attempt {
	out := make([]Attempt, len(attempts))
	for i, a := range attempts {
		out[i] = Attempt{Object: a.Object, Result: Rebase(a.Result, source, basePath, baseTrace)}
	}
	return out
}
