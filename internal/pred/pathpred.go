package pred

import (
	"fmt"

	"proviso/internal/jsonval"
)

// PathPredicate resolves a path within the value and delegates the
// resolved value to an inner predicate. A nil inner predicate means
// "the path exists". The inner result is re-based to carry the outer
// source, path and trace, so a failure deep inside a quantifier or
// list still shows its full location in the original tree.
type PathPredicate struct {
	path string
	pred Predicate
}

// NewPathPredicate binds path and an optional inner predicate.
func NewPathPredicate(path string, pred Predicate) *PathPredicate {
	return &PathPredicate{path: path, pred: pred}
}

// Path returns the bound path.
func (p *PathPredicate) Path() string { return p.path }

// Pred returns the inner predicate, which may be nil.
func (p *PathPredicate) Pred() Predicate { return p.pred }

func (p *PathPredicate) String() string {
	if p.pred == nil {
		return fmt.Sprintf("%q exists", p.path)
	}
	return fmt.Sprintf("%q %v", p.path, p.pred)
}

// Evaluate implements Predicate.
func (p *PathPredicate) Evaluate(value jsonval.Value) Result {
	lookup := Lookup(value, p.path)
	found, ok := lookup.(*PathValueResult)
	if !ok || p.pred == nil {
		return lookup
	}
	inner := p.pred.Evaluate(found.Value)
	return Rebase(inner, value, found.Path, found.Trace)
}
