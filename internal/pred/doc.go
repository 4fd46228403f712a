// Package pred implements the predicate algebra used to verify
// JSON-shaped observations: path-addressed lookup into a value tree,
// binary comparisons, boolean combinators, quantifiers, and
// cardinality bounds over collections.
//
// Predicates are immutable once constructed and evaluation is pure:
// Evaluate never fails, it returns an invalid Result with structured
// diagnostics instead. Exceptions to that rule (for example an
// unparseable regular expression) surface as construction-time errors
// from the corresponding constructor.
package pred
