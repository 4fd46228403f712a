package pred

import "proviso/internal/jsonval"

// Predicate decides whether a JSON value is acceptable.
//
// Implementations are immutable: operands are bound at construction
// and Evaluate is a pure function of the bound configuration and the
// value. Evaluate never panics and never returns an error; a value
// that cannot satisfy the predicate (wrong type, missing path, failed
// comparison) yields an ordinary invalid Result with diagnostics.
type Predicate interface {
	// Evaluate applies the predicate to value.
	Evaluate(value jsonval.Value) Result

	// String renders the predicate for diagnostics.
	String() string
}
