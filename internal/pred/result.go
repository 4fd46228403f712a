package pred

import "fmt"

// Result is the verdict of evaluating a predicate against a value.
// Results are immutable once produced.
type Result interface {
	// Valid reports whether the value satisfied the predicate.
	Valid() bool

	// Comment is an informal diagnostic message for reporting.
	Comment() string

	// Cause is an optional upstream error behind an invalid result.
	Cause() error
}

// resultText carries the fields shared by every Result implementation.
type resultText struct {
	valid   bool
	comment string
	cause   error
}

func (r resultText) Valid() bool     { return r.valid }
func (r resultText) Comment() string { return r.comment }
func (r resultText) Cause() error    { return r.cause }

// Summary renders a one-line GOOD/BAD summary of a result.
func Summary(r Result) string {
	verdict := "BAD"
	if r.Valid() {
		verdict = "GOOD"
	}
	message := r.Comment()
	if message == "" {
		message = fmt.Sprintf("%T", r)
	}
	return fmt.Sprintf("%s (%s)", message, verdict)
}

// SimpleResult is a leaf verdict with no location context.
type SimpleResult struct {
	resultText
}

// NewResult creates a SimpleResult with the given verdict and comment.
func NewResult(valid bool, comment string) *SimpleResult {
	return &SimpleResult{resultText{valid: valid, comment: comment}}
}

// NewErrorResult creates an invalid SimpleResult caused by an
// out-of-band error, such as an observation failure.
func NewErrorResult(comment string, cause error) *SimpleResult {
	return &SimpleResult{resultText{valid: false, comment: comment, cause: cause}}
}

// CompositeResult records the sub-evaluations performed by a
// combinator, including short-circuit truncation: the Results list
// holds exactly the evaluations that were attempted, in order.
type CompositeResult struct {
	resultText
	pred    Predicate
	results []Result
}

// NewCompositeResult creates a CompositeResult for pred with the
// attempted sub-results.
func NewCompositeResult(valid bool, pred Predicate, results []Result) *CompositeResult {
	return &CompositeResult{
		resultText: resultText{valid: valid, comment: comment(valid, pred)},
		pred:       pred,
		results:    results,
	}
}

// Pred returns the combinator that produced this result.
func (r *CompositeResult) Pred() Predicate { return r.pred }

// Results returns the ordered sub-results that were evaluated.
func (r *CompositeResult) Results() []Result { return r.results }

func comment(valid bool, pred Predicate) string {
	if valid {
		return fmt.Sprintf("%v passed.", pred)
	}
	return fmt.Sprintf("%v failed.", pred)
}
