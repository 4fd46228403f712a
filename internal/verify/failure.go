package verify

import (
	"fmt"
	"regexp"

	"proviso/internal/observe"
	"proviso/internal/pred"
)

// FailureVerifier inverts the usual intent: it expects the
// observation to contain at least one error whose message matches the
// bound pattern, treating a specific negative outcome (for example
// "resource not found") as the successful case. An observation with
// no errors, or with no matching error, fails.
type FailureVerifier struct {
	title   string
	pattern *regexp.Regexp
}

// NewFailureVerifier creates a failure verifier for the given error
// pattern. An unparseable pattern is a construction-time error.
func NewFailureVerifier(title, pattern string) (*FailureVerifier, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid error pattern %q: %w", pattern, err)
	}
	return &FailureVerifier{title: title, pattern: re}, nil
}

// Title implements Verifier.
func (v *FailureVerifier) Title() string { return v.title }

// Verify implements Verifier.
func (v *FailureVerifier) Verify(observation *observe.Observation) *ObservationResult {
	builder := newResultBuilder(observation)

	for _, err := range observation.Errors() {
		if v.pattern.MatchString(err.Error()) {
			comment := fmt.Sprintf("Observation error matches %q.", v.pattern)
			result := pred.NewResult(true, comment)
			builder.all = append(builder.all, result)
			builder.good = append(builder.good, ObjectResult{Result: result})
			return builder.build(true, comment)
		}
	}

	comment := "Expected error was not found."
	if len(observation.Errors()) == 0 {
		comment = "Observation had no errors."
	}
	result := pred.NewResult(false, comment)
	builder.all = append(builder.all, result)
	builder.bad = append(builder.bad, ObjectResult{Result: result})
	return builder.build(false, comment)
}
