package verify

import (
	"go.uber.org/zap"

	"proviso/internal/observe"
)

// DNFVerifier combines sub-verifiers in disjunctive normal form: the
// outer terms are OR'd together and each term's inner verifiers are
// AND'd. Evaluation short-circuits a term at its first failing inner
// verifier and stops at the first fully-passing term, but every
// attempted sub-result is retained for diagnostics.
type DNFVerifier struct {
	title  string
	terms  [][]Verifier
	logger *zap.Logger
}

// NewDNFVerifier creates a DNF verifier over terms. A verifier with
// no terms fails by default.
func NewDNFVerifier(title string, terms ...[]Verifier) *DNFVerifier {
	return &DNFVerifier{title: title, terms: terms, logger: zap.NewNop()}
}

// WithLogger returns a copy using the given logger.
func (v *DNFVerifier) WithLogger(logger *zap.Logger) *DNFVerifier {
	clone := *v
	clone.logger = logger
	return &clone
}

// Title implements Verifier.
func (v *DNFVerifier) Title() string { return v.title }

// Terms returns the OR'd groups of AND'd verifiers.
func (v *DNFVerifier) Terms() [][]Verifier { return v.terms }

// Verify implements Verifier.
func (v *DNFVerifier) Verify(observation *observe.Observation) *ObservationResult {
	builder := newResultBuilder(observation)
	if len(v.terms) == 0 {
		v.logger.Warn("no verifiers were set, failing by default",
			zap.String("title", v.title))
	}

	valid := false
	for _, term := range v.terms {
		termValid := true
		for _, inner := range term {
			result := inner.Verify(observation)
			builder.merge(result)
			if !result.Valid() {
				termValid = false
				break
			}
		}
		if termValid {
			valid = true
			break
		}
	}

	return builder.build(valid, verdictComment(v.title, valid))
}
