package verify

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"proviso/internal/jsonval"
	"proviso/internal/observe"
	"proviso/internal/pred"
)

// ValueVerifier checks a set of constraints against an observation's
// objects. Each constraint must be satisfied by at least one object
// (not necessarily the same one). In strict mode the union of objects
// satisfying any constraint must additionally cover the entire
// observed object set, so no observed object is left unaccounted for.
type ValueVerifier struct {
	title       string
	constraints []pred.Predicate
	strict      bool
	logger      *zap.Logger
}

// NewValueVerifier creates a constraint verifier.
func NewValueVerifier(title string, constraints []pred.Predicate, strict bool) *ValueVerifier {
	return &ValueVerifier{
		title:       title,
		constraints: constraints,
		strict:      strict,
		logger:      zap.NewNop(),
	}
}

// WithLogger returns a copy using the given logger.
func (v *ValueVerifier) WithLogger(logger *zap.Logger) *ValueVerifier {
	clone := *v
	clone.logger = logger
	return &clone
}

// Title implements Verifier.
func (v *ValueVerifier) Title() string { return v.title }

// Strict reports whether strict coverage is enabled.
func (v *ValueVerifier) Strict() bool { return v.strict }

// Constraints returns the bound constraints.
func (v *ValueVerifier) Constraints() []pred.Predicate { return v.constraints }

// Verify implements Verifier.
func (v *ValueVerifier) Verify(observation *observe.Observation) *ObservationResult {
	builder := newResultBuilder(observation)

	// An observation that could not be collected cannot satisfy value
	// constraints; surface every constraint as failed.
	if len(observation.Errors()) > 0 {
		msgs := make([]string, len(observation.Errors()))
		for i, err := range observation.Errors() {
			msgs[i] = err.Error()
		}
		comment := fmt.Sprintf("Observation has errors: %s.", strings.Join(msgs, "; "))
		v.logger.Debug("failing verification because of observation errors",
			zap.String("title", v.title), zap.Strings("errors", msgs))
		failure := pred.NewErrorResult(comment, errors.Join(observation.Errors()...))
		builder.all = append(builder.all, failure)
		builder.bad = append(builder.bad, ObjectResult{Result: failure})
		builder.failed = append(builder.failed, v.constraints...)
		return builder.build(false, comment)
	}

	// With no objects at all, each constraint is checked against a
	// single null object so absence expectations can still pass.
	objects := observation.Objects()
	if len(objects) == 0 {
		objects = []jsonval.Value{jsonval.Null{}}
	}
	objectList := jsonval.Array(objects)

	valid := true
	for _, constraint := range v.constraints {
		var satisfied bool

		if cardinality, ok := constraint.(*pred.CardinalityPredicate); ok {
			// Cardinality constraints judge the collection as a whole.
			// The composite already carries the per-object attempts,
			// so only the partition is merged alongside it.
			result := cardinality.Evaluate(objectList).(*pred.CardinalityResult)
			satisfied = result.Valid()
			builder.all = append(builder.all, result)
			builder.addAttempts(constraint, result.MapResult, satisfied)
		} else {
			mapResult := pred.NewMapPredicate(constraint, 1, pred.Unbounded).
				Evaluate(objectList).(*pred.MapResult)
			satisfied = mapResult.Valid()
			builder.addMapResult(constraint, mapResult, satisfied)
		}

		if !satisfied {
			v.logger.Debug("constraint failed",
				zap.String("title", v.title), zap.String("constraint", constraint.String()))
			valid = false
		}
	}

	comment := verdictComment(v.title, valid)
	if valid && v.strict {
		covered := len(builder.validatedObjects)
		total := len(objects)
		if covered != total {
			valid = false
			comment = fmt.Sprintf("Strict verifier %q confirmed %d of %d objects.",
				v.title, covered, total)
			v.logger.Info("strict coverage failed",
				zap.String("title", v.title), zap.Int("covered", covered), zap.Int("objects", total))
		}
	}

	return builder.build(valid, comment)
}
