package specfile

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"proviso/internal/contract"
	"proviso/internal/jsonval"
	"proviso/internal/observe"
	"proviso/internal/pred"
	"proviso/internal/verify"
)

// Compile turns a validated document into an executable contract.
// Declarative mistakes the schema cannot express (a "matches" op with
// a non-string value, a clause with both expect and expect_error) are
// rejected here.
func Compile(doc *Document, logger *zap.Logger) (*contract.Contract, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clauses := make([]*contract.Clause, 0, len(doc.Clauses))
	for i, spec := range doc.Clauses {
		clause, err := compileClause(spec, logger)
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeCompile,
				Message: fmt.Sprintf("clause %d (%q): %v", i, spec.Title, err),
			}
		}
		clauses = append(clauses, clause)
	}
	return contract.New(doc.Title, clauses, contract.WithContractLogger(logger)), nil
}

func compileClause(spec ClauseSpec, logger *zap.Logger) (*contract.Clause, error) {
	observer, err := compileObserver(spec.Observer, logger)
	if err != nil {
		return nil, err
	}

	verifier, err := compileVerifier(spec)
	if err != nil {
		return nil, err
	}

	opts := []contract.ClauseOption{contract.WithLogger(logger)}
	if spec.RetryableFor != "" {
		budget, err := time.ParseDuration(spec.RetryableFor)
		if err != nil {
			return nil, fmt.Errorf("retryable_for: %w", err)
		}
		if budget < 0 {
			return nil, fmt.Errorf("retryable_for must not be negative, got %s", budget)
		}
		opts = append(opts, contract.WithRetryBudget(budget))
	}
	return contract.NewClause(spec.Title, observer, verifier, opts...), nil
}

func compileObserver(spec ObserverSpec, logger *zap.Logger) (observe.Observer, error) {
	switch {
	case len(spec.Command) > 0 && spec.File != "":
		return nil, fmt.Errorf("observer declares both command and file")
	case len(spec.Command) > 0:
		return observe.NewCommandObserver(spec.Command[0], spec.Command[1:], nil, logger), nil
	case spec.File != "":
		return observe.NewFileObserver(spec.File, nil), nil
	default:
		return nil, fmt.Errorf("observer declares neither command nor file")
	}
}

func compileVerifier(spec ClauseSpec) (verify.Verifier, error) {
	switch {
	case len(spec.Expect) > 0 && spec.ExpectError != "":
		return nil, fmt.Errorf("clause declares both expect and expect_error")
	case spec.ExpectError != "":
		if spec.Strict {
			return nil, fmt.Errorf("strict has no meaning with expect_error")
		}
		return verify.NewFailureVerifier(spec.Title, spec.ExpectError)
	case len(spec.Expect) > 0:
		constraints := make([]pred.Predicate, 0, len(spec.Expect))
		for i, c := range spec.Expect {
			constraint, err := compileConstraint(c)
			if err != nil {
				return nil, fmt.Errorf("expect[%d]: %w", i, err)
			}
			constraints = append(constraints, constraint)
		}
		return verify.NewValueVerifier(spec.Title, constraints, spec.Strict), nil
	default:
		return nil, fmt.Errorf("clause declares neither expect nor expect_error")
	}
}

func compileConstraint(spec ConstraintSpec) (pred.Predicate, error) {
	inner, err := compileOp(spec)
	if err != nil {
		return nil, err
	}
	pathPred := pred.NewPathPredicate(spec.Path, inner)

	// A bare constraint means "at least one object satisfies this";
	// explicit bounds turn it into a cardinality check over the whole
	// observed object list.
	if spec.Min == nil && spec.Max == nil {
		return pathPred, nil
	}
	min, max := 1, pred.Unbounded
	if spec.Min != nil {
		min = *spec.Min
	}
	if spec.Max != nil {
		max = *spec.Max
	}
	if max != pred.Unbounded && max < min {
		return nil, fmt.Errorf("max %d is below min %d", max, min)
	}
	return pred.NewCardinality(pathPred, min, max), nil
}

func compileOp(spec ConstraintSpec) (pred.Predicate, error) {
	op := spec.Op
	if op == "" {
		op = "contains"
	}
	if op == "exists" {
		if spec.Value != nil {
			return nil, fmt.Errorf("op exists takes no value")
		}
		return nil, nil
	}
	if spec.Value == nil && op != "eq" && op != "ne" {
		return nil, fmt.Errorf("op %s needs a value", op)
	}

	operand, err := jsonval.FromGo(spec.Value)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}

	switch op {
	case "contains":
		return pred.Contains(operand), nil
	case "equivalent", "eq":
		return pred.Equivalent(operand), nil
	case "different", "ne":
		return pred.Different(operand), nil
	case "subset":
		obj, ok := operand.(jsonval.Object)
		if !ok {
			return nil, fmt.Errorf("op subset needs an object value, got %s", operand.Kind())
		}
		return pred.DictSubset(obj), nil
	case "matches":
		str, ok := operand.(jsonval.String)
		if !ok {
			return nil, fmt.Errorf("op matches needs a string pattern, got %s", operand.Kind())
		}
		return pred.StrRegex(string(str))
	case "le", "ge":
		num, ok := operand.(jsonval.Number)
		if !ok {
			return nil, fmt.Errorf("op %s needs a numeric value, got %s", op, operand.Kind())
		}
		if op == "le" {
			return pred.NumLE(float64(num)), nil
		}
		return pred.NumGE(float64(num)), nil
	default:
		return nil, fmt.Errorf("unknown op %q", op)
	}
}
