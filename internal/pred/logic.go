package pred

import (
	"fmt"
	"strings"

	"proviso/internal/jsonval"
)

// ConjunctionPredicate evaluates its children in order, stopping at
// the first invalid one. The composite result records exactly the
// evaluations that were attempted.
type ConjunctionPredicate struct {
	preds []Predicate
}

// And creates a conjunction over preds.
func And(preds ...Predicate) *ConjunctionPredicate {
	return &ConjunctionPredicate{preds: preds}
}

// Predicates returns the conjuncts.
func (p *ConjunctionPredicate) Predicates() []Predicate { return p.preds }

func (p *ConjunctionPredicate) String() string {
	return joinPreds(p.preds, " AND ")
}

// Evaluate implements Predicate.
func (p *ConjunctionPredicate) Evaluate(value jsonval.Value) Result {
	results := make([]Result, 0, len(p.preds))
	valid := true
	for _, child := range p.preds {
		result := child.Evaluate(value)
		results = append(results, result)
		if !result.Valid() {
			valid = false
			break
		}
	}
	return NewCompositeResult(valid, p, results)
}

// DisjunctionPredicate is the dual of ConjunctionPredicate: children
// evaluate in order until the first valid one.
type DisjunctionPredicate struct {
	preds []Predicate
}

// Or creates a disjunction over preds.
func Or(preds ...Predicate) *DisjunctionPredicate {
	return &DisjunctionPredicate{preds: preds}
}

// Predicates returns the disjuncts.
func (p *DisjunctionPredicate) Predicates() []Predicate { return p.preds }

func (p *DisjunctionPredicate) String() string {
	return joinPreds(p.preds, " OR ")
}

// Evaluate implements Predicate.
func (p *DisjunctionPredicate) Evaluate(value jsonval.Value) Result {
	results := make([]Result, 0, len(p.preds))
	valid := false
	for _, child := range p.preds {
		result := child.Evaluate(value)
		results = append(results, result)
		if result.Valid() {
			valid = true
			break
		}
	}
	return NewCompositeResult(valid, p, results)
}

// NegationPredicate always fully evaluates its child and inverts the
// verdict.
type NegationPredicate struct {
	pred Predicate
}

// Not creates a negation of pred.
func Not(pred Predicate) *NegationPredicate {
	return &NegationPredicate{pred: pred}
}

func (p *NegationPredicate) String() string {
	return fmt.Sprintf("NOT (%v)", p.pred)
}

// Evaluate implements Predicate.
func (p *NegationPredicate) Evaluate(value jsonval.Value) Result {
	result := p.pred.Evaluate(value)
	return NewCompositeResult(!result.Valid(), p, []Result{result})
}

// ConditionalPredicate implements IF/THEN with an optional ELSE.
//
// With an ELSE clause, IF is evaluated and then THEN or ELSE
// depending on its verdict; the branch verdict is final. Without an
// ELSE, the conditional is encoded as OR(NOT(IF), THEN), which has
// the same validity but reports the disjunction's two sub-results
// rather than the explicit pair.
type ConditionalPredicate struct {
	ifPred   Predicate
	thenPred Predicate
	elsePred Predicate
	demorgan Predicate // set when elsePred is nil
}

// If creates an IF/THEN conditional with no ELSE clause.
func If(ifPred, thenPred Predicate) *ConditionalPredicate {
	return &ConditionalPredicate{
		ifPred:   ifPred,
		thenPred: thenPred,
		demorgan: Or(Not(ifPred), thenPred),
	}
}

// IfElse creates an IF/THEN/ELSE conditional.
func IfElse(ifPred, thenPred, elsePred Predicate) *ConditionalPredicate {
	return &ConditionalPredicate{ifPred: ifPred, thenPred: thenPred, elsePred: elsePred}
}

func (p *ConditionalPredicate) String() string {
	if p.elsePred == nil {
		return fmt.Sprintf("IF (%v) THEN (%v)", p.ifPred, p.thenPred)
	}
	return fmt.Sprintf("IF (%v) THEN (%v) ELSE (%v)", p.ifPred, p.thenPred, p.elsePred)
}

// Evaluate implements Predicate.
func (p *ConditionalPredicate) Evaluate(value jsonval.Value) Result {
	if p.elsePred == nil {
		return p.demorgan.Evaluate(value)
	}
	ifResult := p.ifPred.Evaluate(value)
	branch := p.thenPred
	if !ifResult.Valid() {
		branch = p.elsePred
	}
	branchResult := branch.Evaluate(value)
	return NewCompositeResult(branchResult.Valid(), p, []Result{ifResult, branchResult})
}

func joinPreds(preds []Predicate, sep string) string {
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = p.String()
	}
	return strings.Join(parts, sep)
}
