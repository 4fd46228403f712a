package pred

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proviso/internal/jsonval"
)

func TestContains_Dispatch(t *testing.T) {
	tests := []struct {
		name    string
		operand any
		value   any
		want    bool
	}{
		{"string substring", "err", "internal error", true},
		{"string no substring", "err", "all good", false},
		{"object subset", map[string]any{"a": 1}, map[string]any{"a": 1, "b": 2}, true},
		{"object not subset", map[string]any{"a": 2}, map[string]any{"a": 1}, false},
		{"number equality", 3, 3, true},
		{"number inequality", 3, 4, false},
		{"list operand is subset", []any{"x"}, []any{"x", "y"}, true},
		{"scalar operand found in list", "x", []any{"w", "x"}, true},
		{"scalar operand not in list", "z", []any{"w", "x"}, false},
		{"recurses into nested lists", "x", []any{[]any{"w"}, []any{"x"}}, true},
		{"bool equality", true, true, true},
		{"null equality", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Contains(jsonval.MustFromGo(tt.operand))
			assert.Equal(t, tt.want, p.Evaluate(jsonval.MustFromGo(tt.value)).Valid())
		})
	}
}

func TestContains_OperandKindMismatch(t *testing.T) {
	result := Contains(jsonval.Number(1)).Evaluate(jsonval.String("1"))

	mismatch, ok := result.(*TypeMismatchResult)
	require.True(t, ok)
	assert.Equal(t, jsonval.KindString, mismatch.Expected)
	assert.Equal(t, jsonval.KindNumber, mismatch.Actual)
}

func TestEquivalent(t *testing.T) {
	operand := jsonval.MustFromGo(map[string]any{"a": []any{1, 2}})

	assert.True(t, Equivalent(operand).Evaluate(
		jsonval.MustFromGo(map[string]any{"a": []any{1, 2}})).Valid())
	assert.False(t, Equivalent(operand).Evaluate(
		jsonval.MustFromGo(map[string]any{"a": []any{2, 1}})).Valid())
}

func TestEquivalent_ListIgnoresOrder(t *testing.T) {
	operand := jsonval.MustFromGo([]any{1, 2, 3})

	assert.True(t, Equivalent(operand).Evaluate(
		jsonval.MustFromGo([]any{3, 1, 2})).Valid())
	assert.False(t, Equivalent(operand).Evaluate(
		jsonval.MustFromGo([]any{1, 2})).Valid())
	assert.False(t, Equivalent(operand).Evaluate(
		jsonval.MustFromGo([]any{1, 2, 4})).Valid())

	// Inequality stays ordered.
	assert.True(t, Different(operand).Evaluate(
		jsonval.MustFromGo([]any{3, 1, 2})).Valid())
}

func TestEquivalent_KindMismatch(t *testing.T) {
	result := Equivalent(jsonval.String("3")).Evaluate(jsonval.Number(3))
	_, ok := result.(*TypeMismatchResult)
	assert.True(t, ok, "equivalence across kinds is a type error, not false")
}

func TestDifferent(t *testing.T) {
	assert.True(t, Different(jsonval.Number(3)).Evaluate(jsonval.Number(4)).Valid())
	assert.False(t, Different(jsonval.Number(3)).Evaluate(jsonval.Number(3)).Valid())

	result := Different(jsonval.Number(3)).Evaluate(jsonval.String("3"))
	_, ok := result.(*TypeMismatchResult)
	assert.True(t, ok)
}
