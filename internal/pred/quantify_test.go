package pred

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proviso/internal/jsonval"
)

func strList(items ...string) jsonval.Array {
	list := make(jsonval.Array, len(items))
	for i, s := range items {
		list[i] = jsonval.String(s)
	}
	return list
}

func TestExists_StopsAtFirstMatch(t *testing.T) {
	result := Exists(StrEQ("b")).Evaluate(strList("a", "b", "c"))

	composite, ok := result.(*CompositeResult)
	require.True(t, ok)
	assert.True(t, composite.Valid())
	require.Len(t, composite.Results(), 1, "only the passing element is reported")
	assert.True(t, composite.Results()[0].Valid())
}

func TestExists_AllFailReportsEveryAttempt(t *testing.T) {
	result := Exists(StrEQ("z")).Evaluate(strList("a", "b"))

	composite, ok := result.(*CompositeResult)
	require.True(t, ok)
	assert.False(t, composite.Valid())
	assert.Len(t, composite.Results(), 2)
}

func TestExists_NonListAppliesDirectly(t *testing.T) {
	result := Exists(StrEQ("a")).Evaluate(jsonval.String("a"))

	// No list to quantify over, so the element predicate's own
	// result comes back unwrapped.
	_, ok := result.(*PathValueResult)
	assert.True(t, ok)
	assert.True(t, result.Valid())
}

func TestExists_RecursesIntoNestedLists(t *testing.T) {
	nested := jsonval.Array{strList("a"), strList("b", "c")}

	assert.True(t, Exists(StrEQ("c")).Evaluate(nested).Valid())
	assert.False(t, Exists(StrEQ("z")).Evaluate(nested).Valid())
}

func TestAll_EveryElementEvaluated(t *testing.T) {
	result := All(StrSubstr("a")).Evaluate(strList("cat", "dog", "rat"))

	composite, ok := result.(*CompositeResult)
	require.True(t, ok)
	assert.False(t, composite.Valid())
	assert.Len(t, composite.Results(), 3, "universal quantification never short-circuits")
}

func TestAll_Valid(t *testing.T) {
	assert.True(t, All(StrSubstr("a")).Evaluate(strList("cat", "rat")).Valid())
	assert.True(t, All(StrEQ("x")).Evaluate(jsonval.Array{}).Valid(), "vacuous truth on empty list")
}

func TestAll_NonListAppliesDirectly(t *testing.T) {
	assert.False(t, All(StrEQ("x")).Evaluate(jsonval.String("y")).Valid())
}
