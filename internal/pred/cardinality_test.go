package pred

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proviso/internal/jsonval"
)

func TestMapPredicate_PartitionsList(t *testing.T) {
	p := NewMapPredicate(StrSubstr("a"), 1, Unbounded)
	result := p.Evaluate(strList("cat", "dog", "rat")).(*MapResult)

	assert.True(t, result.Valid())
	assert.Len(t, result.Good(), 2)
	assert.Len(t, result.Bad(), 1)
	assert.Len(t, result.Results(), 3)
	assert.Equal(t, jsonval.String("dog"), result.Bad()[0].Object)
	assert.Equal(t, `2 of 3 objects satisfied has-substring "a".`, result.Comment())
}

func TestMapPredicate_NullMapsOverNothing(t *testing.T) {
	zero := NewMapPredicate(StrEQ("x"), 0, Unbounded)
	assert.True(t, zero.Evaluate(jsonval.Null{}).Valid())
	assert.True(t, zero.Evaluate(nil).Valid())

	one := NewMapPredicate(StrEQ("x"), 1, Unbounded)
	assert.False(t, one.Evaluate(jsonval.Null{}).Valid())
}

func TestMapPredicate_NonListIsSingleton(t *testing.T) {
	p := NewMapPredicate(StrEQ("x"), 1, Unbounded)
	result := p.Evaluate(jsonval.String("x")).(*MapResult)

	assert.True(t, result.Valid())
	assert.Len(t, result.Objects(), 1)
}

func TestMapPredicate_UpperBound(t *testing.T) {
	p := NewMapPredicate(StrSubstr("a"), 0, 1)
	assert.False(t, p.Evaluate(strList("cat", "rat")).Valid())
}

func TestCardinality_Classification(t *testing.T) {
	match := StrSubstr("a")
	list := strList("cat", "dog", "rat")

	tests := []struct {
		name     string
		min, max int
		value    jsonval.Value
		kind     CardinalityKind
		valid    bool
	}{
		{"within bounds", 1, Unbounded, list, CardinalityConfirmed, true},
		{"exact upper", 1, 2, list, CardinalityConfirmed, true},
		{"above max", 1, 1, list, CardinalityFailedRange, false},
		{"below min", 3, Unbounded, list, CardinalityFailedRange, false},
		{"expected but absent", 1, Unbounded, strList("dog"), CardinalityMissing, false},
		{"excluded and absent", 0, 0, strList("dog"), CardinalityConfirmed, true},
		{"excluded but present", 0, 0, list, CardinalityUnexpected, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewCardinality(match, tt.min, tt.max)
			result := p.Evaluate(tt.value).(*CardinalityResult)

			assert.Equal(t, tt.kind, result.Kind)
			assert.Equal(t, tt.valid, result.Valid())
		})
	}
}

func TestCardinality_Comments(t *testing.T) {
	match := StrSubstr("a")

	confirmedNone := NewCardinality(match, 0, 0).Evaluate(strList("dog"))
	assert.Equal(t, fmt.Sprintf("Confirmed no %v.", match), confirmedNone.Comment())

	confirmed := NewCardinality(match, 1, Unbounded).Evaluate(strList("cat", "rat"))
	assert.Equal(t, fmt.Sprintf("Confirmed %v with count=2.", match), confirmed.Comment())

	missing := NewCardinality(match, 1, Unbounded).Evaluate(strList("dog"))
	assert.Equal(t, fmt.Sprintf("Expected to find %v. No values found.", match), missing.Comment())

	unexpected := NewCardinality(match, 0, 0).Evaluate(strList("cat"))
	assert.Equal(t, fmt.Sprintf("Found unexpected %v: count=1.", match), unexpected.Comment())

	outOfRange := NewCardinality(match, 0, 1).Evaluate(strList("cat", "rat"))
	assert.Equal(t, fmt.Sprintf("Found 2 %v but expected 0..1.", match), outOfRange.Comment())
}

func TestCardinality_ExposesMapResult(t *testing.T) {
	p := NewCardinality(StrSubstr("a"), 1, Unbounded)
	result := p.Evaluate(strList("cat", "dog")).(*CardinalityResult)

	require.NotNil(t, result.MapResult)
	assert.Equal(t, 1, result.Count)
	assert.Len(t, result.MapResult.Bad(), 1)
}
