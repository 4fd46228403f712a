package pred

import (
	"fmt"
	"slices"
	"strings"

	"proviso/internal/jsonval"
)

// Lookup resolves a PathSep-delimited path through a JSON value.
//
// At each segment, objects are descended by key and lists fan out:
// the remaining path is looked up in each element in order and the
// first successful result wins, re-based to include the outer list
// context. First-match-wins models "this resource among many
// satisfies the field". If all elements fail, the miss is attributed
// to the list. A non-container value with segments remaining is a
// type mismatch. An empty path resolves to the source itself.
//
// The returned Result is a *PathValueResult on success, otherwise a
// *MissingPathResult or *TypeMismatchResult.
func Lookup(source jsonval.Value, path string) Result {
	return lookupSegments(source, source, "", SplitPath(path), nil)
}

func lookupSegments(source, current jsonval.Value, at string, segments []string, trace []PathValue) Result {
	if len(segments) == 0 {
		return NewPathValueResult(
			PathAttrs{Source: source, Path: at, Trace: trace}, current, nil, true)
	}

	switch value := current.(type) {
	case jsonval.Object:
		key := segments[0]
		child, ok := value[key]
		keyPath := JoinPath(at, key)
		if !ok {
			return NewMissingPathResult(
				PathAttrs{Source: source, Path: keyPath, Trace: trace})
		}
		next := append(slices.Clone(trace), PathValue{Path: keyPath, Value: child})
		return lookupSegments(source, child, keyPath, segments[1:], next)

	case jsonval.Array:
		for i, elem := range value {
			elemPath := fmt.Sprintf("%s[%d]", at, i)
			next := append(slices.Clone(trace), PathValue{Path: elemPath, Value: elem})
			result := lookupSegments(source, elem, elemPath, segments, next)
			if result.Valid() {
				return result
			}
		}
		missing := NewMissingPathResult(
			PathAttrs{Source: source, Path: JoinPath(at, strings.Join(segments, PathSep)), Trace: trace})
		missing.comment = fmt.Sprintf(
			"No list element at %q contains path %q.", at, strings.Join(segments, PathSep))
		return missing

	default:
		return NewTypeMismatchResult(
			PathAttrs{Source: source, Path: JoinPath(at, strings.Join(segments, PathSep)), Trace: trace},
			jsonval.KindObject, jsonval.KindOf(current))
	}
}
