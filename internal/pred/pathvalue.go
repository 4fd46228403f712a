package pred

import (
	"fmt"
	"strings"

	"proviso/internal/jsonval"
)

// PathSep separates field names in a path addressing a location
// within a nested JSON value.
const PathSep = "/"

// PathValue records one traversal step: the path taken so far and the
// value found there.
type PathValue struct {
	Path  string
	Value jsonval.Value
}

func (pv PathValue) String() string {
	return fmt.Sprintf("%q=%s", pv.Path, jsonval.Canonical(pv.Value))
}

// JoinPath joins path fragments with PathSep, skipping empty parts.
func JoinPath(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, PathSep)
}

// SplitPath splits a path into its segments. An empty path has no
// segments and addresses the source value itself.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, PathSep)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
