package jsonval

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical renders a value as a deterministic single-line JSON string
// for diagnostics and golden comparison. Object keys are sorted and
// strings are NFC normalized so that two observations of the same
// resource always render identically.
func Canonical(v Value) string {
	var sb strings.Builder
	writeCanonical(&sb, v)
	return sb.String()
}

func writeCanonical(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil, Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(bool(val)))
	case Number:
		// Integral numbers render without a fraction part so counts
		// and IDs read naturally in reports.
		f := float64(val)
		if f == float64(int64(f)) {
			sb.WriteString(strconv.FormatInt(int64(f), 10))
		} else {
			sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
	case String:
		writeCanonicalString(sb, string(val))
	case Array:
		sb.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCanonical(sb, elem)
		}
		sb.WriteByte(']')
	case Object:
		sb.WriteByte('{')
		for i, k := range val.SortedKeys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCanonicalString(sb, k)
			sb.WriteByte(':')
			writeCanonical(sb, val[k])
		}
		sb.WriteByte('}')
	}
}

func writeCanonicalString(sb *strings.Builder, s string) {
	encoded, err := json.Marshal(norm.NFC.String(s))
	if err != nil {
		// json.Marshal of a string cannot fail; fall back to quoting.
		sb.WriteString(strconv.Quote(s))
		return
	}
	sb.Write(encoded)
}
