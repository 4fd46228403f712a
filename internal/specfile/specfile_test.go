package specfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `
title: deployment contract
clauses:
  - title: server is running
    retryable_for: 30s
    observer:
      command: ["kubectl", "get", "deploy", "-o", "json"]
    expect:
      - path: status/phase
        value: Running
  - title: old server is gone
    observer:
      file: snapshot.json
    expect_error: "not found"
`

func TestParse_ValidDocument(t *testing.T) {
	doc, err := Parse([]byte(validDoc), "contract.yaml")
	require.NoError(t, err)

	assert.Equal(t, "deployment contract", doc.Title)
	require.Len(t, doc.Clauses, 2)
	assert.Equal(t, "30s", doc.Clauses[0].RetryableFor)
	assert.Equal(t, []string{"kubectl", "get", "deploy", "-o", "json"},
		doc.Clauses[0].Observer.Command)
	require.Len(t, doc.Clauses[0].Expect, 1)
	assert.Equal(t, "status/phase", doc.Clauses[0].Expect[0].Path)
	assert.Equal(t, "Running", doc.Clauses[0].Expect[0].Value)
	assert.Equal(t, "not found", doc.Clauses[1].ExpectError)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing title", "clauses:\n  - title: x\n    observer: {file: f.json}\n"},
		{"no clauses", "title: t\nclauses: []\n"},
		{"unknown op", `
title: t
clauses:
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        op: resembles
        value: 1
`},
		{"negative min", `
title: t
clauses:
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        min: -1
`},
		{"empty command", `
title: t
clauses:
  - title: x
    observer: {command: []}
    expect:
      - path: a
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "contract.yaml")
			require.Error(t, err)

			loadErr, ok := err.(*LoadError)
			require.True(t, ok)
			assert.Equal(t, ErrCodeSchema, loadErr.Code)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("title: [unclosed"), "contract.yaml")
	require.Error(t, err)

	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeParse, loadErr.Code)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoad_ReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deployment contract", doc.Title)
}

func TestCompile_ValidDocument(t *testing.T) {
	doc, err := Parse([]byte(validDoc), "contract.yaml")
	require.NoError(t, err)

	contract, err := Compile(doc, nil)
	require.NoError(t, err)

	assert.Equal(t, "deployment contract", contract.Title())
	require.Len(t, contract.Clauses(), 2)
	assert.Equal(t, 30*time.Second, contract.Clauses()[0].RetryBudget())
	assert.Zero(t, contract.Clauses()[1].RetryBudget())
}

func compileOne(t *testing.T, clauseYAML string) error {
	t.Helper()
	doc, err := Parse([]byte("title: t\nclauses:\n"+clauseYAML), "contract.yaml")
	require.NoError(t, err, "document must pass the schema before compilation")
	_, err = Compile(doc, nil)
	return err
}

func TestCompile_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		clause string
	}{
		{"expect and expect_error", `
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
    expect_error: boom
`},
		{"neither expect nor expect_error", `
  - title: x
    observer: {file: f.json}
`},
		{"command and file", `
  - title: x
    observer:
      command: [ls]
      file: f.json
    expect:
      - path: a
`},
		{"bad duration", `
  - title: x
    retryable_for: sometime
    observer: {file: f.json}
    expect:
      - path: a
`},
		{"strict with expect_error", `
  - title: x
    strict: true
    observer: {file: f.json}
    expect_error: boom
`},
		{"matches needs string", `
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        op: matches
        value: 3
`},
		{"subset needs object", `
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        op: subset
        value: [1, 2]
`},
		{"le needs number", `
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        op: le
        value: high
`},
		{"exists takes no value", `
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        op: exists
        value: 1
`},
		{"contains needs value", `
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        op: contains
`},
		{"max below min", `
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        min: 3
        max: 1
`},
		{"bad regexp", `
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        op: matches
        value: "(unclosed"
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compileOne(t, tt.clause)
			require.Error(t, err)

			loadErr, ok := err.(*LoadError)
			require.True(t, ok)
			assert.Equal(t, ErrCodeCompile, loadErr.Code)
		})
	}
}

func TestCompile_OpVariants(t *testing.T) {
	clauses := `
  - title: x
    observer: {file: f.json}
    expect:
      - path: a
        value: hello
      - path: b
        op: equivalent
        value: {k: 1}
      - path: c
        op: different
        value: 2
      - path: d
        op: subset
        value: {k: 1}
      - path: e
        op: matches
        value: "^v[0-9]+$"
      - path: f
        op: exists
      - path: g
        op: ge
        value: 1.5
      - path: h
        min: 2
        max: 4
        value: ok
      - path: i
        op: eq
      - path: j
        min: 0
        max: 0
        value: gone
`
	assert.NoError(t, compileOne(t, clauses))
}
