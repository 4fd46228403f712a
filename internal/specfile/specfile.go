// Package specfile loads declarative contract documents: YAML files
// validated against an embedded CUE schema and compiled into
// predicates, verifiers and retryable clauses.
package specfile

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// LoadError describes why a contract document was rejected.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load error codes.
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeParse    = "PARSE_ERROR"
	ErrCodeSchema   = "SCHEMA_ERROR"
	ErrCodeCompile  = "COMPILE_ERROR"
)

// Document is a parsed contract file.
type Document struct {
	Title   string       `yaml:"title"`
	Clauses []ClauseSpec `yaml:"clauses"`
}

// ClauseSpec declares one clause: an observer plus either value
// constraints (expect) or an expected-error pattern (expect_error).
type ClauseSpec struct {
	Title        string           `yaml:"title"`
	RetryableFor string           `yaml:"retryable_for,omitempty"`
	Strict       bool             `yaml:"strict,omitempty"`
	Observer     ObserverSpec     `yaml:"observer"`
	Expect       []ConstraintSpec `yaml:"expect,omitempty"`
	ExpectError  string           `yaml:"expect_error,omitempty"`
}

// ObserverSpec declares how a clause collects its observation.
// Exactly one of Command or File must be set.
type ObserverSpec struct {
	Command []string `yaml:"command,omitempty"`
	File    string   `yaml:"file,omitempty"`
}

// ConstraintSpec declares one path constraint. Op defaults to
// "contains"; Min defaults to 1 and Max to unbounded.
type ConstraintSpec struct {
	Path  string `yaml:"path"`
	Op    string `yaml:"op,omitempty"`
	Value any    `yaml:"value,omitempty"`
	Min   *int   `yaml:"min,omitempty"`
	Max   *int   `yaml:"max,omitempty"`
}

// Load reads, schema-validates and decodes a contract document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("contract file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}
	return Parse(data, path)
}

// Parse schema-validates and decodes a contract document from bytes.
// filename is used only for error positions.
func Parse(data []byte, filename string) (*Document, error) {
	if err := validateSchema(data, filename); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("decoding %s: %v", filename, err)}
	}
	return &doc, nil
}

// validateSchema unifies the document with the embedded CUE schema so
// structural mistakes surface with positions before compilation.
func validateSchema(data []byte, filename string) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("embedded schema: %v", err)}
	}
	docSchema := schema.LookupPath(cue.ParsePath("#Document"))
	if err := docSchema.Err(); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("embedded schema: %v", err)}
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing %s: %v", filename, err)}
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing %s: %v", filename, err)}
	}

	unified := docSchema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("%s does not match contract schema: %v", filename, err)}
	}
	return nil
}
