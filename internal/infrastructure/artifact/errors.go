package artifact

import (
	"fmt"
	"strings"

	"github.com/bibbank/creditrisk/internal/domain/model"
)

// LoadError reports an artifact that could not be turned into model
// parameters. It matches model.ErrParameterLoad and its Cause.
type LoadError struct {
	Cause error
	Path  string
	Stage string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model artifact %s: %s: %v", e.Path, e.Stage, e.Cause)
}

func (e *LoadError) Unwrap() []error {
	return []error{model.ErrParameterLoad, e.Cause}
}

// SchemaViolation lists every field of a document that failed the artifact
// JSON Schema.
type SchemaViolation struct {
	Fields []FieldViolation
}

// FieldViolation is one failed schema rule.
type FieldViolation struct {
	Field   string
	Message string
}

func (v *SchemaViolation) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "schema violation: " + strings.Join(parts, "; ")
}
