// Package jsonschema validates JSON documents, typically response bodies,
// against a JSON Schema.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "schema.json"

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Schema is a compiled JSON Schema that can be applied to many documents.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile parses and compiles a schema document.
func Compile(schema []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &Schema{compiled: compiled}, nil
}

// Validate checks document against the schema. It returns nil when the
// document conforms, and one error per violated keyword otherwise.
func (s *Schema) Validate(document []byte) ValidationErrors {
	var data interface{}
	if err := json.Unmarshal(document, &data); err != nil {
		return ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	err := s.compiled.Validate(data)
	if err == nil {
		return nil
	}
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return collect(validationErr)
	}
	return ValidationErrors{err}
}

// Validate compiles schema and validates document against it in one step.
// The boolean is true only when the document conforms.
func Validate(document, schema []byte) (bool, ValidationErrors) {
	compiled, err := Compile(schema)
	if err != nil {
		return false, ValidationErrors{err}
	}

	errs := compiled.Validate(document)
	return len(errs) == 0, errs
}

// collect flattens the leaf causes of a validation error.
func collect(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		return ValidationErrors{fmt.Errorf("validation error at %q: %s", err.InstanceLocation, err.Message)}
	}

	var errs ValidationErrors
	for _, cause := range err.Causes {
		errs = append(errs, collect(cause)...)
	}
	return errs
}
