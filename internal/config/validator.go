package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wesleyorama2/reru/http"
)

// ValidationError represents a request file validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects every problem found in a request file.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, err := range ve {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var methods = []string{"OPTIONS", "GET", "POST", "PUT", "DELETE", "HEAD", "TRACE", "CONNECT", "PATCH"}

// Validate checks the request file for missing or conflicting fields.
// It returns nil when the file is usable.
func (rf *RequestFile) Validate() ValidationErrors {
	var errors ValidationErrors

	if rf.Method == "" {
		errors = append(errors, ValidationError{Path: "method", Message: "method is required"})
	} else if !stringInSlice(strings.ToUpper(rf.Method), methods) {
		errors = append(errors, ValidationError{
			Path:    "method",
			Message: fmt.Sprintf("unsupported method %q, must be one of: %s", rf.Method, strings.Join(methods, ", ")),
		})
	}

	if rf.URL == "" {
		errors = append(errors, ValidationError{Path: "url", Message: "url is required"})
	} else if !strings.Contains(rf.URL, "{{") {
		if _, err := http.New("GET", rf.URL); err != nil {
			errors = append(errors, ValidationError{Path: "url", Message: err.Error()})
		}
	}

	if rf.JSON != nil && len(rf.Form) > 0 {
		errors = append(errors, ValidationError{Path: "json", Message: "json and form bodies are mutually exclusive"})
	}

	for i, p := range rf.Params {
		if p.Name == "" {
			errors = append(errors, ValidationError{Path: fmt.Sprintf("params[%d].name", i), Message: "name is required"})
		}
	}
	for i, f := range rf.Form {
		if f.Name == "" {
			errors = append(errors, ValidationError{Path: fmt.Sprintf("form[%d].name", i), Message: "name is required"})
		}
	}

	if _, err := ParseDurationString(rf.Timeout); err != nil {
		errors = append(errors, ValidationError{Path: "timeout", Message: err.Error()})
	}

	return errors
}

func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
