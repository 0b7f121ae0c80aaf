package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/reru/http"
)

// RequestFile describes a single request stored on disk.
type RequestFile struct {
	// Method is the HTTP method, case-insensitive
	Method string `yaml:"method" json:"method"`

	// URL is the absolute request URL; may contain {{variables}}
	URL string `yaml:"url" json:"url"`

	// Params are query parameters appended in order
	Params []Pair `yaml:"params,omitempty" json:"params,omitempty"`

	// Headers are added to the request
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`

	// JSON is serialized as the request body
	JSON interface{} `yaml:"json,omitempty" json:"json,omitempty"`

	// Form fields are URL-encoded as the request body, in order
	Form []Pair `yaml:"form,omitempty" json:"form,omitempty"`

	// Timeout bounds the whole exchange, e.g. "10s"
	Timeout string `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// Extract is a JSON path printed from the response body
	Extract string `yaml:"extract,omitempty" json:"extract,omitempty"`

	// Schema is a JSON Schema file, relative to the request file, for the response body
	Schema string `yaml:"schema,omitempty" json:"schema,omitempty"`

	// Variables are substituted into {{name}} placeholders
	Variables map[string]string `yaml:"variables,omitempty" json:"variables,omitempty"`

	// dir is the directory the file was loaded from
	dir string
}

// Pair is an ordered name/value entry.
type Pair struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// LoadRequestFile reads and parses a request file.
func LoadRequestFile(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	rf, err := ParseRequestFile(data, path)
	if err != nil {
		return nil, err
	}
	rf.dir = filepath.Dir(path)
	return rf, nil
}

// ParseRequestFile parses request file data.
//
// The format is determined by the extension of path: .json is parsed as
// JSON, anything else as YAML.
func ParseRequestFile(data []byte, path string) (*RequestFile, error) {
	var rf RequestFile

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("failed to parse JSON request file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML request file: %w", err)
		}
	}

	return &rf, nil
}

// SchemaPath resolves Schema relative to the directory of the request file.
func (rf *RequestFile) SchemaPath() string {
	if rf.Schema == "" || filepath.IsAbs(rf.Schema) || rf.dir == "" {
		return rf.Schema
	}
	return filepath.Join(rf.dir, rf.Schema)
}

// TimeoutDuration parses Timeout. Zero means no explicit timeout.
func (rf *RequestFile) TimeoutDuration() (time.Duration, error) {
	return ParseDurationString(rf.Timeout)
}

// Resolve returns a copy with {{variables}} substituted. Values in vars
// override the file's own variables.
func (rf *RequestFile) Resolve(vars map[string]string) *RequestFile {
	env := MergeVariables(rf.Variables, vars)

	out := *rf
	out.URL = Substitute(rf.URL, env)
	out.Params = substitutePairs(rf.Params, env)
	out.Form = substitutePairs(rf.Form, env)
	out.JSON = substituteValue(rf.JSON, env)
	out.Extract = Substitute(rf.Extract, env)
	if rf.Headers != nil {
		out.Headers = make(map[string]string, len(rf.Headers))
		for key, value := range rf.Headers {
			out.Headers[key] = Substitute(value, env)
		}
	}
	return &out
}

// Build turns the file into a request builder. Call Resolve first when the
// file uses variables.
func (rf *RequestFile) Build() (*http.Request, error) {
	if errs := rf.Validate(); len(errs) > 0 {
		return nil, errs
	}

	req, err := http.New(strings.ToUpper(rf.Method), rf.URL)
	if err != nil {
		return nil, err
	}

	for _, p := range rf.Params {
		req.Param(p.Name, p.Value)
	}
	for _, key := range sortedKeys(rf.Headers) {
		req.Header(key, rf.Headers[key])
	}

	if rf.JSON != nil {
		if req, err = req.BodyJSON(rf.JSON); err != nil {
			return nil, err
		}
	}
	for _, f := range rf.Form {
		req.BodyForm(f.Name, f.Value)
	}

	return req, nil
}

// Substitute replaces {{name}} placeholders with values from env.
func Substitute(input string, env map[string]string) string {
	result := input
	for key, value := range env {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// MergeVariables merges two variable sets, with the second taking precedence.
func MergeVariables(base, override map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		result[key] = value
	}
	for key, value := range override {
		result[key] = value
	}
	return result
}

// ParseDurationString parses a duration string with support for common formats.
//
// Supported formats:
//   - Standard Go duration: "30s", "2m", "1h30m", "500ms"
//   - Seconds as integer: "30" (treated as 30 seconds)
func ParseDurationString(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	var seconds int
	if _, err := fmt.Sscanf(s, "%d", &seconds); err == nil && fmt.Sprint(seconds) == s {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, fmt.Errorf("invalid duration: %s", s)
}

func substitutePairs(pairs []Pair, env map[string]string) []Pair {
	if pairs == nil {
		return nil
	}
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		out[i] = Pair{Name: Substitute(p.Name, env), Value: Substitute(p.Value, env)}
	}
	return out
}

// substituteValue walks decoded JSON/YAML and substitutes inside strings.
func substituteValue(v interface{}, env map[string]string) interface{} {
	switch val := v.(type) {
	case string:
		return Substitute(val, env)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = substituteValue(item, env)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for key, item := range val {
			out[key] = substituteValue(item, env)
		}
		return out
	default:
		return v
	}
}
