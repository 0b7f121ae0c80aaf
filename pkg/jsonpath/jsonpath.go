// Package jsonpath extracts single values from JSON documents.
//
// Paths may be written JSONPath style ($.users[0].name) or as plain gjson
// paths (users.0.name).
package jsonpath

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrEmptyDocument is returned when there is no JSON to search.
	ErrEmptyDocument = errors.New("empty JSON document")

	// ErrEmptyPath is returned for an empty path expression.
	ErrEmptyPath = errors.New("empty path expression")

	// ErrInvalidJSON is returned when the document does not parse.
	ErrInvalidJSON = errors.New("invalid JSON document")
)

// NotFoundError reports a path with no match in the document.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// Extract returns the value at path. Strings come back unquoted, objects and
// arrays as raw JSON, and null as "null".
func Extract(json string, path string) (string, error) {
	if strings.TrimSpace(json) == "" {
		return "", ErrEmptyDocument
	}
	if path == "" {
		return "", ErrEmptyPath
	}
	if !gjson.Valid(json) {
		return "", ErrInvalidJSON
	}

	result := gjson.Get(json, ToGjsonPath(path))
	if !result.Exists() {
		return "", &NotFoundError{Path: path}
	}

	switch result.Type {
	case gjson.Null:
		return "null", nil
	case gjson.JSON:
		return result.Raw, nil
	default:
		return result.String(), nil
	}
}

// ExtractBytes is Extract for a raw body.
func ExtractBytes(body []byte, path string) (string, error) {
	return Extract(string(body), path)
}

// ToGjsonPath converts a JSONPath expression to gjson syntax:
//
//	$                -> @this
//	$.users[0].name  -> users.0.name
//	$['key'].x       -> key.x
//
// Expressions without a leading $ are returned unchanged.
func ToGjsonPath(path string) string {
	if !strings.HasPrefix(path, "$") {
		return path
	}

	path = strings.TrimPrefix(path, "$")
	if path == "" {
		return "@this"
	}

	var sb strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch c {
		case '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				sb.WriteString(path[i:])
				return strings.TrimPrefix(sb.String(), ".")
			}
			key := strings.Trim(path[i+1:i+end], `'"`)
			sb.WriteByte('.')
			sb.WriteString(key)
			i += end
		default:
			sb.WriteByte(c)
		}
	}

	return strings.TrimPrefix(sb.String(), ".")
}
