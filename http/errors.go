package http

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingScheme is reported when a URL has no scheme, such as "example.com/path".
	ErrMissingScheme = errors.New("missing scheme")

	// ErrMissingHost is reported when a URL has a scheme but no host.
	ErrMissingHost = errors.New("missing host")
)

// URLParseError is returned when a request URL cannot be used.
type URLParseError struct {
	Input string
	Err   error
}

func (e *URLParseError) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.Input, e.Err)
}

func (e *URLParseError) Unwrap() error { return e.Err }

// SerializationError is returned by BodyJSON when a value cannot be encoded as JSON.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize JSON body: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// TransportError wraps a failure reported by the transport while sending a request.
// Unwrap returns the transport's error untouched.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DeserializationError is returned when a response body is not valid JSON
// or does not match the destination type.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("failed to parse JSON response: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }
