package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Response wraps the transport's response. The body is a single-pass stream:
// read it through Read, Bytes, Text or ParseJSON, and Close it when done.
type Response struct {
	raw    *http.Response
	url    *url.URL
	timing TimingInfo
}

func newResponse(raw *http.Response, sent *http.Request, timing TimingInfo) *Response {
	resolved := sent.URL
	if raw.Request != nil && raw.Request.URL != nil {
		resolved = raw.Request.URL
	}
	if raw.Body == nil {
		raw.Body = http.NoBody
	}
	return &Response{raw: raw, url: resolved, timing: timing}
}

// Status returns the HTTP status code (e.g., 200, 404, 500).
func (r *Response) Status() int {
	return r.raw.StatusCode
}

// StatusText returns the status line text (e.g., "200 OK").
func (r *Response) StatusText() string {
	if r.raw.Status != "" {
		return r.raw.Status
	}
	return http.StatusText(r.raw.StatusCode)
}

// Headers returns the response headers.
func (r *Response) Headers() http.Header {
	return r.raw.Header
}

// Version returns the protocol version, such as "HTTP/1.1".
func (r *Response) Version() string {
	return r.raw.Proto
}

// URL returns the URL that produced this response, after any redirects the
// transport followed.
func (r *Response) URL() *url.URL {
	return r.url
}

// Timing returns the timing collected while sending the request.
func (r *Response) Timing() TimingInfo {
	return r.timing
}

// Elapsed is the time until the response headers arrived.
func (r *Response) Elapsed() time.Duration {
	return r.timing.TotalTime
}

// Raw returns the underlying *net/http.Response.
func (r *Response) Raw() *http.Response {
	return r.raw
}

// Read reads from the response body.
func (r *Response) Read(p []byte) (int, error) {
	return r.raw.Body.Read(p)
}

// Close releases the response body.
func (r *Response) Close() error {
	return r.raw.Body.Close()
}

// Bytes reads the rest of the body and closes it.
func (r *Response) Bytes() ([]byte, error) {
	defer r.raw.Body.Close()
	return io.ReadAll(r.raw.Body)
}

// Text reads the rest of the body as a string and closes it.
func (r *Response) Text() (string, error) {
	body, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ParseJSON reads the rest of the body, closes it and decodes it into v.
// A body that is not a single valid JSON value, or that does not fit v,
// yields a *DeserializationError. Read failures are returned as is.
//
// Example:
//
//	var echo struct {
//	    JSON []string `json:"json"`
//	}
//	if err := resp.ParseJSON(&echo); err != nil {
//	    log.Fatal(err)
//	}
func (r *Response) ParseJSON(v any) error {
	body, err := r.Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DeserializationError{Err: err}
	}
	return nil
}

// ParseJSONAs decodes the response body into a new value of type T.
func ParseJSONAs[T any](r *Response) (T, error) {
	var v T
	err := r.ParseJSON(&v)
	return v, err
}

// IsSuccess returns true if the response status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.raw.StatusCode >= 200 && r.raw.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.raw.StatusCode >= 300 && r.raw.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.raw.StatusCode >= 400 && r.raw.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.raw.StatusCode >= 500 && r.raw.StatusCode < 600
}

// IsError returns true if the response status code indicates an error (4xx or 5xx).
func (r *Response) IsError() bool {
	return r.IsClientError() || r.IsServerError()
}
