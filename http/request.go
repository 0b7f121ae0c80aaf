package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Request is a fluent builder for a single HTTP request.
// Configure it with chained calls, then finish it with Send or SendWith.
// A Request must not be reused once it has been sent.
//
// Example:
//
//	req, err := http.Post("https://httpbin.org/post")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	req, err = req.Param("show_env", "1").BodyJSON([]string{"蟹", "Ferris"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := req.Send(context.Background())
type Request struct {
	method    string
	url       *url.URL
	header    http.Header
	body      Body
	transport Transport
}

// New creates a request for method and rawURL. The URL must be absolute.
func New(method, rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &URLParseError{Input: rawURL, Err: err}
	}
	return newRequest(method, rawURL, u)
}

// NewFromURL creates a request from an already parsed URL. The URL is copied.
func NewFromURL(method string, u *url.URL) (*Request, error) {
	if u == nil {
		return nil, &URLParseError{Err: ErrMissingScheme}
	}
	cp := *u
	if u.User != nil {
		user := *u.User
		cp.User = &user
	}
	return newRequest(method, u.String(), &cp)
}

func newRequest(method, input string, u *url.URL) (*Request, error) {
	if u.Scheme == "" {
		return nil, &URLParseError{Input: input, Err: ErrMissingScheme}
	}
	if u.Host == "" {
		return nil, &URLParseError{Input: input, Err: ErrMissingHost}
	}
	return &Request{
		method: method,
		url:    u,
		header: make(http.Header),
	}, nil
}

// Method returns the HTTP method.
func (r *Request) Method() string {
	return r.method
}

// URL returns the request URL including any appended query parameters.
func (r *Request) URL() *url.URL {
	return r.url
}

// Headers returns the request headers. The map is live; changes affect the request.
func (r *Request) Headers() http.Header {
	return r.header
}

// Body returns the current body state.
func (r *Request) Body() Body {
	return r.body
}

// Param appends a name/value pair to the URL's query string.
// Pairs keep call order and repeated names are preserved.
func (r *Request) Param(name, value string) *Request {
	pair := url.QueryEscape(name) + "=" + url.QueryEscape(value)
	if r.url.RawQuery == "" {
		r.url.RawQuery = pair
	} else {
		r.url.RawQuery += "&" + pair
	}
	return r
}

// Header adds a header value, keeping any values already present.
func (r *Request) Header(name, value string) *Request {
	r.header.Add(name, value)
	return r
}

// BodyJSON serializes v as JSON and makes it the request body, replacing any
// previous body. Content-Type becomes application/json. On failure the
// request is left unchanged and a *SerializationError is returned.
func (r *Request) BodyJSON(v any) (*Request, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return r, &SerializationError{Err: err}
	}
	r.body = r.body.withBuffer(buf)
	r.header.Set("Content-Type", ContentTypeJSON)
	return r, nil
}

// BodyForm adds a name/value pair to a URL-encoded form body.
// The first call, or a call after BodyJSON, discards the previous body and
// sets Content-Type to application/x-www-form-urlencoded; later calls only
// append.
func (r *Request) BodyForm(name, value string) *Request {
	var switched bool
	r.body, switched = r.body.withForm(name, value)
	if switched {
		r.header.Set("Content-Type", ContentTypeForm)
	}
	return r
}

// Client overrides the transport used by Send.
func (r *Request) Client(t Transport) *Request {
	r.transport = t
	return r
}

// Build finalizes the request into a *net/http.Request without sending it.
// Form fields are encoded at this point.
func (r *Request) Build(ctx context.Context) (*http.Request, error) {
	var payload []byte
	if r.body.Kind() != BodyNone {
		payload = r.body.Encode()
	}

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequestWithContext(ctx, r.method, r.url.String(), bytes.NewReader(payload))
	} else {
		req, err = http.NewRequestWithContext(ctx, r.method, r.url.String(), nil)
	}
	if err != nil {
		return nil, err
	}

	for key, values := range r.header {
		req.Header[key] = append([]string(nil), values...)
	}

	return req, nil
}

// Send finalizes and executes the request with the transport set by Client,
// or with a new default Client when none was set.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	t := r.transport
	if t == nil {
		t = NewClient()
	}
	return r.SendWith(ctx, t)
}

// SendWith finalizes and executes the request with t.
// Transport failures are returned as *TransportError.
func (r *Request) SendWith(ctx context.Context, t Transport) (*Response, error) {
	httpReq, err := r.Build(ctx)
	if err != nil {
		return nil, err
	}

	tracer := newTimingTracer()
	httpReq = httpReq.WithContext(tracer.attach(httpReq.Context()))

	httpResp, err := t.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: r.method, URL: redactURL(r.url), Err: err}
	}

	timing := tracer.finish()
	return newResponse(httpResp, httpReq, timing), nil
}

// redactURL drops the password so it never reaches error messages.
func redactURL(u *url.URL) string {
	return u.Redacted()
}
