package http

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Transport sends a finalized request and returns the raw response.
// *net/http.Client and *Client both satisfy it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the default Transport, a thin layer over *net/http.Client
// that adds default headers.
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	headers    http.Header
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a new Client with the given options.
//
// Example:
//
//	client := http.NewClient(
//	    http.WithTimeout(10*time.Second),
//	    http.WithHeader("Authorization", "Bearer token"),
//	)
//	resp, err := req.SendWith(ctx, client)
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(http.Header),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTimeout sets the timeout for all requests made by this client.
// The default timeout is 30 seconds.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeader adds a default header to all requests made by this client.
// Headers set on individual requests take precedence.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// WithHTTPClient sets a custom *http.Client for this client.
// Use this for advanced configuration like custom transports or TLS settings.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
// WARNING: This should only be used for testing purposes.
func WithInsecureSkipVerify() ClientOption {
	return func(c *Client) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		c.httpClient.Transport = transport
	}
}

// Do sends req after filling in the client's default headers.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for key, values := range c.headers {
		if _, ok := req.Header[key]; ok {
			continue
		}
		req.Header[key] = append([]string(nil), values...)
	}
	return c.httpClient.Do(req)
}
