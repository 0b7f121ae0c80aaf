// Package http provides a small fluent builder for constructing and sending
// HTTP requests. Connection handling, TLS and the wire protocol are left to
// a Transport, which defaults to a net/http based Client.
//
// This package provides:
//   - One constructor per HTTP method (Get, Post, Put, ...)
//   - Ordered query parameters and headers
//   - Three mutually exclusive body kinds: none, JSON, URL-encoded form
//   - A Response wrapper with status, headers, version, final URL,
//     a streaming body reader and JSON decoding
//
// Basic Usage:
//
//	req, err := http.Post("https://httpbin.org/post")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	req, err = req.Param("show_env", "1").BodyJSON([]string{"蟹", "Ferris"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := req.Send(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var echo map[string]any
//	if err := resp.ParseJSON(&echo); err != nil {
//	    log.Fatal(err)
//	}
//
// Form Example:
//
//	req, err := http.Post("https://auth.example.com/oauth/token")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := req.
//	    BodyForm("grant_type", "client_credentials").
//	    BodyForm("client_id", "xxx").
//	    Send(ctx)
//
// Body Kinds:
//
// BodyJSON sets Content-Type to application/json. The first BodyForm call
// sets it to application/x-www-form-urlencoded; further BodyForm calls append
// fields. Switching between the two discards the previous body.
//
// Thread Safety:
//
// A Request is not safe for concurrent use and must not be reused after it
// has been sent. Client is safe for concurrent use.
package http
