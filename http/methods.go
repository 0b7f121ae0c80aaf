package http

import "net/http"

// Options creates an OPTIONS request.
func Options(url string) (*Request, error) { return New(http.MethodOptions, url) }

// Get creates a GET request.
func Get(url string) (*Request, error) { return New(http.MethodGet, url) }

// Post creates a POST request.
func Post(url string) (*Request, error) { return New(http.MethodPost, url) }

// Put creates a PUT request.
func Put(url string) (*Request, error) { return New(http.MethodPut, url) }

// Delete creates a DELETE request.
func Delete(url string) (*Request, error) { return New(http.MethodDelete, url) }

// Head creates a HEAD request.
func Head(url string) (*Request, error) { return New(http.MethodHead, url) }

// Trace creates a TRACE request.
func Trace(url string) (*Request, error) { return New(http.MethodTrace, url) }

// Connect creates a CONNECT request.
func Connect(url string) (*Request, error) { return New(http.MethodConnect, url) }

// Patch creates a PATCH request.
func Patch(url string) (*Request, error) { return New(http.MethodPatch, url) }
