package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoed struct {
	Method      string              `json:"method"`
	Query       string              `json:"query"`
	ContentType string              `json:"contentType"`
	Body        string              `json:"body"`
	Headers     map[string][]string `json:"headers"`
}

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(echoed{
			Method:      r.Method,
			Query:       r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(body),
			Headers:     r.Header,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_SendJSON(t *testing.T) {
	server := newEchoServer(t)

	req, err := Post(server.URL + "/post")
	require.NoError(t, err)
	req, err = req.Param("show_env", "1").BodyJSON([]string{"蟹", "Ferris"})
	require.NoError(t, err)

	resp, err := req.Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status())

	var got echoed
	require.NoError(t, resp.ParseJSON(&got))
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "show_env=1", got.Query)
	assert.Equal(t, ContentTypeJSON, got.ContentType)
	assert.Equal(t, `["蟹","Ferris"]`, got.Body)
}

func TestClient_SendForm(t *testing.T) {
	server := newEchoServer(t)

	req, err := Put(server.URL)
	require.NoError(t, err)

	resp, err := req.BodyForm("name", "Ferris the crab").BodyForm("lang", "go&rust").Send(context.Background())
	require.NoError(t, err)

	var got echoed
	require.NoError(t, resp.ParseJSON(&got))
	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, ContentTypeForm, got.ContentType)
	assert.Equal(t, "name=Ferris+the+crab&lang=go%26rust", got.Body)

	form, err := url.ParseQuery(got.Body)
	require.NoError(t, err)
	assert.Equal(t, "go&rust", form.Get("lang"))
}

func TestClient_DefaultHeaders(t *testing.T) {
	server := newEchoServer(t)

	client := NewClient(
		WithHeader("User-Agent", "reru-test"),
		WithHeader("Accept", "text/plain"),
	)

	req, err := Get(server.URL)
	require.NoError(t, err)
	resp, err := req.Header("Accept", "application/json").SendWith(context.Background(), client)
	require.NoError(t, err)

	var got echoed
	require.NoError(t, resp.ParseJSON(&got))
	assert.Equal(t, []string{"reru-test"}, got.Headers["User-Agent"])
	assert.Equal(t, []string{"application/json"}, got.Headers["Accept"])
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	req, err := Get(server.URL)
	require.NoError(t, err)

	_, err = req.SendWith(context.Background(), NewClient(WithTimeout(20*time.Millisecond)))

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	var urlErr *url.Error
	require.True(t, errors.As(err, &urlErr))
	assert.True(t, urlErr.Timeout())
}

func TestClient_ContextCancelled(t *testing.T) {
	server := newEchoServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := Get(server.URL)
	require.NoError(t, err)

	_, err = req.Send(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	req, err := Get(addr)
	require.NoError(t, err)

	resp, err := req.Send(context.Background())
	assert.Nil(t, resp)

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, addr, tErr.URL)
}

func TestClient_WithHTTPClient(t *testing.T) {
	rt := &recordingTransport{}
	client := NewClient(WithHTTPClient(&http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return rt.Do(r)
	})}))

	req, err := Delete("https://example.invalid/items/7")
	require.NoError(t, err)
	resp, err := req.SendWith(context.Background(), client)
	require.NoError(t, err)
	defer resp.Close()

	require.Len(t, rt.requests, 1)
	assert.Equal(t, http.MethodDelete, rt.requests[0].Method)
}

func TestClient_WithInsecureSkipVerify(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	req, err := Get(server.URL)
	require.NoError(t, err)
	_, err = req.SendWith(context.Background(), NewClient())
	require.Error(t, err, "self-signed certificate should be rejected by default")

	req, err = Get(server.URL)
	require.NoError(t, err)
	resp, err := req.SendWith(context.Background(), NewClient(WithInsecureSkipVerify()))
	require.NoError(t, err)

	got, err := ParseJSONAs[map[string]bool](resp)
	require.NoError(t, err)
	assert.True(t, got["ok"])
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
