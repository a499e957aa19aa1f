// Package testutil provides testing utilities for the ledger API.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// TestServer wraps httptest.Server with convenience methods
type TestServer struct {
	Server  *httptest.Server
	BaseURL string
	t       *testing.T
}

// NewTestServer creates a new test server using the application's router
func NewTestServer(t *testing.T, router http.Handler) *TestServer {
	t.Helper()

	server := httptest.NewServer(router)

	return &TestServer{
		Server:  server,
		BaseURL: server.URL,
		t:       t,
	}
}

// GET performs a GET request to the given path
func (ts *TestServer) GET(path string) *http.Response {
	ts.t.Helper()

	resp, err := http.Get(ts.BaseURL + path)
	if err != nil {
		ts.t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

// POST performs a POST request to the given path
func (ts *TestServer) POST(path string, contentType string, body io.Reader) *http.Response {
	ts.t.Helper()

	resp, err := http.Post(ts.BaseURL+path, contentType, body)
	if err != nil {
		ts.t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

// POSTJSON marshals body and POSTs it as application/json
func (ts *TestServer) POSTJSON(path string, body any) *http.Response {
	ts.t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		ts.t.Fatalf("marshaling %s body failed: %v", path, err)
	}
	return ts.POST(path, "application/json", bytes.NewReader(data))
}

// POSTJSONWithHeaders is POSTJSON with extra request headers
func (ts *TestServer) POSTJSONWithHeaders(path string, body any, headers map[string]string) *http.Response {
	ts.t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		ts.t.Fatalf("marshaling %s body failed: %v", path, err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		ts.t.Fatalf("building POST %s failed: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		ts.t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// SetTestEnv sets environment variables for testing and returns a
// cleanup function
func SetTestEnv(t *testing.T, vars map[string]string) func() {
	t.Helper()

	oldValues := make(map[string]string)
	for k, v := range vars {
		oldValues[k] = os.Getenv(k)
		os.Setenv(k, v)
	}

	return func() {
		for k, v := range oldValues {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}
}

// ReadBody reads and returns the response body as a string
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return string(body)
}

// DecodeJSON decodes the response body into dst
func DecodeJSON(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}
