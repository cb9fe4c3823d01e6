package e2etest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// mockResponse is a canned upstream reply bound to a path substring
type mockResponse struct {
	pathSubstring string
	status        int
	body          string
}

// RecordedRequest captures what the gateway sent upstream
type RecordedRequest struct {
	Path  string
	Query url.Values
}

// MockUpstream mimics the Coinglass API for end-to-end tests
type MockUpstream struct {
	server    *httptest.Server
	mu        sync.Mutex
	responses []mockResponse
	requests  []RecordedRequest
}

const defaultMockBody = `{"code":"0","msg":"success","data":[{"t":1700000000,"v":42}]}`

// NewMockUpstream creates and starts a mock Coinglass server
func NewMockUpstream() *MockUpstream {
	ms := &MockUpstream{}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)
	ms.server = httptest.NewServer(mux)

	return ms
}

// URL returns the mock server's base URL
func (ms *MockUpstream) URL() string {
	return ms.server.URL
}

// Close shuts the mock server down
func (ms *MockUpstream) Close() {
	ms.server.Close()
}

// SetResponse configures a canned reply for paths containing pathSubstring.
// Later configurations take precedence over earlier ones.
func (ms *MockUpstream) SetResponse(pathSubstring string, status int, body string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.responses = append([]mockResponse{{pathSubstring, status, body}}, ms.responses...)
}

// RequestCount returns the number of requests the mock has received
func (ms *MockUpstream) RequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requests)
}

// LastRequest returns the most recent recorded request, if any
func (ms *MockUpstream) LastRequest() (RecordedRequest, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.requests) == 0 {
		return RecordedRequest{}, false
	}
	return ms.requests[len(ms.requests)-1], true
}

func (ms *MockUpstream) handleRequest(w http.ResponseWriter, r *http.Request) {
	ms.mu.Lock()
	ms.requests = append(ms.requests, RecordedRequest{
		Path:  r.URL.Path,
		Query: r.URL.Query(),
	})
	responses := append([]mockResponse(nil), ms.responses...)
	ms.mu.Unlock()

	for _, response := range responses {
		if strings.Contains(r.URL.Path, response.pathSubstring) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(response.status)
			w.Write([]byte(response.body))
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(defaultMockBody))
}
