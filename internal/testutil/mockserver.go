package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockServer wraps httptest.Server and records the requests it sees
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewMockServer creates a new mock HTTP server
func NewMockServer(handler http.HandlerFunc) *MockServer {
	ms := &MockServer{}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ms.mu.Lock()
		ms.requests = append(ms.requests, r)
		ms.mu.Unlock()
		handler(w, r)
	}))

	return ms
}

// NewRouteServer serves a fixed body per path and 404 for anything else
func NewRouteServer(routes map[string]string) *MockServer {
	return NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

// LastRequest returns the most recent request
func (ms *MockServer) LastRequest() *http.Request {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.requests) == 0 {
		return nil
	}
	return ms.requests[len(ms.requests)-1]
}

// RequestCount returns the number of requests received
func (ms *MockServer) RequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requests)
}

// Reset clears the request history
func (ms *MockServer) Reset() {
	ms.mu.Lock()
	ms.requests = nil
	ms.mu.Unlock()
}
