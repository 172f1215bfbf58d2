package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Backend is a fake automation backend. Register canned responses per
// route, point an anchor client at URL() and inspect what was received
// afterwards. Unregistered routes answer with the service's real 404
// shape. Safe for concurrent requests.
type Backend struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]cannedResponse
	requests []RecordedRequest
}

type cannedResponse struct {
	status int
	body   string
}

// RecordedRequest is one request the fake backend received.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// NewBackend starts the fake backend and shuts it down when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{routes: make(map[string]cannedResponse)}
	b.server = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the base URL to configure the client with.
func (b *Backend) URL() string {
	return b.server.URL
}

// Handle registers a canned response for method and path. Chainable.
func (b *Backend) Handle(method, path string, status int, body string) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = cannedResponse{status: status, body: body}
	return b
}

// Requests returns a copy of everything received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest returns the most recent request, if any.
func (b *Backend) LastRequest() (RecordedRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return RecordedRequest{}, false
	}
	return b.requests[len(b.requests)-1], true
}

// Reset forgets recorded requests but keeps registered routes.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

func (b *Backend) handle(w http.ResponseWriter, r *http.Request) {
	payload, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   payload,
	})
	canned, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail": "Not Found"}`)
		return
	}

	w.WriteHeader(canned.status)
	fmt.Fprint(w, canned.body)
}
