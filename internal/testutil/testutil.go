package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

// Route is a canned response served by a fixture Server.
type Route struct {
	Status int
	Body   any
	// Raw, when set, is written verbatim instead of encoding Body.
	Raw string
}

// Server is an httptest server answering fixed JSON per path and counting hits.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]Route
	hits     map[string]int
	requests []*http.Request
}

// NewServer starts a fixture server that is closed when the test ends.
func NewServer(t *testing.T, routes map[string]Route) *Server {
	t.Helper()

	s := &Server{
		routes: routes,
		hits:   make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	s.requests = append(s.requests, r.Clone(r.Context()))
	route, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if route.Raw != "" {
		_, _ = w.Write([]byte(route.Raw))
		return
	}
	if route.Body != nil {
		_ = jsoniter.NewEncoder(w).Encode(route.Body)
	}
}

// Hits reports how many requests were made for path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits reports how many requests the server received.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request for path, or nil.
func (s *Server) LastRequest(path string) *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].URL.Path == path {
			return s.requests[i]
		}
	}
	return nil
}
