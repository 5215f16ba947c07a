package reqtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// Server is a fake Request API.
type Server struct {
	t       testing.TB
	httpSrv *httptest.Server

	mu     sync.Mutex
	mocks  []*mockEntry
	logs   []RequestLog
	nextID int
}

type mockEntry struct {
	id             string
	method         string
	path           string
	status         int
	body           []byte
	headers        map[string]string
	queryParams    map[string]string
	requestHeaders map[string]string
	delay          time.Duration
	times          int
	hits           int
}

// New creates a fake API server. It is not listening until Start.
func New(t testing.TB) *Server {
	t.Helper()
	return &Server{t: t}
}

// Start starts the server and returns its base URL. The server is closed
// when the test completes.
func (s *Server) Start() string {
	s.t.Helper()
	if s.httpSrv != nil {
		return s.httpSrv.URL
	}
	s.httpSrv = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	s.t.Cleanup(s.Stop)
	return s.httpSrv.URL
}

// Stop closes the server. It is safe to call more than once.
func (s *Server) Stop() {
	if s.httpSrv != nil {
		s.httpSrv.Close()
	}
}

// URL returns the base URL, or "" before Start.
func (s *Server) URL() string {
	if s.httpSrv == nil {
		return ""
	}
	return s.httpSrv.URL
}

// Client returns an http.Client wired to the server.
func (s *Server) Client() *http.Client {
	if s.httpSrv != nil {
		return s.httpSrv.Client()
	}
	return http.DefaultClient
}

// Mock starts configuring a response for method and path.
func (s *Server) Mock(method, path string) *MockBuilder {
	return &MockBuilder{
		server: s,
		mock: &mockEntry{
			method: strings.ToUpper(method),
			path:   path,
			status: http.StatusOK,
		},
	}
}

// Reset removes all mocks and clears the request log.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mocks = nil
	s.logs = nil
}

// Requests returns the logged requests, newest first.
func (s *Server) Requests() []RequestLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RequestLog, len(s.logs))
	for i, l := range s.logs {
		out[len(s.logs)-1-i] = l
	}
	return out
}

// LastRequest returns the newest request matching method and path. It fails
// the test if there is none.
func (s *Server) LastRequest(t testing.TB, method, path string) *RequestLog {
	t.Helper()
	for _, l := range s.Requests() {
		if strings.EqualFold(l.Method, method) && matchesPath(l.Path, path) {
			return &l
		}
	}
	t.Fatalf("no request matching %s %s", method, path)
	return nil
}

// AssertCalled asserts that an endpoint was called at least once.
func (s *Server) AssertCalled(t testing.TB, method, path string) {
	t.Helper()
	if s.countCalls(method, path) == 0 {
		t.Errorf("expected %s %s to be called, but it was not called", method, path)
	}
}

// AssertCalledTimes asserts that an endpoint was called exactly n times.
func (s *Server) AssertCalledTimes(t testing.TB, method, path string, times int) {
	t.Helper()
	if count := s.countCalls(method, path); count != times {
		t.Errorf("expected %s %s to be called %d times, but was called %d times",
			method, path, times, count)
	}
}

// AssertNotCalled asserts that an endpoint was not called.
func (s *Server) AssertNotCalled(t testing.TB, method, path string) {
	t.Helper()
	if count := s.countCalls(method, path); count > 0 {
		t.Errorf("expected %s %s to not be called, but it was called %d times",
			method, path, count)
	}
}

func (s *Server) countCalls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, l := range s.logs {
		if strings.EqualFold(l.Method, method) && matchesPath(l.Path, path) {
			count++
		}
	}
	return count
}

func (s *Server) addMock(m *mockEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.id = fmt.Sprintf("mock-%d", s.nextID)
	s.mocks = append(s.mocks, m)
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	m := s.match(r)
	entry := RequestLog{
		Method:      r.Method,
		Path:        r.URL.Path,
		Headers:     firstValues(r.Header),
		Body:        string(body),
		QueryString: r.URL.RawQuery,
	}
	if m != nil {
		m.hits++
		entry.MatchedID = m.id
	}
	s.logs = append(s.logs, entry)
	s.mu.Unlock()

	if m == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"statusCode": http.StatusNotFound,
			"message":    fmt.Sprintf("no mock for %s %s", r.Method, r.URL.Path),
			"error":      "Not Found",
		})
		return
	}

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-r.Context().Done():
			return
		}
	}
	for k, v := range m.headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(m.status)
	if len(m.body) > 0 {
		_, _ = w.Write(m.body)
	}
}

// match returns the first usable mock for r. Callers hold s.mu.
func (s *Server) match(r *http.Request) *mockEntry {
	for _, m := range s.mocks {
		if m.method != r.Method || !matchesPath(r.URL.Path, m.path) {
			continue
		}
		if m.times > 0 && m.hits >= m.times {
			continue
		}
		if !matchesQuery(r, m.queryParams) || !matchesHeaders(r, m.requestHeaders) {
			continue
		}
		return m
	}
	return nil
}

func matchesQuery(r *http.Request, want map[string]string) bool {
	q := r.URL.Query()
	for k, v := range want {
		if q.Get(k) != v {
			return false
		}
	}
	return true
}

func matchesHeaders(r *http.Request, want map[string]string) bool {
	for k, v := range want {
		if r.Header.Get(k) != v {
			return false
		}
	}
	return true
}

// matchesPath checks if a request path matches the expected path pattern.
// Supports exact matching and path parameters ({id} patterns).
func matchesPath(actual, expected string) bool {
	if actual == expected {
		return true
	}

	actualParts := strings.Split(actual, "/")
	expectedParts := strings.Split(expected, "/")
	if len(actualParts) != len(expectedParts) {
		return false
	}

	for i, exp := range expectedParts {
		if strings.HasPrefix(exp, "{") && strings.HasSuffix(exp, "}") {
			if actualParts[i] == "" {
				return false
			}
			continue
		}
		if exp != actualParts[i] {
			return false
		}
	}
	return true
}

func firstValues(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
