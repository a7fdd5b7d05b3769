package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giygas/lactancia-api/config"
)

// stubHandler answers every endpoint with the handler name
type stubHandler struct {
	calls []string
}

func (s *stubHandler) reply(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.calls = append(s.calls, name)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(name))
	}
}

func (s *stubHandler) Search(w http.ResponseWriter, r *http.Request) { s.reply("search")(w, r) }

func (s *stubHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	s.reply("suggestions")(w, r)
}

func (s *stubHandler) MedicationByID(w http.ResponseWriter, r *http.Request) {
	s.reply("medication")(w, r)
}

func (s *stubHandler) CacheStatus(w http.ResponseWriter, r *http.Request) { s.reply("cache")(w, r) }

func (s *stubHandler) ClearCache(w http.ResponseWriter, r *http.Request) { s.reply("clear")(w, r) }

func (s *stubHandler) HealthCheck(w http.ResponseWriter, r *http.Request) { s.reply("health")(w, r) }

func testConfig(env config.Environment) *config.Config {
	return &config.Config{
		Port:           "0",
		Address:        "127.0.0.1",
		Env:            env,
		LogLevel:       "error",
		MaxRequestBody: 1048576,
		MaxHeaderSize:  1048576,
	}
}

func TestNewServer(t *testing.T) {
	cfg := testConfig(config.EnvTest)
	s := NewServer(cfg, &stubHandler{})

	if s.server.Addr != "127.0.0.1:0" {
		t.Errorf("Expected address 127.0.0.1:0, got %s", s.server.Addr)
	}
	if s.server.ReadTimeout != 15*time.Second {
		t.Errorf("Expected read timeout 15s, got %v", s.server.ReadTimeout)
	}
	if s.router == nil || s.rateLimiter == nil {
		t.Fatal("Expected router and rate limiter to be set")
	}
}

func TestRoutes(t *testing.T) {
	stub := &stubHandler{}
	s := NewServer(testConfig(config.EnvTest), stub)

	tests := []struct {
		method   string
		path     string
		expected string
	}{
		{"GET", "/v1/search?q=paracetamol", "search"},
		{"GET", "/v1/suggestions?q=para", "suggestions"},
		{"GET", "/v1/medications/producto/1234", "medication"},
		{"GET", "/v1/cache", "cache"},
		{"DELETE", "/v1/cache", "clear"},
		{"GET", "/health", "health"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "127.0.0.1:4000"
			rr := httptest.NewRecorder()
			s.Router().ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", rr.Code)
			}
			if rr.Body.String() != tt.expected {
				t.Errorf("Expected handler %q, got %q", tt.expected, rr.Body.String())
			}
			if rr.Header().Get("X-RateLimit-Remaining") == "" {
				t.Error("Expected rate limit headers on API responses")
			}
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	s := NewServer(testConfig(config.EnvTest), &stubHandler{})

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.RemoteAddr = "127.0.0.1:4000"
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "http_request_in_flight") {
		t.Error("Expected application metrics in the exposition")
	}
}

func TestUnknownRoute(t *testing.T) {
	s := NewServer(testConfig(config.EnvTest), &stubHandler{})

	req := httptest.NewRequest("GET", "/v1/unknown", nil)
	req.RemoteAddr = "127.0.0.1:4000"
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}

func TestProductionBlocksDirectAccess(t *testing.T) {
	s := NewServer(testConfig(config.EnvProduction), &stubHandler{})

	req := httptest.NewRequest("GET", "/v1/cache", nil)
	req.RemoteAddr = "198.51.100.4:4000"
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/v1/cache", nil)
	req.RemoteAddr = "10.0.0.2:4000"
	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 through the proxy, got %d", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := NewServer(testConfig(config.EnvTest), &stubHandler{})

	req := httptest.NewRequest("OPTIONS", "/v1/cache", nil)
	req.RemoteAddr = "127.0.0.1:4000"
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard origin, got %q", got)
	}
}

func TestServerStartAndShutdown(t *testing.T) {
	s := NewServer(testConfig(config.EnvTest), &stubHandler{})

	done := make(chan error, 1)
	go func() { done <- s.Start() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean stop, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}
