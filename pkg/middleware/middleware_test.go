package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	mw "github.com/soniabinty/gizmorent-server/pkg/middleware"
)

type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func newIdempotentRouter(store mw.IdempotencyStore, hits *int) http.Handler {
	r := chi.NewRouter()
	r.Use(mw.Idempotency(store))
	r.Post("/payments", func(w http.ResponseWriter, req *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"transactionId":"pi_abc"}`))
	})
	r.Post("/renter_request", func(w http.ResponseWriter, req *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"email":"u@example.com"}`))
	})
	return r
}

func TestIdempotencyReplayKeepsStatusCode(t *testing.T) {
	hits := 0
	router := newIdempotentRouter(newMemoryStore(), &hits)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(first, req)

	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first request, got %d", first.Code)
	}

	replay := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(replay, req)

	if replay.Code != http.StatusCreated {
		t.Errorf("expected the replay to keep status 201, got %d", replay.Code)
	}
	if replay.Body.String() != first.Body.String() {
		t.Errorf("expected the replay to return the original body, got %q", replay.Body.String())
	}
	if hits != 1 {
		t.Errorf("expected the handler to run once, ran %d times", hits)
	}
}

func TestIdempotencyKeyIsScopedToRoute(t *testing.T) {
	hits := 0
	router := newIdempotentRouter(newMemoryStore(), &hits)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "shared-key")
	router.ServeHTTP(rec, req)

	// The same key on a different route must not replay the payment body.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/renter_request", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "shared-key")
	router.ServeHTTP(rec, req)

	if hits != 2 {
		t.Fatalf("expected both handlers to run, ran %d times", hits)
	}
	if !strings.Contains(rec.Body.String(), "u@example.com") {
		t.Errorf("expected the renter request body, got %q", rec.Body.String())
	}
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	hits := 0
	router := newIdempotentRouter(newMemoryStore(), &hits)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{}`)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	}

	if hits != 2 {
		t.Errorf("expected the handler to run every time without a key, ran %d times", hits)
	}
}
