package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestDisabledStore(t *testing.T) {
	store := NewS3Store(Config{Bucket: "exports"})
	err := store.Put(context.Background(), "a.json", []byte("{}"), "application/json")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestS3StorePut(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		method, path = r.Method, r.URL.Path
		mu.Unlock()
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewS3Store(Config{
		Endpoint:     srv.URL,
		Region:       "us-east-1",
		Bucket:       "restaurant-exports",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	if err := store.Put(context.Background(), "exports/snapshot.json", []byte(`{"restaurants":[]}`), "application/json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if method != http.MethodPut || path != "/restaurant-exports/exports/snapshot.json" {
		t.Fatalf("unexpected request %s %s", method, path)
	}
}
