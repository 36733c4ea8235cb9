package transmit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestPostSucceedsFirstTry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("Authorization header = %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(time.Second, 3)
	data, err := c.Post(context.Background(), srv.URL, []byte(`{}`), map[string]string{
		"Authorization": "Bearer key",
	})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("body = %q, want ok", data)
	}
}

func TestPostRetriesOn5xx(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := New(time.Second, 3)
	data, err := c.Post(context.Background(), srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if string(data) != "recovered" {
		t.Errorf("body = %q, want recovered", data)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestPostFailsImmediatelyOn4xx(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad key"))
	}))
	defer srv.Close()

	c := New(time.Second, 3)
	_, err := c.Post(context.Background(), srv.URL, nil, nil)
	if err == nil {
		t.Fatal("Post() error = nil, want error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on 4xx)", attempts)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want status in message", err)
	}
}

func TestPostGivesUpAfterBudget(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(time.Second, 2)
	_, err := c.Post(context.Background(), srv.URL, nil, nil)
	if err == nil {
		t.Fatal("Post() error = nil, want error")
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if !strings.Contains(err.Error(), "failed after 2 attempts") {
		t.Errorf("error = %v, want attempt budget in message", err)
	}
}

func TestPostHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(time.Second, 3)
	_, err := c.Post(ctx, srv.URL, nil, nil)
	if err == nil {
		t.Fatal("Post() error = nil, want context error")
	}
}
