package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bastiangx/eventserve/pkg/query"
)

func TestSearchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		qs := r.URL.Query()
		if qs.Get("city") != "Paris" || qs.Get("country") != "FR" || qs.Get("keyword") != "jazz" {
			t.Errorf("query params = %v", qs)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"events":[{"id":"e1","name":"Jazz Night","date":"2024-04-01","venue":"Le Caveau"}],"total":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	res, err := c.Search(context.Background(), query.Query{City: "Paris", Country: "fr", Keyword: "jazz"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Events) != 1 || res.Events[0].ID != "e1" {
		t.Fatalf("events = %+v", res.Events)
	}
	if res.Message != "" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"events":[],"total":0,"message":"No 'polka' found in Paris"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	res, err := c.Search(context.Background(), query.Query{City: "Paris", Keyword: "polka"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Events) != 0 {
		t.Fatalf("events = %+v", res.Events)
	}
	if res.Message != "No 'polka' found in Paris" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestSearchEmptyResultGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"events":[],"total":0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	res, err := c.Search(context.Background(), query.Query{Keyword: "polka"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Message == "" {
		t.Error("expected a fallback message for an empty result set")
	}
}

func TestSearchSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	_, err := c.Search(context.Background(), query.Query{Keyword: "jazz"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Detail != "Invalid API key" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestSearchNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	_, err := c.Search(context.Background(), query.Query{Keyword: "jazz"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Detail == "" {
		t.Error("expected a generic fallback detail")
	}
}

func TestSearchValidationIssuesNoRequest(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	_, err := c.Search(context.Background(), query.Query{City: "  ", Country: " ", Keyword: ""})

	if !errors.Is(err, query.ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("validation failure still hit the API %d times", hits.Load())
	}
}
