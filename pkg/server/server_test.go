package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bastiangx/eventserve/pkg/events"
	"github.com/bastiangx/eventserve/pkg/places"
	"github.com/bastiangx/eventserve/pkg/search"
	"github.com/bastiangx/eventserve/pkg/suggest"
	"github.com/vmihailenco/msgpack/v5"
)

type noopSource struct{}

func (noopSource) Lookup(ctx context.Context, q string) ([]places.GeoRecord, error) {
	return nil, nil
}

// eventsBackend fakes the search API with n events and counts hits.
func eventsBackend(t *testing.T, n int, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"events":[`)
		for i := 0; i < n; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"id":"ev-%03d","name":"Event %03d","date":"2024-05-01","venue":"Hall"}`, i, i)
		}
		fmt.Fprintf(w, `],"total":%d}`, n)
	}))
}

// runServer feeds encoded requests through a server instance and returns a
// decoder over everything it wrote.
func runServer(t *testing.T, searcher *search.Client, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	engine := suggest.NewEngine(noopSource{}, suggest.Options{})
	defer engine.Close()
	session := search.NewSession(events.DefaultSort, 30)

	var out bytes.Buffer
	srv := newServer(engine, session, searcher, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	return msgpack.NewDecoder(&out)
}

func TestServerSearchAndNavigate(t *testing.T) {
	var hits atomic.Int64
	backend := eventsBackend(t, 75, &hits)
	defer backend.Close()
	searcher := search.NewClient(backend.URL, 2*time.Second)

	dec := runServer(t, searcher,
		Request{ID: "q1", Op: "query", City: "Paris", Keyword: "jazz"},
		Request{ID: "s1", Op: "search"},
		Request{ID: "p1", Op: "page", Page: 3},
		Request{ID: "z1", Op: "size", Size: "all"},
		Request{ID: "h1", Op: "health"},
	)

	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil || ready.Status != "ready" {
		t.Fatalf("ready frame: %+v, %v", ready, err)
	}

	var qr QueryResponse
	if err := dec.Decode(&qr); err != nil {
		t.Fatalf("query response: %v", err)
	}
	if qr.ID != "q1" || qr.City != "Paris" || qr.Keyword != "jazz" {
		t.Fatalf("query response = %+v", qr)
	}

	var view ViewResponse
	if err := dec.Decode(&view); err != nil {
		t.Fatalf("search view: %v", err)
	}
	if view.ID != "s1" || view.Total != 75 || view.TotalPages != 3 || view.Page != 1 {
		t.Fatalf("search view = %+v", view)
	}
	if len(view.Events) != 30 {
		t.Fatalf("page 1 carries %d events", len(view.Events))
	}

	if err := dec.Decode(&view); err != nil {
		t.Fatalf("page view: %v", err)
	}
	if view.ID != "p1" || view.Page != 3 || len(view.Events) != 15 {
		t.Fatalf("page 3 view = %+v (%d events)", view, len(view.Events))
	}

	if err := dec.Decode(&view); err != nil {
		t.Fatalf("size view: %v", err)
	}
	if view.ID != "z1" || view.Page != 1 || view.TotalPages != 1 || len(view.Events) != 75 {
		t.Fatalf("size all view = %+v (%d events)", view, len(view.Events))
	}
	if view.PageSize != "all" {
		t.Fatalf("PageSize = %q", view.PageSize)
	}

	var ok StatusResponse
	if err := dec.Decode(&ok); err != nil || ok.ID != "h1" || ok.Status != "ok" {
		t.Fatalf("health frame: %+v, %v", ok, err)
	}

	if hits.Load() != 1 {
		t.Fatalf("backend hit %d times, want 1", hits.Load())
	}
}

func TestServerRejectsEmptySubmission(t *testing.T) {
	var hits atomic.Int64
	backend := eventsBackend(t, 5, &hits)
	defer backend.Close()
	searcher := search.NewClient(backend.URL, 2*time.Second)

	dec := runServer(t, searcher,
		Request{ID: "s1", Op: "search"},
	)

	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("ready frame: %v", err)
	}

	var fail ErrorResponse
	if err := dec.Decode(&fail); err != nil {
		t.Fatalf("error frame: %v", err)
	}
	if fail.ID != "s1" || fail.Code != 400 || fail.Error == "" {
		t.Fatalf("error frame = %+v", fail)
	}

	if hits.Load() != 0 {
		t.Fatalf("validation failure still hit the backend %d times", hits.Load())
	}
}

func TestServerUnknownOp(t *testing.T) {
	var hits atomic.Int64
	backend := eventsBackend(t, 0, &hits)
	defer backend.Close()

	dec := runServer(t, search.NewClient(backend.URL, time.Second),
		Request{ID: "x1", Op: "explode"},
	)

	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("ready frame: %v", err)
	}

	var fail ErrorResponse
	if err := dec.Decode(&fail); err != nil {
		t.Fatalf("error frame: %v", err)
	}
	if fail.ID != "x1" || fail.Code != 400 {
		t.Fatalf("error frame = %+v", fail)
	}
}
