// Package testutil provides test doubles shared across afsync packages.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/roach88/afsync/internal/refdata"
)

// TestAPIKey is the key FakeAFS accepts by default.
const TestAPIKey = "test-key"

// FakeAFS is an in-process stand-in for the AFS API.
//
// It serves GET /cities and GET /airports, checks the x-api-key header and
// records how many requests each endpoint received.
type FakeAFS struct {
	Server *httptest.Server

	mu       sync.Mutex
	cities   []refdata.CityRecord
	airports []refdata.AirportRecord
	status   map[string]int
	hits     map[string]int
	apiKey   string
}

// NewFakeAFS starts a server serving the given lists. It is closed on test cleanup.
func NewFakeAFS(t *testing.T, cities []refdata.CityRecord, airports []refdata.AirportRecord) *FakeAFS {
	t.Helper()
	f := &FakeAFS{
		cities:   cities,
		airports: airports,
		status:   make(map[string]int),
		hits:     make(map[string]int),
		apiKey:   TestAPIKey,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cities", func(w http.ResponseWriter, r *http.Request) {
		f.serve(w, r, "cities", f.cities)
	})
	mux.HandleFunc("GET /airports", func(w http.ResponseWriter, r *http.Request) {
		f.serve(w, r, "airports", f.airports)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL to configure a source.Client with.
func (f *FakeAFS) URL() string {
	return f.Server.URL
}

// FailWith makes endpoint ("cities" or "airports") answer with the given status.
func (f *FakeAFS) FailWith(endpoint string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[endpoint] = status
}

// Hits returns the number of requests endpoint received.
func (f *FakeAFS) Hits(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[endpoint]
}

func (f *FakeAFS) serve(w http.ResponseWriter, r *http.Request, endpoint string, body any) {
	f.mu.Lock()
	f.hits[endpoint]++
	status := f.status[endpoint]
	f.mu.Unlock()

	if r.Header.Get("x-api-key") != f.apiKey {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
		return
	}
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
