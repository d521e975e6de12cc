package searchinfra

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"todocore/todo"
)

// fakeEngine is an httptest-backed Elasticsearch standing in for the
// real thing. It records the last request body so tests can assert on
// the query shape.
type fakeEngine struct {
	server   *httptest.Server
	lastPath string
	lastBody []byte

	searchPayload string
	status        int
}

func newFakeEngine() *fakeEngine {
	f := &fakeEngine{status: http.StatusOK}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.lastPath = r.Method + " " + r.URL.Path
		f.lastBody, _ = io.ReadAll(r.Body)

		// The v8 client refuses to talk to servers missing this header.
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		if f.searchPayload != "" {
			_, _ = w.Write([]byte(f.searchPayload))
		} else {
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	return f
}

func (f *fakeEngine) index(t *testing.T) *esIndex {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Addresses = []string{f.server.URL}
	idx, err := NewElasticsearchIndex(cfg, nil)
	if err != nil {
		t.Fatalf("NewElasticsearchIndex: %v", err)
	}
	return idx
}

func TestUpsert(t *testing.T) {
	engine := newFakeEngine()
	defer engine.server.Close()
	idx := engine.index(t)

	item := todo.Item{ID: "id-1", Title: "Water plants", Status: todo.StatusPending}
	if err := idx.Upsert(context.Background(), item); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if engine.lastPath != "PUT /todos/_doc/id-1" {
		t.Errorf("unexpected request: %s", engine.lastPath)
	}
	var doc todo.Item
	if err := json.Unmarshal(engine.lastBody, &doc); err != nil {
		t.Fatalf("body not an item document: %v", err)
	}
	if doc.Title != "Water plants" {
		t.Errorf("document title = %s", doc.Title)
	}

	t.Run("engine error surfaces", func(t *testing.T) {
		engine.status = http.StatusInternalServerError
		defer func() { engine.status = http.StatusOK }()
		if err := idx.Upsert(context.Background(), item); err == nil {
			t.Error("expected error on 500")
		}
	})
}

func TestSearch(t *testing.T) {
	engine := newFakeEngine()
	defer engine.server.Close()
	engine.searchPayload = `{
		"hits": {"hits": [
			{"_source": {"id": "id-1", "title": "Water plants", "description": "weekly", "due_date": "2026-03-01", "status": "pending"}},
			{"_source": {"id": "id-2", "title": "Buy plants", "description": "", "due_date": "2026-03-02", "status": "pending"}}
		]}
	}`
	idx := engine.index(t)

	items, err := idx.Search(context.Background(), "plants")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 2 || items[0].ID != "id-1" || items[1].ID != "id-2" {
		t.Errorf("unexpected results: %+v", items)
	}

	var body struct {
		Query struct {
			MultiMatch struct {
				Query  string   `json:"query"`
				Fields []string `json:"fields"`
			} `json:"multi_match"`
		} `json:"query"`
	}
	if err := json.Unmarshal(engine.lastBody, &body); err != nil {
		t.Fatalf("query body: %v", err)
	}
	if body.Query.MultiMatch.Query != "plants" {
		t.Errorf("query = %s", body.Query.MultiMatch.Query)
	}
	if len(body.Query.MultiMatch.Fields) != 2 {
		t.Errorf("fields = %v, want title and description", body.Query.MultiMatch.Fields)
	}
}

func TestRemoveIfPresent(t *testing.T) {
	engine := newFakeEngine()
	defer engine.server.Close()
	idx := engine.index(t)

	if err := idx.RemoveIfPresent(context.Background(), "id-1"); err != nil {
		t.Fatalf("RemoveIfPresent: %v", err)
	}
	if engine.lastPath != "DELETE /todos/_doc/id-1" {
		t.Errorf("unexpected request: %s", engine.lastPath)
	}

	t.Run("404 is success", func(t *testing.T) {
		engine.status = http.StatusNotFound
		defer func() { engine.status = http.StatusOK }()
		if err := idx.RemoveIfPresent(context.Background(), "ghost"); err != nil {
			t.Errorf("absent document must not error: %v", err)
		}
	})

	t.Run("other errors surface", func(t *testing.T) {
		engine.status = http.StatusServiceUnavailable
		defer func() { engine.status = http.StatusOK }()
		if err := idx.RemoveIfPresent(context.Background(), "id-1"); err == nil {
			t.Error("expected error on 503")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"default is valid", func(c *Config) {}, ""},
		{"no addresses", func(c *Config) { c.Addresses = nil }, "Addresses"},
		{"blank address", func(c *Config) { c.Addresses = []string{""} }, "Addresses"},
		{"empty index", func(c *Config) { c.Index = "" }, "Index"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "Timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected valid config, got %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.wantField {
				t.Errorf("expected ConfigError for %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ELASTICSEARCH_HOST", "search.internal")
	t.Setenv("ELASTICSEARCH_PORT", "9201")
	t.Setenv("ELASTICSEARCH_INDEX", "tasks")

	cfg := FromEnv()
	if len(cfg.Addresses) != 1 || cfg.Addresses[0] != "http://search.internal:9201" {
		t.Errorf("Addresses = %v", cfg.Addresses)
	}
	if cfg.Index != "tasks" {
		t.Errorf("Index = %s", cfg.Index)
	}
}
