package searchinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"todocore/todo"
)

// esIndex adapts a go-elasticsearch client to the search.Index contract.
type esIndex struct {
	client  *elasticsearch.Client
	index   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewElasticsearchIndex builds an index adapter from the provided
// configuration. Unlike the cache, the index has no disabled mode: a
// failed write must surface to the service so it can report it to the
// caller.
func NewElasticsearchIndex(cfg Config, logger *slog.Logger) (*esIndex, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
	})
	if err != nil {
		return nil, err
	}

	return &esIndex{client: client, index: cfg.Index, timeout: cfg.Timeout, logger: logger}, nil
}

// Upsert implements search.Index. The document replaces any previous
// version wholesale, so the index never holds fields from a stale item.
func (e *esIndex) Upsert(ctx context.Context, item todo.Item) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	body, err := json.Marshal(item)
	if err != nil {
		return err
	}

	res, err := e.client.Index(
		e.index,
		bytes.NewReader(body),
		e.client.Index.WithDocumentID(item.ID),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer drain(res.Body)

	if res.IsError() {
		return fmt.Errorf("index %s: unexpected status %s", e.index, res.Status())
	}
	return nil
}

// Search implements search.Index using a multi_match query over the
// title and description fields, relevance-ordered by the engine.
func (e *esIndex) Search(ctx context.Context, query string) ([]todo.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title", "description"},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer drain(res.Body)

	if res.IsError() {
		return nil, fmt.Errorf("search %s: unexpected status %s", e.index, res.Status())
	}

	var payload struct {
		Hits struct {
			Hits []struct {
				Source todo.Item `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}

	items := make([]todo.Item, 0, len(payload.Hits.Hits))
	for _, hit := range payload.Hits.Hits {
		items = append(items, hit.Source)
	}
	return items, nil
}

// RemoveIfPresent implements search.Index. A 404 from the engine means
// the document was already gone, which is the desired end state.
func (e *esIndex) RemoveIfPresent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := e.client.Delete(
		e.index,
		id,
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer drain(res.Body)

	if res.StatusCode == http.StatusNotFound {
		e.logger.Debug("document already absent", "index", e.index, "id", id)
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("delete from %s: unexpected status %s", e.index, res.Status())
	}
	return nil
}

// drain fully consumes and closes a response body so the transport can
// reuse the connection.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
