package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"nadlan-proxy/config"
)

// Datastore queries the data.gov.il CKAN datastore-search API. Calls are
// single-shot: a failed autocomplete or deal lookup surfaces immediately
// instead of retrying.
type Datastore struct {
	baseURL string
	client  *http.Client
}

// NewDatastore creates a datastore client from the loaded configuration.
func NewDatastore(cfg *config.DatastoreConfig) *Datastore {
	return &Datastore{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// SearchQuery describes one datastore_search call. Filters are exact-match
// column values; Q is a free-text match across the whole record.
type SearchQuery struct {
	ResourceID string
	Q          string
	Filters    map[string]string
	Limit      int
	Sort       string
}

// SearchResult holds the records of one datastore_search response. Records
// stay as raw maps because column names vary between datasets.
type SearchResult struct {
	Records []map[string]any
	Total   int
}

type searchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Records []map[string]any `json:"records"`
		Total   int              `json:"total"`
	} `json:"result"`
}

// Search runs a single datastore_search call. Filters travel as a JSON
// object in the query string, which is how CKAN expects them.
func (d *Datastore) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	params := url.Values{}
	params.Set("resource_id", q.ResourceID)
	if q.Q != "" {
		params.Set("q", q.Q)
	}
	if len(q.Filters) > 0 {
		encoded, err := json.Marshal(q.Filters)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal filters: %w", err)
		}
		params.Set("filters", string(encoded))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("received non-2xx status code: %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal datastore response: %w", err)
	}
	if !sr.Success {
		return nil, fmt.Errorf("datastore reported failure for resource %s", q.ResourceID)
	}

	return &SearchResult{Records: sr.Result.Records, Total: sr.Result.Total}, nil
}
