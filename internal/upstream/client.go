package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nadlan-proxy/config"
)

// Client talks to the nadlan.gov.il transaction registry. It carries the
// fixed browser-like header bundle on every request and reuses one
// http.Client, so outbound connections behave like a single browser session.
type Client struct {
	baseURL  string
	headers  map[string]string
	attempts int
	backoff  time.Duration
	client   *http.Client
}

// NewClient creates a registry client from the loaded configuration.
func NewClient(cfg *config.RegistryConfig) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		headers:  cfg.Headers,
		attempts: cfg.Attempts,
		backoff:  cfg.Backoff,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Post issues a JSON POST to the given registry endpoint. Any transport
// error or non-2xx status counts as a failed attempt; the client waits
// backoff × attemptNumber between attempts and gives up after the configured
// number of tries.
func (c *Client) Post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		data, err := c.do(ctx, http.MethodPost, endpoint, nil, bytes.NewReader(body))
		if err == nil {
			return data, nil
		}
		lastErr = err
		log.Printf("registry POST %s attempt %d failed: %v", endpoint, attempt, err)

		if attempt < c.attempts {
			select {
			case <-time.After(time.Duration(attempt) * c.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("all %d attempts to registry %s failed: %w", c.attempts, endpoint, lastErr)
}

// Suggest queries the GetSuggestV2 endpoint. No retry: autocomplete results
// go stale faster than a backoff cycle completes. The upstream answers with
// either a bare JSON array or an object wrapping it in Results; both forms
// are tolerated.
func (c *Client) Suggest(ctx context.Context, searchText string) ([]json.RawMessage, error) {
	query := url.Values{}
	query.Set("searchText", searchText)
	query.Set("resultType", "0")

	data, err := c.do(ctx, http.MethodGet, "GetSuggestV2", query, nil)
	if err != nil {
		return nil, err
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Results []json.RawMessage `json:"Results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggest response: %w", err)
	}
	return wrapped.Results, nil
}

// AssetDeals fetches a page of transactions for a previously suggested object.
func (c *Client) AssetDeals(ctx context.Context, payload *AssetDealsPayload) (*AssetDealsResponse, error) {
	data, err := c.Post(ctx, "GetAssestAndDeals", payload)
	if err != nil {
		return nil, err
	}

	var resp AssetDealsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deals response: %w", err)
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
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
	return data, nil
}
