package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nadlan-proxy/config"
)

func testRegistryConfig(url string) *config.RegistryConfig {
	cfg := config.Default().Registry
	cfg.BaseURL = url
	cfg.Backoff = 20 * time.Millisecond
	cfg.Timeout = 2 * time.Second
	return &cfg
}

func TestPostRetriesWithLinearBackoff(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(testRegistryConfig(server.URL))

	start := time.Now()
	data, err := client.Post(context.Background(), "GetAssestAndDeals", map[string]any{})
	elapsed := time.Since(start)

	assert.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
	assert.Equal(t, 3, requests)
	// Waits are backoff×1 then backoff×2.
	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond, "linear backoff should be honored")
}

func TestPostExhaustsAttempts(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testRegistryConfig(server.URL))

	_, err := client.Post(context.Background(), "GetAssestAndDeals", map[string]any{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 attempts")
	assert.Equal(t, 3, requests)
}

func TestPostSendsHeaderBundle(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(testRegistryConfig(server.URL))

	_, err := client.Post(context.Background(), "GetAssestAndDeals", map[string]any{})
	assert.NoError(t, err)

	assert.Equal(t, "https://www.nadlan.gov.il", got.Get("Origin"))
	assert.Equal(t, "application/json;charset=UTF-8", got.Get("Content-Type"))
	assert.Contains(t, got.Get("User-Agent"), "Chrome")
	assert.Contains(t, got.Get("Accept-Language"), "he-IL")
}

func TestSuggestBareList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/GetSuggestV2", r.URL.Path)
		assert.Equal(t, "רוטשילד", r.URL.Query().Get("searchText"))
		assert.Equal(t, "0", r.URL.Query().Get("resultType"))
		w.Write([]byte(`[{"ObjectID":"1"},{"ObjectID":"2"}]`))
	}))
	defer server.Close()

	client := NewClient(testRegistryConfig(server.URL))

	results, err := client.Suggest(context.Background(), "רוטשילד")
	assert.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSuggestWrappedResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Results":[{"ObjectID":"1"}]}`))
	}))
	defer server.Close()

	client := NewClient(testRegistryConfig(server.URL))

	results, err := client.Suggest(context.Background(), "רוטשילד")
	assert.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSuggestDoesNotRetry(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(testRegistryConfig(server.URL))

	_, err := client.Suggest(context.Background(), "רוטשילד")
	assert.Error(t, err)
	assert.Equal(t, 1, requests, "GET calls fail immediately without retry")
}

func TestAssetDeals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/GetAssestAndDeals", r.URL.Path)

		var payload map[string]any
		err := json.NewDecoder(r.Body).Decode(&payload)
		assert.NoError(t, err)
		assert.Equal(t, "UNIQ_ID", payload["ObjectKey"])

		w.Write([]byte(`{"AllResults":[{"DEALAMOUNT":"1,500,000"}],"TotalCount":42}`))
	}))
	defer server.Close()

	client := NewClient(testRegistryConfig(server.URL))

	resp, err := client.AssetDeals(context.Background(), &AssetDealsPayload{ObjectKey: "UNIQ_ID"})
	assert.NoError(t, err)
	assert.Len(t, resp.AllResults, 1)
	assert.Equal(t, 42, resp.TotalCount)
}

func TestPostStopsWhenContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testRegistryConfig(server.URL)
	cfg.Backoff = 5 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewClient(cfg).Post(ctx, "GetAssestAndDeals", map[string]any{})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "backoff wait should abort with the context")
}
