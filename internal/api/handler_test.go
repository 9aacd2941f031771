package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"nadlan-proxy/config"
	"nadlan-proxy/internal/upstream"
)

// newTestRouter builds the real router against mock upstream base URLs.
func newTestRouter(registryURL, datastoreURL string) *gin.Engine {
	cfg := config.Default()
	cfg.Registry.BaseURL = registryURL
	cfg.Registry.Backoff = time.Millisecond
	cfg.Registry.Timeout = 2 * time.Second
	cfg.Datastore.BaseURL = datastoreURL
	cfg.Datastore.Timeout = 2 * time.Second

	handler := NewHandler(upstream.NewClient(&cfg.Registry), upstream.NewDatastore(&cfg.Datastore), cfg)
	return NewRouter(handler)
}

func TestHealth(t *testing.T) {
	// Unroutable upstreams on purpose: /health must not depend on them.
	router := newTestRouter("http://127.0.0.1:1", "http://127.0.0.1:1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"nadlan-proxy"}`, w.Body.String())
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	router := newTestRouter("http://127.0.0.1:1", "http://127.0.0.1:1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSearchMissingQuery(t *testing.T) {
	router := newTestRouter("http://127.0.0.1:1", "http://127.0.0.1:1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/search?q=+", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing query parameter 'q'"}`, w.Body.String())
}

func TestSearchPassThrough(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/GetSuggestV2", r.URL.Path)
		w.Write([]byte(`[{"ObjectID":"123","ResultLable":"הירקון, תל אביב"}]`))
	}))
	defer registry.Close()

	router := newTestRouter(registry.URL, "http://127.0.0.1:1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/search?q=הירקון", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[{"ObjectID":"123","ResultLable":"הירקון, תל אביב"}]}`, w.Body.String())
}

func TestSearchUnwrapsResultsObject(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Results":[{"ObjectID":"123"}]}`))
	}))
	defer registry.Close()

	router := newTestRouter(registry.URL, "http://127.0.0.1:1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/search?q=tlv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[{"ObjectID":"123"}]}`, w.Body.String())
}

func TestSearchUpstreamFailure(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer registry.Close()

	router := newTestRouter(registry.URL, "http://127.0.0.1:1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/search?q=tlv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}
