package api

import (
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"nadlan-proxy/internal/model"
	"nadlan-proxy/internal/parse"
	"nadlan-proxy/internal/upstream"
)

const (
	cityLimit   = 8
	streetLimit = 12
)

// Cities handles the GET /cities request: city-name autocomplete backed by
// the open-data settlements dataset. Queries under two characters return an
// empty list without touching the upstream.
func (h *Handler) Cities(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(q) < 2 {
		c.JSON(http.StatusOK, gin.H{"results": []model.CitySuggestion{}})
		return
	}

	result, err := h.datastore.Search(c.Request.Context(), upstream.SearchQuery{
		ResourceID: h.cfg.Datastore.Resources.Cities,
		Q:          q,
		Limit:      cityLimit,
	})
	if err != nil {
		log.Printf("/cities error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": parse.Cities(result.Records)})
}

// Streets handles the GET /streets request: street-name autocomplete,
// optionally narrowed to one city by its official code.
func (h *Handler) Streets(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(q) < 2 {
		c.JSON(http.StatusOK, gin.H{"results": []model.StreetSuggestion{}})
		return
	}

	query := upstream.SearchQuery{
		ResourceID: h.cfg.Datastore.Resources.Streets,
		Q:          q,
		Limit:      streetLimit,
	}
	if cityCode := strings.TrimSpace(c.Query("city_code")); cityCode != "" {
		query.Filters = map[string]string{h.cfg.Datastore.Columns.CityCode: cityCode}
	}

	result, err := h.datastore.Search(c.Request.Context(), query)
	if err != nil {
		log.Printf("/streets error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": parse.Streets(result.Records)})
}
