package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Search handles the GET /search request: free-text address, street or
// neighborhood lookup against the registry's suggestion endpoint. The
// suggestion objects pass through untouched because the client needs their
// ObjectID/DescLayerID fields verbatim for the follow-up deals request.
func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	results, err := h.registry.Suggest(c.Request.Context(), q)
	if err != nil {
		log.Printf("/search error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if results == nil {
		results = []json.RawMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
