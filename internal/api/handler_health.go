package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles the GET /health request. It never touches the upstreams,
// so it answers even when nadlan.gov.il is unreachable.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
}
