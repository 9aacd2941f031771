package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures a new Gin router. CORS is wide open on
// purpose: the service exists to let browser clients reach upstreams that
// refuse cross-origin requests.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", h.Health)
	r.GET("/search", h.Search)
	r.GET("/cities", h.Cities)
	r.GET("/streets", h.Streets)

	// Two generations of the deals lookup, kept on distinct methods: POST
	// drives the registry's GetAssestAndDeals, GET queries the open-data
	// transactions dataset.
	r.POST("/deals", h.AssetDeals)
	r.GET("/deals", h.DatastoreDeals)

	return r
}
