package api

import (
	"nadlan-proxy/config"
	"nadlan-proxy/internal/upstream"
)

const serviceName = "nadlan-proxy"

// Handler holds shared dependencies for API handlers.
type Handler struct {
	registry  *upstream.Client
	datastore *upstream.Datastore
	cfg       *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(registry *upstream.Client, datastore *upstream.Datastore, cfg *config.Config) *Handler {
	return &Handler{
		registry:  registry,
		datastore: datastore,
		cfg:       cfg,
	}
}
