// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

type bannerResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}

// HealthHandler serves the liveness banner and the health endpoint.
type HealthHandler struct {
	info AppInfo
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(info AppInfo) *HealthHandler {
	return &HealthHandler{info: info}
}

// HandleRoot handles GET / requests.
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, bannerResponse{Message: "Welcome to the Dishes API!", Status: "running"})
}

// HandleHealth handles GET /health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", App: h.info.Name, Version: h.info.Version})
}
