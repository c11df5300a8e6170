package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/wonny/climata/internal/artifact"
	"github.com/wonny/climata/pkg/logger"
	"github.com/wonny/climata/pkg/params"
)

// ArtifactsHandler serves the pipeline artifacts read-only. It never
// triggers stage runs: producing artifacts stays with the CLI and DVC.
type ArtifactsHandler struct {
	params *params.Params
	logger *logger.Logger
}

// NewArtifactsHandler creates a new artifacts handler
func NewArtifactsHandler(p *params.Params, log *logger.Logger) *ArtifactsHandler {
	return &ArtifactsHandler{
		params: p,
		logger: log,
	}
}

// GetMetrics returns the processor's metrics artifact as JSON.
// GET /api/metrics
func (h *ArtifactsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := artifact.ReadMetrics(h.params.Output.MetricsFile)
	if err != nil {
		writeError(w, http.StatusNotFound, "metrics artifact not available; run the process stage first")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// GetVisualization streams the rendered PNG.
// GET /api/visualization
func (h *ArtifactsHandler) GetVisualization(w http.ResponseWriter, r *http.Request) {
	path := h.params.Output.Visualization
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "visualization artifact not available; run the visualize stage first")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, path)
}

// GetParams returns the loaded pipeline parameters and their content hash.
// GET /api/params
func (h *ArtifactsHandler) GetParams(w http.ResponseWriter, r *http.Request) {
	hash, err := params.Hash(h.params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash params")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hash":   hash,
		"params": h.params,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
