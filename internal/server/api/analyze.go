// Package api provides the HTTP API handlers for the PoseCheck analyzer.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/langsard/pose/internal/app"
	"github.com/langsard/pose/internal/detector"
)

// maxUploadBytes bounds one analyze request: two photos plus form
// overhead.
const maxUploadBytes = 32 << 20

// Analyzer runs one front+side analysis pass.
type Analyzer interface {
	Analyze(ctx context.Context, front, side []byte) (*app.Result, error)
}

// AnalyzeHandler handles HTTP requests for analysis runs.
type AnalyzeHandler struct {
	analyzer Analyzer
}

// NewAnalyzeHandler creates a new AnalyzeHandler with the given analyzer.
func NewAnalyzeHandler(a Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: a}
}

// ServeHTTP implements the http.Handler interface. It accepts a multipart
// form with the image parts "front" and "side" and responds with the full
// analysis result.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	front, err := formFileBytes(r, "front")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing front image")
		return
	}
	side, err := formFileBytes(r, "side")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing side image")
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), front, side)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingInput):
			writeError(w, http.StatusBadRequest, "Both a front and a side image are required")
		case errors.Is(err, detector.ErrNotReady):
			writeError(w, http.StatusServiceUnavailable, "Pose model is not ready")
		default:
			writeError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// formFileBytes reads one named file part fully into memory.
func formFileBytes(r *http.Request, name string) ([]byte, error) {
	file, _, err := r.FormFile(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
