package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/langsard/pose/internal/store"
)

// ModelsHandler handles HTTP requests for the model registry.
type ModelsHandler struct {
	store *store.Store

	// onActivate, when set, is called after a model is marked active so
	// the running detector can be swapped to it.
	onActivate func(*store.Model) error
}

// NewModelsHandler creates a new ModelsHandler with the given store.
func NewModelsHandler(s *store.Store, onActivate func(*store.Model) error) *ModelsHandler {
	return &ModelsHandler{store: s, onActivate: onActivate}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *ModelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/models, /api/models/{id} or
	// /api/models/{id}/activate
	path := strings.TrimPrefix(r.URL.Path, "/api/models")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createModelRequest struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	InputSize int    `json:"input_size"`
}

type modelResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	InputSize int    `json:"input_size"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

type listModelsResponse struct {
	Models []modelResponse `json:"models"`
}

// toModelResponse converts a store.Model to a modelResponse.
func toModelResponse(m *store.Model) modelResponse {
	return modelResponse{
		ID:        m.ID,
		Name:      m.Name,
		Path:      m.Path,
		InputSize: m.InputSize,
		Active:    m.Active,
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/models and returns all registered models.
func (h *ModelsHandler) list(w http.ResponseWriter, r *http.Request) {
	models, err := h.store.Models().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list models")
		return
	}

	response := listModelsResponse{
		Models: make([]modelResponse, 0, len(models)),
	}
	for _, m := range models {
		response.Models = append(response.Models, toModelResponse(m))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/models/{id} and returns a single model.
func (h *ModelsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	model, err := h.store.Models().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Model not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get model")
		return
	}

	writeJSON(w, http.StatusOK, toModelResponse(model))
}

// create handles POST /api/models and registers a new model file.
func (h *ModelsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "Path is required")
		return
	}
	if req.InputSize == 0 {
		req.InputSize = 256
	}
	if req.InputSize < 0 {
		writeError(w, http.StatusBadRequest, "Invalid input size")
		return
	}

	model := &store.Model{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Path:      req.Path,
		InputSize: req.InputSize,
	}

	if err := h.store.Models().Create(model); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create model")
		return
	}

	writeJSON(w, http.StatusCreated, toModelResponse(model))
}

// activate handles POST /api/models/{id}/activate. The registry is updated
// first; swapping the running detector may still fail, in which case the
// model stays marked active and loads on the next start.
func (h *ModelsHandler) activate(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Models().SetActive(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Model not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to activate model")
		return
	}

	model, err := h.store.Models().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get model")
		return
	}

	if h.onActivate != nil {
		if err := h.onActivate(model); err != nil {
			writeError(w, http.StatusInternalServerError, "Model activated but failed to load: "+err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, toModelResponse(model))
}

// delete handles DELETE /api/models/{id} and removes a registry entry.
func (h *ModelsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Models().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Model not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete model")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
