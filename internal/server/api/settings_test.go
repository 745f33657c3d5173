package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/langsard/pose/internal/store"
)

func testDefaults() store.Settings {
	return store.Settings{
		ConfidenceThreshold: 0.3,
		PresenceThreshold:   0.2,
		MergePolicy:         "best-per-angle",
		DisplayWidth:        480,
		DisplayHeight:       360,
	}
}

func TestSettingsHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, testDefaults())

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var got store.Settings
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// A fresh store reports the defaults.
	if got.ConfidenceThreshold != 0.3 {
		t.Errorf("expected confidence threshold 0.3, got %f", got.ConfidenceThreshold)
	}
	if got.MergePolicy != "best-per-angle" {
		t.Errorf("expected merge policy best-per-angle, got %q", got.MergePolicy)
	}
}

func TestSettingsHandler_Update(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, testDefaults())

	update := store.Settings{
		ConfidenceThreshold: 0.45,
		PresenceThreshold:   0.25,
		ExtendedJoints:      true,
		MergePolicy:         "best-per-keypoint",
		DisplayWidth:        800,
		DisplayHeight:       600,
	}
	body, _ := json.Marshal(update)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	// The store now returns the saved values.
	saved, err := s.Settings().Get(testDefaults())
	if err != nil {
		t.Fatalf("read back settings: %v", err)
	}
	if saved != update {
		t.Errorf("saved = %+v, want %+v", saved, update)
	}
}

func TestSettingsHandler_Validation(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, testDefaults())

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{`},
		{"threshold above one", `{"confidence_threshold": 1.5, "merge_policy": "best-per-angle", "display_width": 480, "display_height": 360}`},
		{"negative threshold", `{"confidence_threshold": -0.1, "merge_policy": "best-per-angle", "display_width": 480, "display_height": 360}`},
		{"unknown merge policy", `{"confidence_threshold": 0.3, "merge_policy": "winner-take-all", "display_width": 480, "display_height": 360}`},
		{"zero display box", `{"confidence_threshold": 0.3, "merge_policy": "best-per-angle", "display_width": 0, "display_height": 360}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s, testDefaults())

	req := httptest.NewRequest(http.MethodDelete, "/api/settings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
