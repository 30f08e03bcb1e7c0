package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/talklens-backend/internal/adapter/sqlite/prefs"
)

// sectionStore defines the minimal interface needed by SectionsHandler.
type sectionStore interface {
	Get(ctx context.Context, documentID uuid.UUID) (map[string]bool, error)
	Set(ctx context.Context, documentID uuid.UUID, section string, open bool) error
	Toggle(ctx context.Context, documentID uuid.UUID, section string) (bool, error)
	SetAll(ctx context.Context, documentID uuid.UUID, open bool) error
}

// SectionsHandler serves per-document display-section state.
type SectionsHandler struct {
	store sectionStore
	log   *slog.Logger
}

// NewSectionsHandler creates a SectionsHandler.
func NewSectionsHandler(store sectionStore, logger *slog.Logger) *SectionsHandler {
	return &SectionsHandler{store: store, log: logger.With("handler", "sections")}
}

type sectionsResponse struct {
	Sections map[string]bool `json:"sections"`
}

// updateSectionRequest updates one section. With Open set the flag is
// written as given; without it the section toggles.
type updateSectionRequest struct {
	Section string `json:"section"`
	Open    *bool  `json:"open,omitempty"`
}

type setAllRequest struct {
	Open bool `json:"open"`
}

// Get handles GET /api/analyses/{id}/sections.
func (h *SectionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	state, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sectionsResponse{Sections: state})
}

// Update handles PUT /api/analyses/{id}/sections.
func (h *SectionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !slices.Contains(prefs.Sections, req.Section) {
		writeError(w, http.StatusBadRequest, "unknown section")
		return
	}

	if req.Open != nil {
		if err := h.store.Set(r.Context(), id, req.Section, *req.Open); err != nil {
			h.internalError(w, r, err)
			return
		}
	} else {
		if _, err := h.store.Toggle(r.Context(), id, req.Section); err != nil {
			h.internalError(w, r, err)
			return
		}
	}

	state, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sectionsResponse{Sections: state})
}

// SetAll handles POST /api/analyses/{id}/sections/all (bulk
// expand/collapse).
func (h *SectionsHandler) SetAll(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req setAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.SetAll(r.Context(), id, req.Open); err != nil {
		h.internalError(w, r, err)
		return
	}

	state, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sectionsResponse{Sections: state})
}

func (h *SectionsHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "internal server error")
}
