package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aus-site/aus-server/internal/model"
	"github.com/aus-site/aus-server/internal/store"
)

// FounderHandler serves CRUD for the founder profile. The profile is a
// single record addressable two ways: by row id, or as "the singleton" for
// clients that don't know the id yet (the admin panel's first load).
type FounderHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewFounderHandler creates a new FounderHandler.
func NewFounderHandler(st *store.Store, logger *slog.Logger) *FounderHandler {
	return &FounderHandler{
		store:  st,
		logger: logger,
	}
}

// badgeList accepts badges either as a JSON array of strings or as a single
// comma-separated string. Either form is normalized to a list of trimmed,
// non-empty labels.
type badgeList []string

func (b *badgeList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*b = normalizeBadges(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = normalizeBadges(strings.Split(s, ","))
		return nil
	}
	return fmt.Errorf("badges must be a list of strings or a comma-separated string")
}

func normalizeBadges(in []string) []string {
	out := make([]string, 0, len(in))
	for _, badge := range in {
		if trimmed := strings.TrimSpace(badge); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// founderPayload is the request body for create and update. Pointer fields
// distinguish "absent" from "present but empty" so partial updates only
// touch the fields the client sent.
type founderPayload struct {
	Name   *string    `json:"name"`
	Title  *string    `json:"title"`
	Bio    *string    `json:"bio"`
	Image  *string    `json:"image"`
	Badges *badgeList `json:"badges"`
}

// merge applies the payload's present fields onto f, trimming scalar values.
// It reports an error if a present scalar field trims to empty.
func (p *founderPayload) merge(f *model.Founder) error {
	set := func(dst *string, src *string, field string) error {
		if src == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*src)
		if trimmed == "" {
			return fmt.Errorf("%s must be a non-empty string", field)
		}
		*dst = trimmed
		return nil
	}
	if err := set(&f.Name, p.Name, "name"); err != nil {
		return err
	}
	if err := set(&f.Title, p.Title, "title"); err != nil {
		return err
	}
	if err := set(&f.Bio, p.Bio, "bio"); err != nil {
		return err
	}
	if err := set(&f.Image, p.Image, "image"); err != nil {
		return err
	}
	if p.Badges != nil {
		f.Badges = []string(*p.Badges)
	}
	return nil
}

// Get returns the founder profile, or a JSON null body if none exists.
// GET /api/founder
func (h *FounderHandler) Get(w http.ResponseWriter, r *http.Request) {
	founder, err := h.store.GetFounder(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		h.logger.Error("get founder failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch founder")
		return
	}
	writeJSON(w, http.StatusOK, founder)
}

// Create writes the founder profile. All four scalar fields are required;
// badges default to an empty list. Because the profile is a single-row
// resource, a repeated create replaces the existing record instead of
// accumulating a second one.
// POST /api/founder
func (h *FounderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload founderPayload
	if err := readJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Name == nil || payload.Title == nil || payload.Bio == nil || payload.Image == nil {
		writeError(w, http.StatusBadRequest, "name, title, bio and image are required")
		return
	}

	founder := &model.Founder{Badges: []string{}}
	if err := payload.merge(founder); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpsertFounder(r.Context(), founder); err != nil {
		h.logger.Error("create founder failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create founder")
		return
	}

	writeJSON(w, http.StatusCreated, founder)
}

// UpdateByID merges the fields present in a partial payload into the founder
// record with the given id.
// PUT /api/founder/{id}
func (h *FounderHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid founder id.")
		return
	}

	founder, err := h.store.GetFounderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Founder not found.")
			return
		}
		h.logger.Error("update founder lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update founder")
		return
	}

	h.applyUpdate(w, r, founder)
}

// UpdateSingleton resolves the current founder and applies the same partial
// field-merge rule as UpdateByID.
// PUT /api/founder
func (h *FounderHandler) UpdateSingleton(w http.ResponseWriter, r *http.Request) {
	founder, err := h.store.GetFounder(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No founder to update.")
			return
		}
		h.logger.Error("update founder lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update founder")
		return
	}

	h.applyUpdate(w, r, founder)
}

func (h *FounderHandler) applyUpdate(w http.ResponseWriter, r *http.Request, founder *model.Founder) {
	var payload founderPayload
	if err := readJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := payload.merge(founder); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpdateFounder(r.Context(), founder); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Founder not found.")
			return
		}
		h.logger.Error("update founder failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update founder")
		return
	}

	writeJSON(w, http.StatusOK, founder)
}

// DeleteByID removes the founder record with the given id.
// DELETE /api/founder/{id}
func (h *FounderHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid founder id.")
		return
	}

	if err := h.store.DeleteFounder(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Founder not found.")
			return
		}
		h.logger.Error("delete founder failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete founder")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSingleton resolves the current founder and removes it.
// DELETE /api/founder
func (h *FounderHandler) DeleteSingleton(w http.ResponseWriter, r *http.Request) {
	founder, err := h.store.GetFounder(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No founder to delete.")
			return
		}
		h.logger.Error("delete founder lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete founder")
		return
	}

	if err := h.store.DeleteFounder(r.Context(), founder.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No founder to delete.")
			return
		}
		h.logger.Error("delete founder failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete founder")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
