package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "brainbook/pkg/errors"
	"brainbook/pkg/export"
	"brainbook/pkg/query"
	"brainbook/pkg/services"
)

// APIHandlers contains API endpoint handlers
type APIHandlers struct {
	service  *services.NoteService
	exporter *export.Exporter
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(service *services.NoteService, exporter *export.Exporter) *APIHandlers {
	return &APIHandlers{
		service:  service,
		exporter: exporter,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, status, appErr)
		return
	}
	http.Error(w, err.Error(), status)
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// GetNotesHandler returns the note list sorted pinned-first, honoring the
// optional q and categories query parameters without touching the session
// filter state.
func (h *APIHandlers) GetNotesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	selected := make(map[int64]bool)
	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				http.Error(w, "Invalid category filter", http.StatusBadRequest)
				return
			}
			selected[id] = true
		}
	}

	writeJSON(w, http.StatusOK, query.VisibleNotes(h.service.Notes(), q, selected))
}

// CreateNoteHandler creates a new note
func (h *APIHandlers) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string `json:"title"`
		CategoryID int64  `json:"categoryId"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	note, err := h.service.CreateNote(req.Title, req.CategoryID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// GetNoteHandler returns a specific note by ID
func (h *APIHandlers) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	note, err := h.service.Note(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// UpdateNoteHandler applies a partial update to an existing note
func (h *APIHandlers) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Title      *string `json:"title"`
		CategoryID *int64  `json:"categoryId"`
		Content    *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	note, err := h.service.UpdateNote(id, services.NotePatch{
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Content:    req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNoteHandler deletes a note by ID. Deleting twice succeeds both
// times.
func (h *APIHandlers) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	h.service.DeleteNote(id)
	w.WriteHeader(http.StatusNoContent)
}

// TogglePinHandler flips a note's pin flag
func (h *APIHandlers) TogglePinHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	note, err := h.service.TogglePin(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// GetCategoriesHandler returns all categories
func (h *APIHandlers) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Categories())
}

// CreateCategoryHandler creates a new category
func (h *APIHandlers) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	category, err := h.service.CreateCategory(req.Name, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// DeleteCategoryHandler deletes a category, orphaning its notes
func (h *APIHandlers) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	h.service.DeleteCategory(id)
	w.WriteHeader(http.StatusNoContent)
}

// GetDarkModeHandler returns the dark mode flag
func (h *APIHandlers) GetDarkModeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"darkMode": h.service.DarkMode()})
}

// ToggleDarkModeHandler flips the dark mode flag
func (h *APIHandlers) ToggleDarkModeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"darkMode": h.service.ToggleDarkMode()})
}

// GetDraftHandler returns the current draft text
func (h *APIHandlers) GetDraftHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"draft": h.service.Draft()})
}

// PutDraftHandler replaces the draft text
func (h *APIHandlers) PutDraftHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Draft string `json:"draft"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	h.service.SetDraft(req.Draft)
	w.WriteHeader(http.StatusNoContent)
}

// StatsHandler returns note and category counts
func (h *APIHandlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Stats())
}

// ExportAllHandler writes the full knowledge base to an HTML document and
// returns its path
func (h *APIHandlers) ExportAllHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot()
	path, err := h.exporter.WriteAll(snap.Categories, snap.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

// ExportNoteHandler writes a single note to an HTML document and returns
// its path
func (h *APIHandlers) ExportNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	note, err := h.service.Note(id)
	if err != nil {
		writeError(w, err)
		return
	}

	categoryName := "Uncategorized"
	if cat, ok := h.service.Category(note.CategoryID); ok {
		categoryName = cat.Name
	}

	path, err := h.exporter.WriteNote(note, categoryName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}
