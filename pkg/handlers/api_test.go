package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainbook/pkg/export"
	"brainbook/pkg/logger"
	"brainbook/pkg/models"
	"brainbook/pkg/services"
	"brainbook/pkg/storage"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	store, err := storage.NewStore(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	service := services.NewNoteService(store, logger.NewNop())
	t.Cleanup(func() { service.Close() })
	exporter := export.NewExporter(t.TempDir(), logger.NewNop())
	return NewRouter(service, exporter, logger.NewNop())
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetNotesPinnedFirst(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var notes []models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, int64(2), notes[0].ID, "pinned seed note comes first")
}

func TestGetNotesSearchAndFilter(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/notes?q=useState", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var notes []models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, int64(2), notes[0].ID)

	rr = doJSON(t, router, http.MethodGet, "/api/notes?categories=1", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, int64(1), notes[0].ID)

	rr = doJSON(t, router, http.MethodGet, "/api/notes?categories=x", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateNoteLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/notes", map[string]any{
		"title":      "Slices",
		"categoryId": 3,
		"content":    "s := []int{1, 2, 3}",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var note models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &note))
	assert.Equal(t, "Slices", note.Title)
	assert.False(t, note.Pinned)

	rr = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/notes/%d", note.ID), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	newTitle := "Slices and arrays"
	rr = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/notes/%d", note.ID), map[string]any{
		"title": newTitle,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &note))
	assert.Equal(t, newTitle, note.Title)

	rr = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/notes/%d", note.ID), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Idempotent delete.
	rr = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/notes/%d", note.ID), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/notes/%d", note.ID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateNoteValidationStatus(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/notes", map[string]any{
		"title":      "",
		"categoryId": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOTE_TITLE_REQUIRED")

	rr = doJSON(t, router, http.MethodPost, "/api/notes", map[string]any{
		"title":      "T",
		"categoryId": 999,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "CATEGORY_NOT_FOUND")
}

func TestTogglePinEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/notes/1/pin", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var note models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &note))
	assert.True(t, note.Pinned)

	rr = doJSON(t, router, http.MethodPost, "/api/notes/999/pin", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/categories", map[string]any{
		"name":  "Go",
		"color": "from-indigo-400 to-blue-500",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var category models.Category
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &category))
	assert.Equal(t, "Go", category.Name)

	rr = doJSON(t, router, http.MethodPost, "/api/categories", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Deleting category 1 orphans seed note 1.
	rr = doJSON(t, router, http.MethodDelete, "/api/categories/1", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/notes/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var note models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &note))
	assert.Zero(t, note.CategoryID)
}

func TestDarkModeAndDraftEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/darkmode/toggle", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"darkMode": true}`, rr.Body.String())

	rr = doJSON(t, router, http.MethodPut, "/api/draft", map[string]any{"draft": "wip"})
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/draft", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"draft": "wip"}`, rr.Body.String())
}

func TestIndexPageRendersNotes(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Arrow Functions")
	assert.Contains(t, body, "useState Hook")
	assert.Contains(t, body, "<strong>lexical this binding</strong>")
}

func TestExportViewEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/export", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "My Learning Notes")

	rr = doJSON(t, router, http.MethodGet, "/export/2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "useState Hook")

	rr = doJSON(t, router, http.MethodGet, "/export/999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
