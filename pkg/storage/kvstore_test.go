package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainbook/pkg/logger"
	"brainbook/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	return store
}

func TestLoadFreshDirectoryReturnsSeeds(t *testing.T) {
	store := newTestStore(t)

	state := store.Load()

	assert.False(t, state.DarkMode)
	assert.Equal(t, models.SeedCategories(), state.Categories)
	require.Len(t, state.Notes, 2)
	assert.Equal(t, "Arrow Functions", state.Notes[0].Title)
	assert.True(t, state.Notes[1].Pinned)
	assert.Empty(t, state.Draft)
}

func TestNotesRoundTrip(t *testing.T) {
	store := newTestStore(t)

	createdAt := time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.UTC)
	notes := []models.Note{
		{ID: 7, Title: "Goroutines", CategoryID: 3, Content: "go func() {}", Pinned: true, CreatedAt: createdAt},
	}

	require.NoError(t, store.SaveNotes(notes))
	loaded := store.LoadNotes()

	require.Len(t, loaded, 1)
	assert.Equal(t, notes[0].ID, loaded[0].ID)
	assert.Equal(t, notes[0].Title, loaded[0].Title)
	assert.Equal(t, notes[0].CategoryID, loaded[0].CategoryID)
	assert.Equal(t, notes[0].Content, loaded[0].Content)
	assert.Equal(t, notes[0].Pinned, loaded[0].Pinned)
	assert.True(t, loaded[0].CreatedAt.Equal(createdAt))
}

func TestCategoriesRoundTrip(t *testing.T) {
	store := newTestStore(t)

	categories := []models.Category{
		{ID: 5, Name: "Go", Color: "from-indigo-400 to-blue-500"},
	}

	require.NoError(t, store.SaveCategories(categories))
	assert.Equal(t, categories, store.LoadCategories())
}

func TestDarkModeRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveDarkMode(true))
	assert.True(t, store.LoadDarkMode())

	require.NoError(t, store.SaveDarkMode(false))
	assert.False(t, store.LoadDarkMode())
}

func TestDraftStoredAsRawText(t *testing.T) {
	store := newTestStore(t)

	draft := "## heading\n\nnot \"json\" at all"
	require.NoError(t, store.SaveDraft(draft))

	data, err := os.ReadFile(filepath.Join(store.DataDir(), "noteDraft.txt"))
	require.NoError(t, err)
	assert.Equal(t, draft, string(data))
	assert.Equal(t, draft, store.LoadDraft())
}

func TestCorruptKeyOnlyResetsItself(t *testing.T) {
	store := newTestStore(t)

	categories := []models.Category{{ID: 9, Name: "Rust", Color: models.DefaultColor}}
	require.NoError(t, store.SaveCategories(categories))
	require.NoError(t, store.SaveDarkMode(true))

	// Clobber the notes file only.
	notesPath := filepath.Join(store.DataDir(), "learningNotes.json")
	require.NoError(t, os.WriteFile(notesPath, []byte("{not json"), 0644))

	state := store.Load()

	assert.Equal(t, models.SeedNotes(), state.Notes)
	assert.Equal(t, categories, state.Categories)
	assert.True(t, state.DarkMode)
}

func TestCreatedAtLayoutFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"nanoseconds", "2024-01-15T08:00:00.5Z", time.Date(2024, 1, 15, 8, 0, 0, 500000000, time.UTC)},
		{"seconds", "2024-01-15T08:00:00Z", time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)},
		{"date only", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"garbage", "yesterday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCreatedAt(tt.value)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestKeyForPath(t *testing.T) {
	key, ok := keyForPath("/data/learningNotes.json")
	require.True(t, ok)
	assert.Equal(t, KeyNotes, key)

	key, ok = keyForPath("/data/noteDraft.txt")
	require.True(t, ok)
	assert.Equal(t, KeyDraft, key)

	_, ok = keyForPath("/data/unrelated.json")
	assert.False(t, ok)
}
