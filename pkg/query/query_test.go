package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainbook/pkg/models"
)

func fixtureNotes() []models.Note {
	t0 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	return []models.Note{
		{ID: 1, Title: "A", CategoryID: 1, Content: "hello", Pinned: false, CreatedAt: t0},
		{ID: 2, Title: "B", CategoryID: 2, Content: "world", Pinned: true, CreatedAt: t1},
	}
}

func ids(notes []models.Note) []int64 {
	out := make([]int64, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestVisibleNotesPinnedFirst(t *testing.T) {
	got := VisibleNotes(fixtureNotes(), "", nil)
	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestVisibleNotesSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "content match", query: "wor", want: []int64{2}},
		{name: "title match case-insensitive", query: "a", want: []int64{1}},
		{name: "no match", query: "zzz", want: []int64{}},
		{name: "empty query matches all", query: "", want: []int64{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleNotes(fixtureNotes(), tt.query, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestVisibleNotesCategoryFilter(t *testing.T) {
	notes := fixtureNotes()

	got := VisibleNotes(notes, "", map[int64]bool{1: true})
	assert.Equal(t, []int64{1}, ids(got))

	got = VisibleNotes(notes, "", map[int64]bool{1: true, 2: true})
	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestVisibleNotesSearchAndFilterCombined(t *testing.T) {
	got := VisibleNotes(fixtureNotes(), "hello", map[int64]bool{2: true})
	assert.Empty(t, got)
}

func TestVisibleNotesNewestFirstWithinGroup(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	notes := []models.Note{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(time.Hour), Pinned: true},
		{ID: 3, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, CreatedAt: base.Add(3 * time.Hour), Pinned: true},
	}

	got := VisibleNotes(notes, "", nil)
	assert.Equal(t, []int64{4, 2, 3, 1}, ids(got))
}

func TestVisibleNotesStableForEqualTimestamps(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	notes := []models.Note{
		{ID: 10, CreatedAt: ts},
		{ID: 11, CreatedAt: ts},
		{ID: 12, CreatedAt: ts},
	}

	got := VisibleNotes(notes, "", nil)
	assert.Equal(t, []int64{10, 11, 12}, ids(got))
}

func TestVisibleNotesIdempotent(t *testing.T) {
	notes := fixtureNotes()
	first := VisibleNotes(notes, "", nil)
	second := VisibleNotes(notes, "", nil)
	assert.Equal(t, first, second)
}

func TestVisibleNotesDoesNotMutateInput(t *testing.T) {
	notes := fixtureNotes()
	require.Equal(t, int64(1), notes[0].ID)
	_ = VisibleNotes(notes, "", nil)
	assert.Equal(t, int64(1), notes[0].ID)
	assert.Equal(t, int64(2), notes[1].ID)
}
