package export

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainbook/pkg/logger"
	"brainbook/pkg/models"
)

func testExporter(t *testing.T) *Exporter {
	t.Helper()
	e := NewExporter(t.TempDir(), logger.NewNop())
	e.now = func() time.Time { return time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC) }
	return e
}

func sampleNote() models.Note {
	return models.Note{
		ID:         1,
		Title:      "Closures",
		CategoryID: 1,
		Content:    "A **closure** captures variables.\n\n```go\nfn := func() { n++ }\n```",
		Pinned:     true,
		CreatedAt:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildNoteSingleDocument(t *testing.T) {
	e := testExporter(t)

	html, err := e.BuildNote(sampleNote(), "JavaScript")
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Closures</title>")
	assert.Contains(t, html, "<strong>Category:</strong> JavaScript")
	assert.Contains(t, html, "15/01/2024")
	assert.Contains(t, html, "characters")
	assert.Contains(t, html, "&#128204;")
	assert.Contains(t, html, "<strong>closure</strong>")
	assert.Contains(t, html, "fn := func() { n++ }")
	assert.NotContains(t, html, "category-section")
}

func TestBuildAllGroupsByCategory(t *testing.T) {
	e := testExporter(t)

	categories := []models.Category{
		{ID: 1, Name: "JavaScript", Color: models.DefaultColor},
		{ID: 2, Name: "PHP", Color: models.DefaultColor},
		{ID: 3, Name: "Empty", Color: models.DefaultColor},
	}
	notes := []models.Note{
		{ID: 1, Title: "A", CategoryID: 1, Content: "hello", CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "B", CategoryID: 2, Content: "world", CreatedAt: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Orphan", CategoryID: 0, Content: "lost", CreatedAt: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)},
	}

	html, err := e.BuildAll(categories, notes)
	require.NoError(t, err)

	assert.Contains(t, html, "My Learning Notes")
	assert.Contains(t, html, "<strong>3</strong> Total Notes")
	assert.Contains(t, html, "<strong>3</strong> Categories")
	assert.NotContains(t, html, "Empty")
	assert.NotContains(t, html, "Orphan", "uncategorized notes stay out of the grouped export")

	// Section order follows category order.
	js := strings.Index(html, "JavaScript")
	php := strings.Index(html, "PHP")
	require.GreaterOrEqual(t, js, 0)
	require.GreaterOrEqual(t, php, 0)
	assert.Less(t, js, php)
}

func TestBuildEscapesNoteText(t *testing.T) {
	e := testExporter(t)

	note := sampleNote()
	note.Title = `<script>alert("x")</script>`
	note.Content = "plain"

	html, err := e.BuildNote(note, "JS & Friends")
	require.NoError(t, err)

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "JS &amp; Friends")
}

func TestBuildNoteLengthCountsCharacters(t *testing.T) {
	e := testExporter(t)

	note := sampleNote()
	note.Content = "héllo wörld"

	html, err := e.BuildNote(note, "JavaScript")
	require.NoError(t, err)

	assert.Contains(t, html, "11 characters")
	assert.NotContains(t, html, "13 characters")
}

func TestWriteNoteCreatesFile(t *testing.T) {
	e := testExporter(t)

	path, err := e.WriteNote(sampleNote(), "JavaScript")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(strings.TrimSuffix(path, ".html")[len(e.dir)+1:], "Closures-"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Closures")
}

func TestWriteAllUsesUniqueNames(t *testing.T) {
	e := testExporter(t)

	categories := []models.Category{{ID: 1, Name: "JS", Color: models.DefaultColor}}
	notes := []models.Note{sampleNote()}

	p1, err := e.WriteAll(categories, notes)
	require.NoError(t, err)
	p2, err := e.WriteAll(categories, notes)
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
}
