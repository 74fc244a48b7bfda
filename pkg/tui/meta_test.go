package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantMeta noteMeta
		wantBody string
	}{
		{
			name:     "title and category",
			content:  "---\ntitle: Arrow Functions\ncategory: JavaScript\n---\n\nbody text",
			wantMeta: noteMeta{Title: "Arrow Functions", Category: "JavaScript"},
			wantBody: "body text",
		},
		{
			name:     "no front matter",
			content:  "just a note",
			wantMeta: noteMeta{},
			wantBody: "just a note",
		},
		{
			name:     "unterminated block stays literal",
			content:  "---\ntitle: X\nno closing fence",
			wantMeta: noteMeta{},
			wantBody: "---\ntitle: X\nno closing fence",
		},
		{
			name:     "unknown keys ignored",
			content:  "---\ntitle: T\npinned: true\n---\nbody",
			wantMeta: noteMeta{Title: "T"},
			wantBody: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body := parseFrontMatter(tt.content)
			assert.Equal(t, tt.wantMeta, meta)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestFrontMatterRoundTrip(t *testing.T) {
	meta := noteMeta{Title: "useState Hook", Category: "PHP"}
	body := "## Usage\n\n```javascript\nuseState(0)\n```"

	gotMeta, gotBody := parseFrontMatter(buildContentWithMeta(meta, body))

	assert.Equal(t, meta, gotMeta)
	assert.Equal(t, body, gotBody)
}
