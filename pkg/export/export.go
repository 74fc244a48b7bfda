// Package export renders notes into a standalone HTML document with
// inlined styles, suitable for printing or save-as-PDF.
package export

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "brainbook/pkg/errors"
	"brainbook/pkg/logger"
	"brainbook/pkg/markup"
	"brainbook/pkg/models"
	"brainbook/pkg/utils"
)

const dateLayout = "02/01/2006"
const timestampLayout = "02/01/2006 15.04.05"

// NoteView is one note prepared for the document template.
type NoteView struct {
	Title        string
	Pinned       bool
	CategoryName string
	CreatedAt    string
	Length       int
	Content      template.HTML
}

// CategorySection groups the notes of one category.
type CategorySection struct {
	Name  string
	Notes []NoteView
}

// Document is the root template payload. Single is set for a one-note
// export, Sections for a full export; never both.
type Document struct {
	Title           string
	Single          *NoteView
	Sections        []CategorySection
	TotalNotes      int
	TotalCategories int
	GeneratedAt     string
}

// Exporter writes export documents into a directory.
type Exporter struct {
	dir string
	log *logger.Logger
	now func() time.Time
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir string, log *logger.Logger) *Exporter {
	return &Exporter{
		dir: dir,
		log: log.WithComponent("export"),
		now: time.Now,
	}
}

func noteView(n models.Note, categoryName string) NoteView {
	return NoteView{
		Title:        n.Title,
		Pinned:       n.Pinned,
		CategoryName: categoryName,
		CreatedAt:    n.CreatedAt.Format(dateLayout),
		Length:       utf8.RuneCountInString(n.Content),
		Content:      markup.RenderHTML(n.Content),
	}
}

// BuildNote renders a single-note document.
func (e *Exporter) BuildNote(note models.Note, categoryName string) (string, error) {
	view := noteView(note, categoryName)
	doc := Document{
		Title:       note.Title,
		Single:      &view,
		GeneratedAt: e.now().Format(timestampLayout),
	}
	return renderDocument(doc)
}

// BuildAll renders the full knowledge base, grouped by category in
// category order. Categories without notes are skipped, and uncategorized
// notes are omitted from the grouped document; they stay exportable
// individually.
func (e *Exporter) BuildAll(categories []models.Category, notes []models.Note) (string, error) {
	doc := Document{
		Title:           "My Learning Notes",
		TotalNotes:      len(notes),
		TotalCategories: len(categories),
		GeneratedAt:     e.now().Format(timestampLayout),
	}

	for _, cat := range categories {
		section := CategorySection{Name: cat.Name}
		for _, n := range notes {
			if n.CategoryID == cat.ID {
				section.Notes = append(section.Notes, noteView(n, cat.Name))
			}
		}
		if len(section.Notes) > 0 {
			doc.Sections = append(doc.Sections, section)
		}
	}

	return renderDocument(doc)
}

// WriteNote renders a single note and writes it to a uniquely named file,
// returning the file path.
func (e *Exporter) WriteNote(note models.Note, categoryName string) (string, error) {
	html, err := e.BuildNote(note, categoryName)
	if err != nil {
		return "", err
	}
	return e.write(utils.SanitizeFilename(note.Title), html)
}

// WriteAll renders the full knowledge base and writes it to a uniquely
// named file, returning the file path.
func (e *Exporter) WriteAll(categories []models.Category, notes []models.Note) (string, error) {
	html, err := e.BuildAll(categories, notes)
	if err != nil {
		return "", err
	}
	return e.write("learning-notes", html)
}

func (e *Exporter) write(stem, html string) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", apperrors.WrapPersistence(err, "EXPORT_DIR", "failed to create export directory")
	}

	path := filepath.Join(e.dir, stem+"-"+utils.GenerateShortUUID()+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", apperrors.WrapPersistence(err, "EXPORT_WRITE", "failed to write export document")
	}

	e.log.Infow("Export written", "path", path)
	return path, nil
}

func renderDocument(doc Document) (string, error) {
	var sb strings.Builder
	if err := documentTemplate.Execute(&sb, doc); err != nil {
		return "", apperrors.WrapPersistence(err, "EXPORT_RENDER", "failed to render export document")
	}
	return sb.String(), nil
}

var documentTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { margin: 2cm; }
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', system-ui, sans-serif; line-height: 1.6; color: #333; }
  .cover { text-align: center; padding: 50px 0; {{if not .Single}}page-break-after: always;{{end}} }
  .cover h1 { font-size: {{if .Single}}36px{{else}}48px{{end}}; color: #4f46e5; margin-bottom: 16px; }
  .cover p { font-size: 18px; color: #6b7280; margin-bottom: 32px; }
  .stats { background: #f8fafc; padding: 20px; border-radius: 12px; display: inline-block; }
  .category-section { margin-bottom: 40px; }
  .category-header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 12px; margin-bottom: 24px; }
  .note-card { background: white; border: 2px solid #e5e7eb; border-radius: 16px; padding: 24px; margin-bottom: 20px; box-shadow: 0 4px 12px rgba(0,0,0,0.1); }
  .note-title { font-size: 24px; font-weight: bold; color: #1f2937; margin-bottom: 12px; }
  .note-meta { font-size: 14px; color: #6b7280; margin-bottom: 16px; background: #f9fafb; padding: 12px; border-radius: 8px; }
  .note-content p { margin-bottom: 8px; line-height: 1.6; }
  .note-content h2 { font-size: 20px; font-weight: bold; margin: 16px 0 8px; }
  .note-content blockquote { border-left: 4px solid #3b82f6; padding-left: 12px; margin: 8px 0; color: #4b5563; }
  .note-content li { margin-left: 20px; }
  pre { background: #1f2937; color: #10b981; padding: 16px; border-radius: 8px; margin: 16px 0; font-family: 'Courier New', monospace; font-size: 14px; overflow-x: auto; border-left: 4px solid #3b82f6; }
  .footer { text-align: center; font-size: 12px; color: #9ca3af; margin-top: 40px; }
</style>
</head>
<body>
<div class="cover">
  <h1>{{.Title}}</h1>
{{if .Single}}
  <div class="stats">
    <div><strong>Category:</strong> {{.Single.CategoryName}}</div>
    <div><strong>Created:</strong> {{.Single.CreatedAt}}</div>
    <div><strong>Length:</strong> {{.Single.Length}} characters</div>
  </div>
{{else}}
  <p>Personal Knowledge Base</p>
  <div class="stats">
    <div><strong>{{.TotalNotes}}</strong> Total Notes</div>
    <div><strong>{{.TotalCategories}}</strong> Categories</div>
    <div><strong>{{.GeneratedAt}}</strong></div>
  </div>
{{end}}
</div>
{{if .Single}}
<div class="note-card">
  <div class="note-title">{{.Single.Title}}{{if .Single.Pinned}} &#128204;{{end}}</div>
  <div class="note-meta"><strong>Category:</strong> {{.Single.CategoryName}} | <strong>Created:</strong> {{.Single.CreatedAt}} | <strong>Length:</strong> {{.Single.Length}} characters</div>
  <div class="note-content">{{.Single.Content}}</div>
</div>
{{else}}
{{range .Sections}}
<div class="category-section">
  <div class="category-header">
    <h2 style="margin: 0; font-size: 24px;">{{.Name}}</h2>
    <p style="margin: 8px 0 0; opacity: 0.9;">{{len .Notes}} notes in this category</p>
  </div>
{{range .Notes}}
  <div class="note-card">
    <div class="note-title">{{.Title}}{{if .Pinned}} &#128204;{{end}}</div>
    <div class="note-meta">Created: {{.CreatedAt}} &bull; {{.Length}} characters</div>
    <div class="note-content">{{.Content}}</div>
  </div>
{{end}}
</div>
{{end}}
{{end}}
<div class="footer">
  <p>Generated from Learning Notes &bull; {{.GeneratedAt}}</p>
</div>
</body>
</html>
`))
