package handlers

import (
	"html/template"
	"net/http"

	"brainbook/pkg/export"
	"brainbook/pkg/logger"
	"brainbook/pkg/markup"
	"brainbook/pkg/models"
	"brainbook/pkg/query"
	"brainbook/pkg/services"
)

// WebHandlers contains handlers for the web interface
type WebHandlers struct {
	service  *services.NoteService
	exporter *export.Exporter
	log      *logger.Logger
}

// NewWebHandlers creates a new web handlers instance
func NewWebHandlers(service *services.NoteService, exporter *export.Exporter, log *logger.Logger) *WebHandlers {
	return &WebHandlers{
		service:  service,
		exporter: exporter,
		log:      log.WithComponent("web"),
	}
}

type noteCard struct {
	Note         models.Note
	CategoryName string
	Rendered     template.HTML
}

type indexData struct {
	DarkMode   bool
	Query      string
	Categories []models.Category
	Notes      []noteCard
	Stats      services.Stats
}

// IndexHandler serves the main page
func (h *WebHandlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	visible := query.VisibleNotes(h.service.Notes(), q, nil)

	cards := make([]noteCard, 0, len(visible))
	for _, n := range visible {
		name := "Uncategorized"
		if cat, ok := h.service.Category(n.CategoryID); ok {
			name = cat.Name
		}
		cards = append(cards, noteCard{
			Note:         n,
			CategoryName: name,
			Rendered:     markup.RenderHTML(n.Content),
		})
	}

	data := indexData{
		DarkMode:   h.service.DarkMode(),
		Query:      q,
		Categories: h.service.Categories(),
		Notes:      cards,
		Stats:      h.service.Stats(),
	}

	if err := indexTemplate.Execute(w, data); err != nil {
		h.log.Warnw("Template execution failed", "error", err)
	}
}

// ExportViewHandler serves the full knowledge base as a printable HTML
// document
func (h *WebHandlers) ExportViewHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot()
	html, err := h.exporter.BuildAll(snap.Categories, snap.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// ExportNoteViewHandler serves one note as a printable HTML document
func (h *WebHandlers) ExportNoteViewHandler(w http.ResponseWriter, r *http.Request) {
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

	html, err := h.exporter.BuildNote(note, categoryName)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Learning Notes</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', system-ui, sans-serif; margin: 0; padding: 24px; {{if .DarkMode}}background: #111827; color: #e5e7eb;{{else}}background: #f9fafb; color: #1f2937;{{end}} }
  .topbar { display: flex; align-items: baseline; gap: 16px; margin-bottom: 24px; }
  .topbar h1 { margin: 0; }
  .stats { font-size: 14px; color: #6b7280; }
  .search input { padding: 8px 12px; border-radius: 8px; border: 1px solid #d1d5db; min-width: 260px; }
  .categories { margin-bottom: 24px; }
  .category { display: inline-block; padding: 4px 12px; border-radius: 9999px; margin-right: 8px; font-size: 13px; {{if .DarkMode}}background: #1f2937;{{else}}background: #e5e7eb;{{end}} }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(320px, 1fr)); gap: 16px; }
  .card { border-radius: 16px; padding: 20px; {{if .DarkMode}}background: #1f2937; border: 1px solid #374151;{{else}}background: white; border: 1px solid #e5e7eb; box-shadow: 0 2px 8px rgba(0,0,0,0.06);{{end}} }
  .card h3 { margin: 0 0 8px; }
  .meta { font-size: 12px; color: #6b7280; margin-bottom: 12px; }
  .card pre { background: #1f2937; color: #10b981; padding: 12px; border-radius: 8px; overflow-x: auto; }
  blockquote { border-left: 4px solid #3b82f6; padding-left: 12px; margin: 8px 0; color: #6b7280; }
  a { color: #3b82f6; }
</style>
</head>
<body>
<div class="topbar">
  <h1>Learning Notes</h1>
  <span class="stats">{{.Stats.TotalNotes}} notes &middot; {{.Stats.TotalCategories}} categories &middot; {{.Stats.PinnedNotes}} pinned</span>
  <form class="search" method="get" action="/">
    <input type="text" name="q" value="{{.Query}}" placeholder="Search notes...">
  </form>
  <a href="/export">Export all</a>
</div>
<div class="categories">
{{range .Categories}}  <span class="category">{{.Name}}</span>
{{end}}</div>
<div class="grid">
{{range .Notes}}
  <div class="card">
    <h3>{{.Note.Title}}{{if .Note.Pinned}} &#128204;{{end}}</h3>
    <div class="meta">{{.CategoryName}} &middot; {{.Note.CreatedAt.Format "02/01/2006"}} &middot; <a href="/export/{{.Note.ID}}">export</a></div>
    <div>{{.Rendered}}</div>
  </div>
{{end}}
</div>
</body>
</html>
`))
