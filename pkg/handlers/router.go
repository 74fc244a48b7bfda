package handlers

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"brainbook/pkg/export"
	"brainbook/pkg/logger"
	"brainbook/pkg/middleware"
	"brainbook/pkg/services"
)

// NewRouter wires the web and API handlers onto a chi router.
func NewRouter(service *services.NoteService, exporter *export.Exporter, log *logger.Logger) chi.Router {
	webHandlers := NewWebHandlers(service, exporter, log)
	apiHandlers := NewAPIHandlers(service, exporter)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", webHandlers.IndexHandler)
	r.Get("/export", webHandlers.ExportViewHandler)
	r.Get("/export/{id}", webHandlers.ExportNoteViewHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/notes", apiHandlers.GetNotesHandler)
		r.Post("/notes", apiHandlers.CreateNoteHandler)
		r.Get("/notes/{id}", apiHandlers.GetNoteHandler)
		r.Put("/notes/{id}", apiHandlers.UpdateNoteHandler)
		r.Delete("/notes/{id}", apiHandlers.DeleteNoteHandler)
		r.Post("/notes/{id}/pin", apiHandlers.TogglePinHandler)
		r.Post("/notes/{id}/export", apiHandlers.ExportNoteHandler)

		r.Get("/categories", apiHandlers.GetCategoriesHandler)
		r.Post("/categories", apiHandlers.CreateCategoryHandler)
		r.Delete("/categories/{id}", apiHandlers.DeleteCategoryHandler)

		r.Get("/darkmode", apiHandlers.GetDarkModeHandler)
		r.Post("/darkmode/toggle", apiHandlers.ToggleDarkModeHandler)

		r.Get("/draft", apiHandlers.GetDraftHandler)
		r.Put("/draft", apiHandlers.PutDraftHandler)

		r.Get("/stats", apiHandlers.StatsHandler)
		r.Post("/export", apiHandlers.ExportAllHandler)
	})

	return r
}
