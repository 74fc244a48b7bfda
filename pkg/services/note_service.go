// Package services holds the application controller: it owns the in-memory
// state, applies user intents to it and persists the touched keys after
// every successful mutation. Persistence failures are logged, never
// surfaced as operation failures; the in-memory state stays authoritative.
package services

import (
	"strings"
	"sync"
	"time"

	apperrors "brainbook/pkg/errors"
	"brainbook/pkg/logger"
	"brainbook/pkg/models"
	"brainbook/pkg/performance"
	"brainbook/pkg/query"
	"brainbook/pkg/storage"
)

const draftDebounceKey = "draft"

// NotePatch is a partial note update. Nil fields are left unchanged.
type NotePatch struct {
	Title      *string
	CategoryID *int64
	Content    *string
}

// Stats summarizes the current state for display surfaces.
type Stats struct {
	TotalNotes      int
	TotalCategories int
	PinnedNotes     int
}

// NoteService is the single writer of application state. All mutations go
// through it; presentation layers only read snapshots.
type NoteService struct {
	mutex     sync.RWMutex
	state     *models.State
	store     *storage.Store
	log       *logger.Logger
	debouncer *performance.Debouncer
	nextID    int64

	// Session-only view state, intentionally not persisted.
	searchQuery        string
	selectedCategories map[int64]bool

	now func() time.Time
}

// NewNoteService loads state from the store and returns a ready controller.
func NewNoteService(store *storage.Store, log *logger.Logger) *NoteService {
	s := &NoteService{
		state:              store.Load(),
		store:              store,
		log:                log.WithComponent("service"),
		debouncer:          performance.NewDebouncer(500 * time.Millisecond),
		selectedCategories: make(map[int64]bool),
		now:                time.Now,
	}
	s.nextID = nextIDAfter(s.state)
	return s
}

// nextIDAfter returns one past the highest id present in the state, so
// new ids never collide with loaded ones.
func nextIDAfter(state *models.State) int64 {
	var max int64
	for _, c := range state.Categories {
		if c.ID > max {
			max = c.ID
		}
	}
	for _, n := range state.Notes {
		if n.ID > max {
			max = n.ID
		}
	}
	return max + 1
}

func (s *NoteService) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// persist writes the given keys, logging failures without propagating them.
func (s *NoteService) persist(keys ...storage.Key) {
	for _, key := range keys {
		var err error
		switch key {
		case storage.KeyDarkMode:
			err = s.store.SaveDarkMode(s.state.DarkMode)
		case storage.KeyCategories:
			err = s.store.SaveCategories(s.state.Categories)
		case storage.KeyNotes:
			err = s.store.SaveNotes(s.state.Notes)
		case storage.KeyDraft:
			err = s.store.SaveDraft(s.state.Draft)
		}
		if err != nil {
			s.log.Warnw("Persist failed, in-memory state still current", "key", key, "error", err)
		}
	}
}

// Snapshot returns a copy of the persisted state for read-only use.
func (s *NoteService) Snapshot() models.State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snap := models.State{
		DarkMode: s.state.DarkMode,
		Draft:    s.state.Draft,
	}
	snap.Categories = append([]models.Category(nil), s.state.Categories...)
	snap.Notes = append([]models.Note(nil), s.state.Notes...)
	return snap
}

// Categories returns a copy of the category list.
func (s *NoteService) Categories() []models.Category {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]models.Category(nil), s.state.Categories...)
}

// Notes returns a copy of the note list in insertion order.
func (s *NoteService) Notes() []models.Note {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]models.Note(nil), s.state.Notes...)
}

// Note returns a note by id.
func (s *NoteService) Note(id int64) (models.Note, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, n := range s.state.Notes {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Note{}, apperrors.ErrNoteNotFound
}

// Category returns a category by id.
func (s *NoteService) Category(id int64) (models.Category, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state.CategoryByID(id)
}

// DarkMode returns the current dark mode flag.
func (s *NoteService) DarkMode() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state.DarkMode
}

// SetDarkMode sets the dark mode flag.
func (s *NoteService) SetDarkMode(dark bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state.DarkMode == dark {
		return
	}
	s.state.DarkMode = dark
	s.persist(storage.KeyDarkMode)
}

// ToggleDarkMode flips the dark mode flag and returns the new value.
func (s *NoteService) ToggleDarkMode() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.state.DarkMode = !s.state.DarkMode
	s.persist(storage.KeyDarkMode)
	return s.state.DarkMode
}

// CreateCategory appends a new category. The name is required; an unknown
// color token falls back to the default palette entry.
func (s *NoteService) CreateCategory(name, color string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, apperrors.ErrCategoryNameRequired
	}
	if !models.IsPaletteColor(color) {
		color = models.DefaultColor
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	category := models.Category{ID: s.allocID(), Name: name, Color: color}
	s.state.Categories = append(s.state.Categories, category)
	s.persist(storage.KeyCategories)

	s.log.Infow("Category created", "id", category.ID, "name", category.Name)
	return category, nil
}

// DeleteCategory removes a category. Notes that referenced it become
// uncategorized, and the id is dropped from the active category filter.
// Deleting an unknown id is a no-op.
func (s *NoteService) DeleteCategory(id int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	found := false
	kept := s.state.Categories[:0]
	for _, c := range s.state.Categories {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return
	}
	s.state.Categories = kept

	notesTouched := false
	for i := range s.state.Notes {
		if s.state.Notes[i].CategoryID == id {
			s.state.Notes[i].CategoryID = 0
			notesTouched = true
		}
	}

	delete(s.selectedCategories, id)

	if notesTouched {
		s.persist(storage.KeyCategories, storage.KeyNotes)
	} else {
		s.persist(storage.KeyCategories)
	}

	s.log.Infow("Category deleted", "id", id, "orphanedNotes", notesTouched)
}

// CreateNote appends a new note. Title and an existing category are
// required. The draft is cleared once the note is saved.
func (s *NoteService) CreateNote(title string, categoryID int64, content string) (models.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Note{}, apperrors.ErrNoteTitleRequired
	}
	if categoryID == 0 {
		return models.Note{}, apperrors.ErrNoteCategoryRequired
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.state.CategoryByID(categoryID); !ok {
		return models.Note{}, apperrors.ErrCategoryNotFound
	}

	note := models.Note{
		ID:         s.allocID(),
		Title:      title,
		CategoryID: categoryID,
		Content:    content,
		Pinned:     false,
		CreatedAt:  s.now().UTC(),
	}
	s.state.Notes = append(s.state.Notes, note)
	s.clearDraftLocked()
	s.persist(storage.KeyNotes)

	s.log.Infow("Note created", "id", note.ID, "title", note.Title)
	return note, nil
}

// UpdateNote applies a partial update, preserving id, pin state and
// creation time. The draft is cleared once the note is saved.
func (s *NoteService) UpdateNote(id int64, patch NotePatch) (models.Note, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return models.Note{}, apperrors.ErrNoteTitleRequired
		}
		patch.Title = &trimmed
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Only the category-deletion cascade may uncategorize a note, so a
	// patched category id must name an existing category. Zero included.
	if patch.CategoryID != nil {
		if _, ok := s.state.CategoryByID(*patch.CategoryID); !ok {
			return models.Note{}, apperrors.ErrCategoryNotFound
		}
	}

	for i := range s.state.Notes {
		if s.state.Notes[i].ID != id {
			continue
		}
		if patch.Title != nil {
			s.state.Notes[i].Title = *patch.Title
		}
		if patch.CategoryID != nil {
			s.state.Notes[i].CategoryID = *patch.CategoryID
		}
		if patch.Content != nil {
			s.state.Notes[i].Content = *patch.Content
		}
		s.clearDraftLocked()
		s.persist(storage.KeyNotes)

		s.log.Infow("Note updated", "id", id)
		return s.state.Notes[i], nil
	}

	return models.Note{}, apperrors.ErrNoteNotFound
}

// TogglePin flips a note's pin flag and returns the updated note.
func (s *NoteService) TogglePin(id int64) (models.Note, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.state.Notes {
		if s.state.Notes[i].ID != id {
			continue
		}
		s.state.Notes[i].Pinned = !s.state.Notes[i].Pinned
		s.persist(storage.KeyNotes)
		return s.state.Notes[i], nil
	}
	return models.Note{}, apperrors.ErrNoteNotFound
}

// DeleteNote removes a note. Deleting an unknown id is a no-op.
func (s *NoteService) DeleteNote(id int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	kept := s.state.Notes[:0]
	found := false
	for _, n := range s.state.Notes {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return
	}
	s.state.Notes = kept
	s.persist(storage.KeyNotes)

	s.log.Infow("Note deleted", "id", id)
}

// Draft returns the current draft text.
func (s *NoteService) Draft() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state.Draft
}

// SetDraft updates the draft text. Writes are debounced so per-keystroke
// updates do not hammer the disk.
func (s *NoteService) SetDraft(draft string) {
	s.mutex.Lock()
	s.state.Draft = draft
	s.mutex.Unlock()

	s.debouncer.Debounce(draftDebounceKey, func() {
		s.mutex.RLock()
		defer s.mutex.RUnlock()
		s.persist(storage.KeyDraft)
	})
}

func (s *NoteService) clearDraftLocked() {
	s.debouncer.Cancel(draftDebounceKey)
	if s.state.Draft == "" {
		return
	}
	s.state.Draft = ""
	s.persist(storage.KeyDraft)
}

// SearchQuery returns the session search string.
func (s *NoteService) SearchQuery() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.searchQuery
}

// SetSearchQuery updates the session search string. Not persisted.
func (s *NoteService) SetSearchQuery(q string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.searchQuery = q
}

// SelectedCategories returns a copy of the active category filter.
func (s *NoteService) SelectedCategories() map[int64]bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	selected := make(map[int64]bool, len(s.selectedCategories))
	for id := range s.selectedCategories {
		selected[id] = true
	}
	return selected
}

// ToggleCategoryFilter adds or removes a category id from the session
// filter and reports whether it is now selected. Not persisted.
func (s *NoteService) ToggleCategoryFilter(id int64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.selectedCategories[id] {
		delete(s.selectedCategories, id)
		return false
	}
	s.selectedCategories[id] = true
	return true
}

// ClearFilters resets search and category selection.
func (s *NoteService) ClearFilters() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.searchQuery = ""
	s.selectedCategories = make(map[int64]bool)
}

// VisibleNotes returns the notes matching the session search and filter,
// pinned first, newest first within each group.
func (s *NoteService) VisibleNotes() []models.Note {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return query.VisibleNotes(s.state.Notes, s.searchQuery, s.selectedCategories)
}

// Stats returns counts for display surfaces.
func (s *NoteService) Stats() Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats := Stats{
		TotalNotes:      len(s.state.Notes),
		TotalCategories: len(s.state.Categories),
	}
	for _, n := range s.state.Notes {
		if n.Pinned {
			stats.PinnedNotes++
		}
	}
	return stats
}

// WatchStore starts reacting to external edits of the state files,
// reloading the affected key into memory.
func (s *NoteService) WatchStore() error {
	return s.store.Watch(s.handleExternalChange)
}

func (s *NoteService) handleExternalChange(key storage.Key) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch key {
	case storage.KeyDarkMode:
		s.state.DarkMode = s.store.LoadDarkMode()
	case storage.KeyCategories:
		s.state.Categories = s.store.LoadCategories()
	case storage.KeyNotes:
		s.state.Notes = s.store.LoadNotes()
	case storage.KeyDraft:
		s.state.Draft = s.store.LoadDraft()
	}
	s.nextID = nextIDAfter(s.state)

	s.log.Infow("Reloaded state after external change", "key", key)
}

// Close flushes any pending draft write and releases the store watcher.
func (s *NoteService) Close() error {
	s.debouncer.Flush(draftDebounceKey, func() {
		s.mutex.RLock()
		defer s.mutex.RUnlock()
		s.persist(storage.KeyDraft)
	})
	s.debouncer.Clear()
	return s.store.Close()
}
