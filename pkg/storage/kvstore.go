// Package storage persists application state as one file per key under a
// data directory. Each key loads and saves independently: a corrupt or
// missing file only resets its own key to the default value.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	apperrors "brainbook/pkg/errors"
	"brainbook/pkg/logger"
	"brainbook/pkg/models"
)

// Key identifies one persisted field.
type Key string

const (
	KeyDarkMode   Key = "darkMode"
	KeyCategories Key = "learningCategories"
	KeyNotes      Key = "learningNotes"
	KeyDraft      Key = "noteDraft"
)

// fileName returns the on-disk file for a key. The draft is raw text, the
// rest are JSON documents.
func (k Key) fileName() string {
	if k == KeyDraft {
		return string(k) + ".txt"
	}
	return string(k) + ".json"
}

// Store reads and writes the per-key state files.
type Store struct {
	dataDir      string
	log          *logger.Logger
	mutex        sync.Mutex
	watcher      *fsnotify.Watcher
	fileModTimes map[string]time.Time
}

// NewStore creates a store rooted at dataDir, creating the directory if
// needed.
func NewStore(dataDir string, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, apperrors.WrapPersistence(err, "DATA_DIR", "failed to create data directory")
	}

	return &Store{
		dataDir:      dataDir,
		log:          log.WithComponent("storage"),
		fileModTimes: make(map[string]time.Time),
	}, nil
}

// DataDir returns the data directory path.
func (s *Store) DataDir() string {
	return s.dataDir
}

// storedNote is the serialized form of a note. CreatedAt is kept as a
// string so hand-edited files with coarser timestamps still load.
type storedNote struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	CategoryID int64  `json:"categoryId"`
	Content    string `json:"content"`
	Pinned     bool   `json:"pinned"`
	CreatedAt  string `json:"createdAt"`
}

var createdAtLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func parseCreatedAt(value string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func encodeNote(n models.Note) storedNote {
	return storedNote{
		ID:         n.ID,
		Title:      n.Title,
		CategoryID: n.CategoryID,
		Content:    n.Content,
		Pinned:     n.Pinned,
		CreatedAt:  n.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeNote(sn storedNote) models.Note {
	return models.Note{
		ID:         sn.ID,
		Title:      sn.Title,
		CategoryID: sn.CategoryID,
		Content:    sn.Content,
		Pinned:     sn.Pinned,
		CreatedAt:  parseCreatedAt(sn.CreatedAt),
	}
}

// Load reads all keys from disk. Each key falls back to its default
// independently when its file is missing or unreadable, so one corrupt
// file cannot take the rest of the state down with it.
func (s *Store) Load() *models.State {
	return &models.State{
		DarkMode:   s.LoadDarkMode(),
		Categories: s.LoadCategories(),
		Notes:      s.LoadNotes(),
		Draft:      s.LoadDraft(),
	}
}

// LoadDarkMode reads the dark mode flag, defaulting to false.
func (s *Store) LoadDarkMode() bool {
	data, err := s.readKey(KeyDarkMode)
	if err != nil {
		return false
	}

	var dark bool
	if err := json.Unmarshal(data, &dark); err != nil {
		s.log.Warnw("Discarding unreadable state file", "key", KeyDarkMode, "error", err)
		return false
	}
	return dark
}

// LoadCategories reads the category list, seeding defaults on a fresh or
// unreadable file.
func (s *Store) LoadCategories() []models.Category {
	data, err := s.readKey(KeyCategories)
	if err != nil {
		return models.SeedCategories()
	}

	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		s.log.Warnw("Discarding unreadable state file", "key", KeyCategories, "error", err)
		return models.SeedCategories()
	}
	return categories
}

// LoadNotes reads the note list, seeding the example notes on a fresh or
// unreadable file.
func (s *Store) LoadNotes() []models.Note {
	data, err := s.readKey(KeyNotes)
	if err != nil {
		return models.SeedNotes()
	}

	var stored []storedNote
	if err := json.Unmarshal(data, &stored); err != nil {
		s.log.Warnw("Discarding unreadable state file", "key", KeyNotes, "error", err)
		return models.SeedNotes()
	}

	notes := make([]models.Note, 0, len(stored))
	for _, sn := range stored {
		notes = append(notes, decodeNote(sn))
	}
	return notes
}

// LoadDraft reads the in-progress note draft, defaulting to empty.
func (s *Store) LoadDraft() string {
	data, err := s.readKey(KeyDraft)
	if err != nil {
		return ""
	}
	return string(data)
}

// SaveDarkMode persists the dark mode flag.
func (s *Store) SaveDarkMode(dark bool) error {
	data, err := json.Marshal(dark)
	if err != nil {
		return apperrors.WrapPersistence(err, "ENCODE", "failed to encode dark mode")
	}
	return s.writeKey(KeyDarkMode, data)
}

// SaveCategories persists the category list.
func (s *Store) SaveCategories(categories []models.Category) error {
	if categories == nil {
		categories = []models.Category{}
	}
	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return apperrors.WrapPersistence(err, "ENCODE", "failed to encode categories")
	}
	return s.writeKey(KeyCategories, data)
}

// SaveNotes persists the note list.
func (s *Store) SaveNotes(notes []models.Note) error {
	stored := make([]storedNote, 0, len(notes))
	for _, n := range notes {
		stored = append(stored, encodeNote(n))
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return apperrors.WrapPersistence(err, "ENCODE", "failed to encode notes")
	}
	return s.writeKey(KeyNotes, data)
}

// SaveDraft persists the in-progress note draft as raw text.
func (s *Store) SaveDraft(draft string) error {
	return s.writeKey(KeyDraft, []byte(draft))
}

func (s *Store) readKey(key Key) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dataDir, key.fileName()))
}

func (s *Store) writeKey(key Key, data []byte) error {
	path := filepath.Join(s.dataDir, key.fileName())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.WrapPersistence(err, "WRITE", "failed to write "+key.fileName())
	}

	// Record our own write so the watcher does not report it back.
	if fileInfo, err := os.Stat(path); err == nil {
		s.mutex.Lock()
		s.fileModTimes[path] = fileInfo.ModTime()
		s.mutex.Unlock()
	}

	return nil
}

// keyForPath maps a watched file path back to its key.
func keyForPath(path string) (Key, bool) {
	base := filepath.Base(path)
	for _, key := range []Key{KeyDarkMode, KeyCategories, KeyNotes, KeyDraft} {
		if base == key.fileName() {
			return key, true
		}
	}
	return "", false
}

// Watch starts a file system watcher on the data directory and invokes
// onChange with the affected key whenever a state file is modified from
// outside the process. Writes made through this store are suppressed.
func (s *Store) Watch(onChange func(Key)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.WrapPersistence(err, "WATCH", "failed to create file watcher")
	}

	if err := watcher.Add(s.dataDir); err != nil {
		watcher.Close()
		return apperrors.WrapPersistence(err, "WATCH", "failed to watch data directory")
	}

	s.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				key, known := keyForPath(event.Name)
				if !known {
					continue
				}

				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				if s.isOwnWrite(event.Name) {
					continue
				}

				s.log.Infow("State file changed externally", "key", key)
				onChange(key)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warnw("Watcher error", "error", err)
			}
		}
	}()

	return nil
}

// isOwnWrite reports whether the file's modification time matches a write
// this store just made.
func (s *Store) isOwnWrite(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	lastModTime, exists := s.fileModTimes[path]
	if exists && !fileInfo.ModTime().After(lastModTime) {
		return true
	}
	s.fileModTimes[path] = fileInfo.ModTime()
	return false
}

// Close stops the file watcher.
func (s *Store) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
