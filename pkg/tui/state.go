package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"brainbook/pkg/export"
	"brainbook/pkg/logger"
	"brainbook/pkg/models"
	"brainbook/pkg/services"
)

type state int

const (
	stateList state = iota
	stateView
	stateSearch
	stateConfirm
	stateCategories
	stateNewCategory
)

type listItem struct {
	note         models.Note
	categoryName string
}

func (i listItem) FilterValue() string { return i.note.Title }

func (i listItem) Title() string {
	if i.note.Pinned {
		return "(PIN) " + i.note.Title
	}
	return i.note.Title
}

func (i listItem) Description() string {
	desc := fmt.Sprintf("Created: %s", i.note.CreatedAt.Format("02/01/2006"))
	if i.categoryName != "" {
		desc += " • " + i.categoryName
	}
	return desc
}

// Model is the terminal interface. All state mutations go through the
// service; the model only holds view state.
type Model struct {
	service  *services.NoteService
	exporter *export.Exporter
	log      *logger.Logger

	state  state
	styles styles

	width  int
	height int

	list        list.Model
	searchInput textinput.Model
	nameInput   textinput.Model

	current     int64
	viewContent string

	catCursor int

	confirmMsg    string
	confirmAction func()

	status    string
	lastError string
}

func (m *Model) categoryName(id int64) string {
	if id == 0 {
		return "Uncategorized"
	}
	if cat, ok := m.service.Category(id); ok {
		return cat.Name
	}
	return "Uncategorized"
}

func (m *Model) categoryByName(name string) (models.Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range m.service.Categories() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return models.Category{}, false
}

// refreshList rebuilds the list from the service's visible notes.
func (m *Model) refreshList() {
	visible := m.service.VisibleNotes()
	items := make([]list.Item, 0, len(visible))
	for _, n := range visible {
		items = append(items, listItem{note: n, categoryName: m.categoryName(n.CategoryID)})
	}
	m.list.SetItems(items)
}

func (m *Model) selectedNote() (models.Note, bool) {
	it := m.list.SelectedItem()
	if it == nil {
		return models.Note{}, false
	}
	return it.(listItem).note, true
}
