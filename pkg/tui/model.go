// Package tui is the interactive terminal interface. It reads state
// through the note service and edits notes in the user's $EDITOR with a
// small front matter block for title and category.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "brainbook/pkg/errors"
	"brainbook/pkg/export"
	"brainbook/pkg/logger"
	"brainbook/pkg/models"
	"brainbook/pkg/services"
)

// InitialModel builds the terminal interface around an already loaded
// service.
func InitialModel(service *services.NoteService, exporter *export.Exporter, log *logger.Logger) Model {
	si := textinput.New()
	si.Placeholder = "search notes..."
	si.CharLimit = 50
	si.Width = 40

	ni := textinput.New()
	ni.Placeholder = "category name"
	ni.CharLimit = 40
	ni.Width = 30

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Learning Notes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	m := Model{
		service:     service,
		exporter:    exporter,
		log:         log.WithComponent("tui"),
		state:       stateList,
		styles:      stylesFor(service.DarkMode()),
		list:        l,
		searchInput: si,
		nameInput:   ni,
	}
	m.refreshList()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width - 4)
		m.list.SetHeight(msg.Height - 8)
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateView:
		return m.updateView(msg)
	case stateSearch:
		return m.updateSearch(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateCategories:
		return m.updateCategories(msg)
	case stateNewCategory:
		return m.updateNewCategory(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "/":
		m.searchInput.SetValue(m.service.SearchQuery())
		m.searchInput.Focus()
		m.state = stateSearch
	case "f":
		m.service.ClearFilters()
		m.refreshList()
		m.setStatus("Cleared search and filters")
	case "c":
		m.catCursor = 0
		m.state = stateCategories
	case "m":
		dark := m.service.ToggleDarkMode()
		m.styles = stylesFor(dark)
		if dark {
			m.setStatus("Dark mode on")
		} else {
			m.setStatus("Dark mode off")
		}
	case "x":
		snap := m.service.Snapshot()
		path, err := m.exporter.WriteAll(snap.Categories, snap.Notes)
		if err != nil {
			m.log.Warnw("Export failed", "error", err)
			m.setError("Export failed: " + err.Error())
			break
		}
		m.setStatus("Exported to " + path)
	case "a":
		return m.addNote()
	case "e":
		if note, ok := m.selectedNote(); ok {
			return m.editNote(note)
		}
	case "p":
		if note, ok := m.selectedNote(); ok {
			updated, err := m.service.TogglePin(note.ID)
			if err != nil {
				m.setError(err.Error())
				break
			}
			m.refreshList()
			if updated.Pinned {
				m.setStatus("Pinned: " + updated.Title)
			} else {
				m.setStatus("Unpinned: " + updated.Title)
			}
		}
	case "d":
		if note, ok := m.selectedNote(); ok {
			m.confirmMsg = fmt.Sprintf("Delete note '%s'? (y/N)", note.Title)
			id, title := note.ID, note.Title
			m.confirmAction = func() {
				m.service.DeleteNote(id)
				m.setStatus("Deleted: " + title)
			}
			m.state = stateConfirm
		}
	case "enter":
		if note, ok := m.selectedNote(); ok {
			m.current = note.ID
			m.viewContent = renderContent(note.Content, m.styles)
			m.state = stateView
		}
	}
	return m, cmd
}

func (m Model) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "b", "esc":
		m.state = stateList
	case "e":
		note, err := m.service.Note(m.current)
		if err != nil {
			m.setError(err.Error())
			m.state = stateList
			return m, tea.ClearScreen
		}
		return m.editNote(note)
	case "p":
		updated, err := m.service.TogglePin(m.current)
		if err != nil {
			m.setError(err.Error())
			break
		}
		m.refreshList()
		if updated.Pinned {
			m.setStatus("Pinned: " + updated.Title)
		} else {
			m.setStatus("Unpinned: " + updated.Title)
		}
	case "x":
		note, err := m.service.Note(m.current)
		if err != nil {
			m.setError(err.Error())
			break
		}
		path, err := m.exporter.WriteNote(note, m.categoryName(note.CategoryID))
		if err != nil {
			m.log.Warnw("Export failed", "error", err, "id", note.ID)
			m.setError("Export failed: " + err.Error())
			break
		}
		m.setStatus("Exported to " + path)
	case "d":
		note, err := m.service.Note(m.current)
		if err != nil {
			m.setError(err.Error())
			break
		}
		m.confirmMsg = fmt.Sprintf("Delete note '%s'? (y/N)", note.Title)
		id, title := note.ID, note.Title
		m.confirmAction = func() {
			m.service.DeleteNote(id)
			m.setStatus("Deleted: " + title)
		}
		m.state = stateConfirm
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.service.SetSearchQuery(m.searchInput.Value())
			m.refreshList()
			m.state = stateList
			m.setStatus(fmt.Sprintf("Search: '%s' (%d results)", m.searchInput.Value(), len(m.list.Items())))
		case "esc":
			m.searchInput.SetValue("")
			m.state = stateList
		}
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			if m.confirmAction != nil {
				m.confirmAction()
				m.confirmAction = nil
			}
			m.refreshList()
			m.state = stateList
		case "n", "N", "esc":
			m.state = stateList
		}
	}
	return m, nil
}

func (m Model) updateCategories(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	categories := m.service.Categories()

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "c", "q":
		m.refreshList()
		m.state = stateList
	case "up", "k":
		if m.catCursor > 0 {
			m.catCursor--
		}
	case "down", "j":
		if m.catCursor < len(categories)-1 {
			m.catCursor++
		}
	case " ", "enter":
		if m.catCursor < len(categories) {
			cat := categories[m.catCursor]
			if m.service.ToggleCategoryFilter(cat.ID) {
				m.setStatus("Filtering on: " + cat.Name)
			} else {
				m.setStatus("Removed filter: " + cat.Name)
			}
		}
	case "n":
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		m.state = stateNewCategory
	case "d":
		if m.catCursor < len(categories) {
			cat := categories[m.catCursor]
			m.confirmMsg = fmt.Sprintf("Delete category '%s'? Its notes become uncategorized. (y/N)", cat.Name)
			id, name := cat.ID, cat.Name
			m.confirmAction = func() {
				m.service.DeleteCategory(id)
				m.setStatus("Deleted category: " + name)
			}
			if m.catCursor > 0 {
				m.catCursor--
			}
			m.state = stateConfirm
		}
	}
	return m, nil
}

func (m Model) updateNewCategory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			// Cycle the palette so adjacent categories differ.
			color := models.GradientColors[len(m.service.Categories())%len(models.GradientColors)]
			cat, err := m.service.CreateCategory(m.nameInput.Value(), color)
			if err != nil {
				m.setError(err.Error())
				m.state = stateCategories
				return m, cmd
			}
			m.setStatus("Created category: " + cat.Name)
			m.state = stateCategories
		case "esc":
			m.state = stateCategories
		}
	}
	return m, cmd
}

// addNote opens the editor on a front matter template prefilled with the
// saved draft, then creates the note. A failed validation keeps the body
// as the draft so the work is not lost.
func (m Model) addNote() (tea.Model, tea.Cmd) {
	category := ""
	if cats := m.service.Categories(); len(cats) > 0 {
		category = cats[0].Name
	}

	body := m.service.Draft()
	if body == "" {
		body = "Start writing here...\n"
	}

	content, err := openEditorWithContent(buildContentWithMeta(noteMeta{Category: category}, body))
	if err != nil {
		m.log.Warnw("Editor failed", "error", err)
		m.setError("Editor failed: " + err.Error())
		return m, tea.ClearScreen
	}

	meta, noteBody := parseFrontMatter(content)

	var categoryID int64
	if cat, ok := m.categoryByName(meta.Category); ok {
		categoryID = cat.ID
	}

	note, err := m.service.CreateNote(meta.Title, categoryID, noteBody)
	if err != nil {
		if apperrors.IsValidation(err) {
			m.service.SetDraft(noteBody)
		}
		m.setError(err.Error())
		return m, tea.ClearScreen
	}

	m.refreshList()
	m.setStatus("Added note: " + note.Title)
	return m, tea.ClearScreen
}

func (m Model) editNote(note models.Note) (tea.Model, tea.Cmd) {
	meta := noteMeta{Title: note.Title, Category: m.categoryName(note.CategoryID)}

	content, err := openEditorWithContent(buildContentWithMeta(meta, note.Content))
	if err != nil {
		m.log.Warnw("Editor failed", "error", err, "id", note.ID)
		m.setError("Editor failed: " + err.Error())
		return m, tea.ClearScreen
	}

	newMeta, body := parseFrontMatter(content)

	patch := services.NotePatch{Title: &newMeta.Title, Content: &body}
	if cat, ok := m.categoryByName(newMeta.Category); ok {
		patch.CategoryID = &cat.ID
	} else if !strings.EqualFold(newMeta.Category, m.categoryName(note.CategoryID)) {
		m.setError("Unknown category: " + newMeta.Category)
		return m, tea.ClearScreen
	}

	updated, err := m.service.UpdateNote(note.ID, patch)
	if err != nil {
		m.setError(err.Error())
		return m, tea.ClearScreen
	}

	m.refreshList()
	if m.state == stateView {
		m.viewContent = renderContent(updated.Content, m.styles)
	}
	m.setStatus("Edited: " + updated.Title)
	return m, tea.ClearScreen
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.lastError = ""
}

func (m *Model) setError(s string) {
	m.status = s
	m.lastError = s
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(m.styles.title.Render("brainbook — learning notes"))
	s.WriteString("\n\n")

	switch m.state {
	case stateList:
		s.WriteString(m.list.View())
		s.WriteString("\n")

		helpParts := []string{"a:add", "e:edit", "enter:view", "d:delete", "p:pin", "/:search", "c:categories", "x:export", "m:dark mode", "q:quit"}
		if m.service.SearchQuery() != "" || len(m.service.SelectedCategories()) > 0 {
			helpParts = append(helpParts, "f:clear filters")
		}
		s.WriteString(m.styles.help.Render(strings.Join(helpParts, "  ")))

		var statusParts []string
		if q := m.service.SearchQuery(); q != "" {
			statusParts = append(statusParts, fmt.Sprintf("search: '%s'", q))
		}
		if selected := m.service.SelectedCategories(); len(selected) > 0 {
			var names []string
			for _, c := range m.service.Categories() {
				if selected[c.ID] {
					names = append(names, c.Name)
				}
			}
			statusParts = append(statusParts, "categories: "+strings.Join(names, ", "))
		}
		if len(statusParts) > 0 {
			s.WriteString("\n")
			s.WriteString(m.styles.help.Render(strings.Join(statusParts, " | ")))
		}

	case stateView:
		if note, err := m.service.Note(m.current); err == nil {
			title := note.Title
			if note.Pinned {
				title += " (PIN)"
			}
			s.WriteString(m.styles.title.Render(title))
			s.WriteString("\n")
			s.WriteString(m.styles.help.Render(m.categoryName(note.CategoryID) + " | " + note.CreatedAt.Format("02/01/2006")))
			s.WriteString("\n\n")
		}
		s.WriteString(m.viewContent)
		s.WriteString("\n")
		s.WriteString(m.styles.help.Render("e:edit  d:delete  p:pin  x:export  b:back  q:quit"))

	case stateSearch:
		s.WriteString("Search notes:\n\n")
		s.WriteString(m.searchInput.View())
		s.WriteString("\n\n")
		s.WriteString(m.styles.help.Render("enter: search  esc: cancel"))

	case stateConfirm:
		s.WriteString(m.styles.warning.Render(m.confirmMsg))
		s.WriteString("\n\n")
		s.WriteString(m.styles.help.Render("y: confirm  n/esc: cancel"))

	case stateCategories:
		s.WriteString("Categories:\n\n")
		selected := m.service.SelectedCategories()
		for i, c := range m.service.Categories() {
			marker := "[ ]"
			if selected[c.ID] {
				marker = "[x]"
			}
			line := fmt.Sprintf("%s %s", marker, c.Name)
			if i == m.catCursor {
				line = m.styles.selected.Render("> " + line)
			} else {
				line = "  " + line
			}
			s.WriteString(line)
			s.WriteString("\n")
		}
		s.WriteString("\n")
		s.WriteString(m.styles.help.Render("space/enter: toggle filter  n: new  d: delete  esc: back"))

	case stateNewCategory:
		s.WriteString("New category:\n\n")
		s.WriteString(m.nameInput.View())
		s.WriteString("\n\n")
		s.WriteString(m.styles.help.Render("enter: create  esc: cancel"))
	}

	if m.status != "" {
		s.WriteString("\n")
		if m.lastError != "" {
			s.WriteString(m.styles.err.Render(m.status))
		} else {
			s.WriteString(m.styles.success.Render(m.status))
		}
	}

	return s.String()
}
