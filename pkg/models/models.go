package models

import "time"

// Category is a named, colored tag grouping notes. The color is an opaque
// theme token from GradientColors; only the presentation layer interprets it.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Note is a single learning note. CategoryID 0 means "uncategorized",
// which only happens after the note's category has been deleted; new notes
// always carry a real category.
type Note struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	CategoryID int64     `json:"categoryId"`
	Content    string    `json:"content"`
	Pinned     bool      `json:"pinned"`
	CreatedAt  time.Time `json:"createdAt"`
}

// State holds the four persisted fields of the application. Search and
// category-filter state live on the controller and die with the session.
type State struct {
	DarkMode   bool
	Categories []Category
	Notes      []Note
	Draft      string
}

// CategoryByID returns the category with the given id, if present.
func (s *State) CategoryByID(id int64) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// GradientColors is the fixed palette of category theme tokens.
var GradientColors = []string{
	"from-blue-400 to-cyan-500",
	"from-purple-400 to-pink-500",
	"from-green-400 to-emerald-500",
	"from-yellow-400 to-orange-500",
	"from-red-400 to-rose-500",
	"from-indigo-400 to-blue-500",
}

// DefaultColor is the palette token used when none is chosen.
const DefaultColor = "from-blue-400 to-cyan-500"

// IsPaletteColor reports whether the token is part of the fixed palette.
func IsPaletteColor(color string) bool {
	for _, c := range GradientColors {
		if c == color {
			return true
		}
	}
	return false
}

// SeedCategories returns the categories a fresh installation starts with.
func SeedCategories() []Category {
	return []Category{
		{ID: 1, Name: "JavaScript", Color: "from-yellow-400 to-orange-500"},
		{ID: 2, Name: "PHP", Color: "from-blue-400 to-cyan-500"},
		{ID: 3, Name: "Python", Color: "from-green-400 to-emerald-500"},
	}
}

// SeedNotes returns the example notes a fresh installation starts with.
func SeedNotes() []Note {
	return []Note{
		{
			ID:         1,
			Title:      "Arrow Functions",
			CategoryID: 1,
			Content: "Arrow functions are a shorter way to write functions in JavaScript.\n\n" +
				"```javascript\nconst add = (a, b) => a + b;\nconsole.log(add(2, 3)); // Output: 5\n```\n\n" +
				"They have **lexical this binding** and *cannot* be used as constructors.",
			Pinned:    false,
			CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         2,
			Title:      "useState Hook",
			CategoryID: 2,
			Content: "useState is a Hook that allows you to add state to functional components.\n\n" +
				"```javascript\nconst [count, setCount] = useState(0);\n\nreturn (\n  <button onClick={() => setCount(count + 1)}>\n    Count: {count}\n  </button>\n);\n```\n\n" +
				"Always use the **setter function** to update state for *proper re-rendering*.",
			Pinned:    true,
			CreatedAt: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
	}
}

// DefaultState returns the state a fresh installation starts with.
func DefaultState() *State {
	return &State{
		DarkMode:   false,
		Categories: SeedCategories(),
		Notes:      SeedNotes(),
		Draft:      "",
	}
}
