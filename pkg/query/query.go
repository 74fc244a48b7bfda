// Package query derives the visible note list from the full note set.
package query

import (
	"sort"
	"strings"

	"brainbook/pkg/models"
)

// VisibleNotes filters and orders notes for display. A note passes when the
// search query is empty or matches its title or content case-insensitively,
// and when no categories are selected or its category is among them. Pinned
// notes come first, newest first within each group; notes with equal
// timestamps keep their insertion order.
//
// The function is pure: it never mutates its inputs and identical inputs
// always produce the same result.
func VisibleNotes(notes []models.Note, searchQuery string, selected map[int64]bool) []models.Note {
	q := strings.ToLower(searchQuery)

	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if q != "" &&
			!strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Content), q) {
			continue
		}
		if len(selected) > 0 && !selected[n.CategoryID] {
			continue
		}
		out = append(out, n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}
