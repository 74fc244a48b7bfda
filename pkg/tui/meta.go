package tui

import "strings"

// noteMeta is the front matter block round-tripped through the external
// editor so title and category survive an edit.
type noteMeta struct {
	Title    string
	Category string
}

// parseFrontMatter splits editor output into its meta block and body.
// Content without a leading "---" block is returned unchanged with empty
// meta.
func parseFrontMatter(content string) (noteMeta, string) {
	meta := noteMeta{}
	trim := strings.TrimLeft(content, "\n\r\t ")
	if !strings.HasPrefix(trim, "---") {
		return meta, content
	}

	rest := trim[3:]
	idx := strings.Index(rest, "---")
	if idx == -1 {
		// malformed - treat as no front matter
		return meta, content
	}

	metaBlock := rest[:idx]
	body := strings.TrimLeft(rest[idx+3:], "\n\r")

	for _, ln := range strings.Split(metaBlock, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		parts := strings.SplitN(ln, ":", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(strings.ToLower(parts[0]))
		v := strings.TrimSpace(parts[1])
		switch k {
		case "title":
			meta.Title = v
		case "category":
			meta.Category = v
		}
	}
	return meta, body
}

func buildContentWithMeta(meta noteMeta, body string) string {
	lines := []string{
		"---",
		"title: " + meta.Title,
		"category: " + meta.Category,
		"---",
		"",
		body,
	}
	return strings.Join(lines, "\n")
}
