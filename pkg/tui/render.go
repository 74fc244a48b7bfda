package tui

import (
	"strings"

	"brainbook/pkg/markup"
)

// renderContent renders note text for the terminal using the segment
// model, so the interactive view and the HTML export stay in lockstep.
func renderContent(content string, s styles) string {
	var sb strings.Builder

	for _, seg := range markup.Parse(content) {
		switch seg.Kind {
		case markup.KindHeading:
			sb.WriteString(s.heading.Render(seg.Text))
			sb.WriteString("\n")
		case markup.KindQuote:
			sb.WriteString(s.quote.Render("│ " + seg.Text))
			sb.WriteString("\n")
		case markup.KindListItem:
			sb.WriteString("  • ")
			sb.WriteString(renderInline(seg.Text, s))
			sb.WriteString("\n")
		case markup.KindBreak:
			sb.WriteString("\n")
		case markup.KindCode:
			for _, line := range strings.Split(seg.Text, "\n") {
				sb.WriteString(s.code.Render("    " + line))
				sb.WriteString("\n")
			}
		default:
			sb.WriteString(renderInline(seg.Text, s))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func renderInline(text string, s styles) string {
	var sb strings.Builder
	for _, span := range markup.InlineSpans(text) {
		switch span.Style {
		case markup.SpanBold:
			sb.WriteString(s.bold.Render(span.Text))
		case markup.SpanItalic:
			sb.WriteString(s.italic.Render(span.Text))
		default:
			sb.WriteString(span.Text)
		}
	}
	return sb.String()
}
