package markup

import (
	"html/template"
	"strings"
)

// SegmentsHTML renders segments for the HTML targets (web view and the
// printable export document). All text is escaped; inline markers become
// strong/em tags; code blocks are emitted verbatim inside pre/code.
func SegmentsHTML(segments []Segment) template.HTML {
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case KindHeading:
			b.WriteString("<h2>")
			b.WriteString(inlineHTML(seg.Text))
			b.WriteString("</h2>")
		case KindQuote:
			b.WriteString("<blockquote>")
			b.WriteString(inlineHTML(seg.Text))
			b.WriteString("</blockquote>")
		case KindListItem:
			b.WriteString("<li>• ")
			b.WriteString(inlineHTML(seg.Text))
			b.WriteString("</li>")
		case KindParagraph:
			b.WriteString("<p>")
			b.WriteString(inlineHTML(seg.Text))
			b.WriteString("</p>")
		case KindBreak:
			b.WriteString("<br>")
		case KindCode:
			if seg.Language != "" {
				b.WriteString(`<pre><code class="language-` + template.HTMLEscapeString(seg.Language) + `">`)
			} else {
				b.WriteString("<pre><code>")
			}
			b.WriteString(template.HTMLEscapeString(seg.Text))
			b.WriteString("</code></pre>")
		}
	}
	return template.HTML(b.String())
}

// RenderHTML is the one-call form: parse content and render it for HTML.
func RenderHTML(content string) template.HTML {
	return SegmentsHTML(Parse(content))
}

func inlineHTML(text string) string {
	var b strings.Builder
	for _, span := range InlineSpans(text) {
		escaped := template.HTMLEscapeString(span.Text)
		switch span.Style {
		case SpanBold:
			b.WriteString("<strong>" + escaped + "</strong>")
		case SpanItalic:
			b.WriteString("<em>" + escaped + "</em>")
		default:
			b.WriteString(escaped)
		}
	}
	return b.String()
}
