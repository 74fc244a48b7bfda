// Package markup converts note text containing a small markup subset into a
// flat sequence of typed content segments. The subset covers fenced code
// blocks, headings (## ), blockquotes (> ), list items (- ), blank-line
// breaks and the inline markers **bold** and *italic*.
//
// Parsing is pure and total: the same input always yields the same segment
// sequence, and malformed input (unterminated fences, unmatched inline
// markers) degrades to literal text instead of failing.
package markup

import (
	"regexp"
	"strings"
)

// SegmentKind identifies the type of a content segment.
type SegmentKind string

const (
	KindHeading   SegmentKind = "heading"
	KindQuote     SegmentKind = "quote"
	KindListItem  SegmentKind = "listItem"
	KindParagraph SegmentKind = "paragraph"
	KindBreak     SegmentKind = "break"
	KindCode      SegmentKind = "code"
)

// Segment is one typed unit of structured content. Text of non-code
// segments may still carry inline markers; rendering targets resolve those
// through InlineSpans. Code text is always verbatim.
type Segment struct {
	Kind     SegmentKind
	Text     string
	Language string
}

// fenceOpen matches a line of three backticks with an optional language tag.
var fenceOpen = regexp.MustCompile("^```([A-Za-z0-9+#._-]*)[ \t]*$")

// Parse splits content into segments. Fenced code blocks are carved out
// first; the remaining lines get one segment each, first matching rule wins.
func Parse(content string) []Segment {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	segments := make([]Segment, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		if m := fenceOpen.FindStringSubmatch(lines[i]); m != nil {
			end := -1
			for j := i + 1; j < len(lines); j++ {
				if strings.TrimRight(lines[j], " \t") == "```" {
					end = j
					break
				}
			}
			if end >= 0 {
				segments = append(segments, Segment{
					Kind:     KindCode,
					Text:     strings.Join(lines[i+1:end], "\n"),
					Language: m[1],
				})
				i = end
				continue
			}
			// Unterminated fence: the opening line renders as literal text.
		}
		segments = append(segments, lineSegment(lines[i]))
	}

	return segments
}

func lineSegment(line string) Segment {
	switch {
	case strings.TrimSpace(line) == "":
		return Segment{Kind: KindBreak}
	case strings.HasPrefix(line, "## "):
		return Segment{Kind: KindHeading, Text: line[len("## "):]}
	case strings.HasPrefix(line, "> "):
		return Segment{Kind: KindQuote, Text: line[len("> "):]}
	case strings.HasPrefix(line, "- "):
		return Segment{Kind: KindListItem, Text: line[len("- "):]}
	default:
		return Segment{Kind: KindParagraph, Text: line}
	}
}

// SpanStyle identifies the inline style of a text span.
type SpanStyle string

const (
	SpanPlain  SpanStyle = "plain"
	SpanBold   SpanStyle = "bold"
	SpanItalic SpanStyle = "italic"
)

// Span is a run of text with a single inline style.
type Span struct {
	Style SpanStyle
	Text  string
}

var (
	boldMarker   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicMarker = regexp.MustCompile(`\*([^*\n]+)\*`)
)

// InlineSpans resolves **bold** and *italic* markers in a single pass, bold
// first. Markers are non-nested; unmatched or overlapping markers stay
// literal. Nesting and escaping are undefined, matching the interactive
// editor's behavior.
func InlineSpans(text string) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	last := 0
	for _, loc := range boldMarker.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, italicSpans(text[last:loc[0]])...)
		}
		spans = append(spans, Span{Style: SpanBold, Text: text[loc[2]:loc[3]]})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, italicSpans(text[last:])...)
	}
	return spans
}

func italicSpans(text string) []Span {
	var spans []Span
	last := 0
	for _, loc := range italicMarker.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Style: SpanPlain, Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Style: SpanItalic, Text: text[loc[2]:loc[3]]})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Style: SpanPlain, Text: text[last:]})
	}
	return spans
}
