package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// bareURLPattern matches http(s) URLs written as plain text.
var bareURLPattern = regexp.MustCompile(`https?://[^\s<>"',;]+`)

// trailingPunctuation is kept outside generated anchors.
const trailingPunctuation = ".,;:!?)"

// Linkify wraps bare http(s) URLs found in text nodes in anchors.
// Text inside anchors, scripts, and styles is left untouched, which makes
// Linkify idempotent on its own output.
func Linkify(htmlContent string) string {
	tokens := tokenize(htmlContent)
	var state scanState
	changed := false

	for i, t := range tokens {
		if t.kind == markupToken {
			state.observe(t)
			continue
		}
		if state.protected() {
			continue
		}
		if linked := linkifyText(t.raw); linked != t.raw {
			tokens[i].raw = linked
			changed = true
		}
	}

	if !changed {
		return htmlContent
	}
	return joinTokens(tokens)
}

// linkifyText links every bare URL in a single text node, left to right.
func linkifyText(text string) string {
	matches := bareURLPattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}

	var buf strings.Builder
	last := 0
	for _, m := range matches {
		trimmed := strings.TrimRight(text[m[0]:m[1]], trailingPunctuation)
		if !hasURLBody(trimmed) {
			continue
		}
		href, ok := SanitizeURL(trimmed)
		if !ok {
			continue
		}

		buf.WriteString(text[last:m[0]])
		buf.WriteString(`<a href="`)
		buf.WriteString(html.EscapeString(href))
		buf.WriteString(`">`)
		buf.WriteString(trimmed)
		buf.WriteString(`</a>`)
		last = m[0] + len(trimmed)
	}
	buf.WriteString(text[last:])
	return buf.String()
}

// hasURLBody reports whether anything follows the "://" separator.
func hasURLBody(u string) bool {
	idx := strings.Index(u, "://")
	return idx >= 0 && len(u) > idx+3
}
