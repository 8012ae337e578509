package pipeline

import (
	"errors"
	"html"
	"regexp"
	"strings"
)

// ErrEmptyPattern indicates the text to link is empty or blank.
var ErrEmptyPattern = errors.New("cannot build pattern from empty text")

// entityAlternatives maps the HTML-special characters to the forms they take
// in escaped output. '&', '<' and '>' never appear raw in text nodes, so only
// their entity forms are matched; quotes may appear either way.
var entityAlternatives = map[rune]string{
	'&':  `&(?:amp|#0*38|#[xX]0*26);`,
	'<':  `&(?:lt|#0*60|#[xX]0*3[cC]);`,
	'>':  `&(?:gt|#0*62|#[xX]0*3[eE]);`,
	'"':  `(?:&(?:quot|#0*34|#[xX]0*22);|")`,
	'\'': `(?:&(?:apos|#0*39|#[xX]0*27);|')`,
}

// SpanPattern builds a regexp matching plainText as it appears inside
// HTML-escaped markup. Returns ErrEmptyPattern for blank input.
func SpanPattern(plainText string) (*regexp.Regexp, error) {
	if strings.TrimSpace(plainText) == "" {
		return nil, ErrEmptyPattern
	}

	var buf strings.Builder
	for _, r := range plainText {
		if alt, ok := entityAlternatives[r]; ok {
			buf.WriteString(alt)
			continue
		}
		buf.WriteString(regexp.QuoteMeta(string(r)))
	}

	return regexp.Compile(buf.String())
}

// LinkSpan wraps the first occurrence of plainText in htmlContent with an
// anchor pointing at targetURL. Occurrences inside anchors, scripts, and
// styles are ignored, and at most one link is added. The input is returned
// unchanged when the URL is rejected, the pattern cannot be built, or the
// text does not occur.
func LinkSpan(htmlContent, plainText, targetURL string) string {
	href, ok := SanitizeURL(targetURL)
	if !ok {
		return htmlContent
	}

	pattern, err := SpanPattern(plainText)
	if err != nil {
		return htmlContent
	}

	tokens := tokenize(htmlContent)
	var state scanState

	for i, t := range tokens {
		if t.kind == markupToken {
			state.observe(t)
			continue
		}
		if state.protected() {
			continue
		}

		loc := pattern.FindStringIndex(t.raw)
		if loc == nil {
			continue
		}

		tokens[i].raw = t.raw[:loc[0]] +
			`<a href="` + html.EscapeString(href) + `">` +
			t.raw[loc[0]:loc[1]] +
			`</a>` +
			t.raw[loc[1]:]
		return joinTokens(tokens)
	}

	return htmlContent
}
