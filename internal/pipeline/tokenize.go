package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// tokenKind distinguishes text between tags from markup.
type tokenKind int

const (
	textToken tokenKind = iota
	markupToken
)

// token is one chunk of an HTML string. raw holds the exact input bytes so
// that joining every token's raw value reproduces the input.
type token struct {
	kind        tokenKind
	raw         string
	name        string // lower-cased tag name, empty for comments and doctypes
	closing     bool
	selfClosing bool
}

// tokenize splits htmlContent on tag boundaries.
// Text between tags becomes one textToken; each tag, comment, or doctype
// becomes a markupToken. Any trailing bytes the tokenizer cannot classify
// (an unterminated tag) are kept as opaque markup so they are never edited.
func tokenize(htmlContent string) []token {
	z := html.NewTokenizer(strings.NewReader(htmlContent))
	var tokens []token
	consumed := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}

		// Raw must be copied before TagName, which lower-cases the buffer in place.
		raw := string(z.Raw())
		consumed += len(raw)

		switch tt {
		case html.TextToken:
			tokens = append(tokens, token{kind: textToken, raw: raw})
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tokens = append(tokens, token{
				kind:        markupToken,
				raw:         raw,
				name:        string(name),
				closing:     tt == html.EndTagToken,
				selfClosing: tt == html.SelfClosingTagToken,
			})
		default:
			tokens = append(tokens, token{kind: markupToken, raw: raw})
		}
	}

	if consumed < len(htmlContent) {
		tokens = append(tokens, token{kind: markupToken, raw: htmlContent[consumed:]})
	}

	return tokens
}

// joinTokens concatenates the raw values of tokens.
func joinTokens(tokens []token) string {
	var buf strings.Builder
	for _, t := range tokens {
		buf.WriteString(t.raw)
	}
	return buf.String()
}

// scanState tracks the elements whose text content must not be modified.
type scanState struct {
	anchor bool
	script bool
	style  bool
}

// observe updates the state from a markup token.
func (s *scanState) observe(t token) {
	if t.kind != markupToken || t.selfClosing {
		return
	}
	open := !t.closing
	switch t.name {
	case "a":
		s.anchor = open
	case "script":
		s.script = open
	case "style":
		s.style = open
	}
}

// protected reports whether text at the current position must be left alone.
func (s *scanState) protected() bool {
	return s.anchor || s.script || s.style
}
