package engine

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Name is a CSL name. Literal is set for institutional names written in
// braces and is used as-is.
type Name struct {
	Family  string
	Given   string
	Literal string
}

var nameSeparator = regexp.MustCompile(`(?i)\s+and\s+`)

// parseNames splits a BibTeX name list on "and".
func parseNames(s string) []Name {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var names []Name
	for _, part := range nameSeparator.Split(s, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, parseName(part))
	}
	return names
}

// parseName accepts "Family, Given", "Given Family" and "{Literal}".
func parseName(s string) Name {
	if s[0] == '{' && closingBrace(s) == len(s)-1 {
		return Name{Literal: cleanTeX(s)}
	}

	if family, given, ok := strings.Cut(s, ","); ok {
		return Name{Family: cleanTeX(family), Given: cleanTeX(given)}
	}

	words := strings.Fields(s)
	if len(words) == 1 {
		return Name{Family: cleanTeX(words[0])}
	}
	return Name{
		Family: cleanTeX(words[len(words)-1]),
		Given:  cleanTeX(strings.Join(words[:len(words)-1], " ")),
	}
}

// FamilyFirst renders "Family, G." or the literal.
func (n Name) FamilyFirst() string {
	if n.Literal != "" {
		return n.Literal
	}
	if n.Given == "" {
		return n.Family
	}
	return n.Family + ", " + initials(n.Given)
}

// GivenFirst renders "G. Family" or the literal.
func (n Name) GivenFirst() string {
	if n.Literal != "" {
		return n.Literal
	}
	if n.Given == "" {
		return n.Family
	}
	return initials(n.Given) + " " + n.Family
}

// initials abbreviates given names: "Jean-Paul Marie" → "J.-P. M.".
func initials(given string) string {
	words := strings.Fields(given)
	out := make([]string, 0, len(words))
	for _, w := range words {
		parts := strings.Split(w, "-")
		for i, p := range parts {
			r, _ := utf8.DecodeRuneInString(p)
			if r == utf8.RuneError {
				parts[i] = p
				continue
			}
			parts[i] = string(r) + "."
		}
		out = append(out, strings.Join(parts, "-"))
	}
	return strings.Join(out, " ")
}

// joinNames joins formatted names with sep, using last before the final one.
func joinNames(formatted []string, sep, last string) string {
	switch len(formatted) {
	case 0:
		return ""
	case 1:
		return formatted[0]
	}
	return strings.Join(formatted[:len(formatted)-1], sep) + last + formatted[len(formatted)-1]
}
