package engine

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// accent maps TeX accent commands to Unicode combining marks.
var accent = map[string]string{
	`'`: "\u0301",
	"`": "\u0300",
	`^`: "\u0302",
	`"`: "\u0308",
	`~`: "\u0303",
	`c`: "\u0327",
}

var (
	accentCommand = regexp.MustCompile(`\{?\\(['"\x60^~]|c\b)\s*\{?([A-Za-z])\}?\}?`)
	spaces        = regexp.MustCompile(`\s+`)
)

var texReplacer = strings.NewReplacer(
	`\&`, "&",
	`\%`, "%",
	`\$`, "$",
	`\_`, "_",
	`\#`, "#",
	"---", "—",
	"--", "–",
	"~", " ",
	`\ss`, "ß",
	"{", "",
	"}", "",
)

// cleanTeX converts common TeX markup in a field value to plain Unicode text.
func cleanTeX(s string) string {
	if s == "" {
		return ""
	}
	s = accentCommand.ReplaceAllStringFunc(s, func(m string) string {
		sub := accentCommand.FindStringSubmatch(m)
		mark := accent[strings.TrimSpace(sub[1])]
		return sub[2] + mark
	})
	s = texReplacer.Replace(s)
	s = spaces.ReplaceAllString(s, " ")
	return norm.NFC.String(strings.TrimSpace(s))
}
