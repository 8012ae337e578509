// Package hints turns known errors into an actionable line appended to a
// CLI error message. Every hint reads "\n  hint: <text>".
package hints

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/alnah/go-bibhtml"
	"github.com/alnah/go-bibhtml/internal/config"
	"github.com/alnah/go-bibhtml/internal/engine"
	"github.com/alnah/go-bibhtml/internal/fileutil"
)

// ConfigName is the config name suggested when lookup fails.
const ConfigName = "bib2html"

// IsInContainer detects Docker and similar runtimes through /.dockerenv.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// rule pairs an error kind with the hint it earns. The first match wins.
type rule struct {
	target error
	hint   func() string
}

var rules = []rule{
	{config.ErrConfigNotFound, func() string { return ForConfigNotFound(config.SearchPaths(ConfigName)) }},
	{bibhtml.ErrUnknownStyle, func() string { return ForStyleNotFound(bibhtml.BuiltinStyles()) }},
	{bibhtml.ErrUnknownTheme, func() string { return ForThemeNotFound(bibhtml.BuiltinThemes()) }},
	{bibhtml.ErrBrowserConnect, ForBrowserConnect},
	{context.DeadlineExceeded, ForTimeout},
	{engine.ErrParse, ForBibParse},
}

// For returns the hint for err, or "" when none applies.
func For(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range rules {
		if errors.Is(err, r.target) {
			return r.hint()
		}
	}
	return ""
}

// ForBrowserConnect suggests the ROD_* variables that usually fix a
// headless Chrome launch during PDF export.
func ForBrowserConnect() string {
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	var hints []string
	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	return format(strings.Join(hints, "; "))
}

func ForTimeout() string {
	return format("for large bibliographies, use the --timeout flag")
}

// ForConfigNotFound points at --config, and at the user config file when
// one of the searched paths lives there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(strings.ReplaceAll(p, `\`, "/"), "go-bibhtml/") {
			return format(hint + " or create " + p)
		}
	}
	return format(hint)
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the built-in styles next to the other selectors
// a style accepts.
func ForStyleNotFound(available []string) string {
	hint := "pass a .tmpl file path or inline template text"
	if len(available) > 0 {
		hint = "available: " + strings.Join(available, ", ") + "; or " + hint
	}
	return format(hint)
}

func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a .css file path")
}

// ForBibParse points at the usual causes of BibTeX syntax errors.
func ForBibParse() string {
	return format("check for unbalanced braces or a missing comma between fields")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
