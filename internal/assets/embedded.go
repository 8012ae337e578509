package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed styles/*.tmpl themes/*.css templates/*.html
var embedded embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in citation style.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(styleKind, name)
}

// LoadTheme loads a built-in CSS theme.
func (e *EmbeddedLoader) LoadTheme(name string) (string, error) {
	return e.load(themeKind, name)
}

// LoadTemplate loads a built-in page template.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(templateKind, name)
}

func (e *EmbeddedLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := embedded.ReadFile(k.dir + "/" + name + k.ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	}
	return string(content), nil
}

// Styles returns the names of the built-in citation styles, sorted.
func (e *EmbeddedLoader) Styles() []string {
	return list(styleKind)
}

// Themes returns the names of the built-in CSS themes, sorted.
func (e *EmbeddedLoader) Themes() []string {
	return list(themeKind)
}

func list(k kind) []string {
	entries, err := fs.ReadDir(embedded, k.dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), k.ext); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
