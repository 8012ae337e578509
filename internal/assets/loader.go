package assets

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for asset lookups. The three not-found errors are
// recognized by IsNotFound; the rest are reported to the caller as is.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrThemeNotFound    = errors.New("theme not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid asset directory")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("asset escapes its directory")
)

// Default asset names.
const (
	DefaultStyleName = "apa"
	DefaultThemeName = "default"
	DocumentTemplate = "document"
	HeaderTemplate   = "header"
)

// AssetLoader defines the contract for loading bibliography assets.
type AssetLoader interface {
	// LoadStyle loads a citation style template by name (without .tmpl).
	LoadStyle(name string) (string, error)

	// LoadTheme loads a CSS theme by name (without .css).
	LoadTheme(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html).
	LoadTemplate(name string) (string, error)
}

// kind describes where one type of asset lives.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".tmpl", notFound: ErrStyleNotFound}
	themeKind    = kind{dir: "themes", ext: ".css", notFound: ErrThemeNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

var validAssetName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName checks that an asset name is safe for use as a filename.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !validAssetName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// IsNotFound reports whether err means the asset does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrThemeNotFound) ||
		errors.Is(err, ErrTemplateNotFound)
}
