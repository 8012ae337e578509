package bibhtml

import (
	"fmt"
	"strings"

	"github.com/alnah/go-bibhtml/internal/assets"
	"github.com/alnah/go-bibhtml/internal/engine"
	"github.com/alnah/go-bibhtml/internal/fileutil"
)

// DefaultStyle is used when no style is selected.
const DefaultStyle = assets.DefaultStyleName

// BuiltinStyles lists the embedded citation style names.
func BuiltinStyles() []string {
	return assets.Styles()
}

// BuiltinThemes lists the embedded CSS theme names.
func BuiltinThemes() []string {
	return assets.Themes()
}

// resolveStyle turns a selector into a name registered with the engine.
// Tried in order: registered name, asset name, file path, inline template.
// Content loaded from files, inline text or a custom asset directory is
// registered under a content-derived name so distinct texts never share one.
func (b *Bibliography) resolveStyle(selector string) (string, error) {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultStyle
	}

	if b.engine.StyleExists(selector) {
		return selector, nil
	}

	if assets.ValidateAssetName(selector) == nil {
		text, err := b.assets.LoadStyle(selector)
		switch {
		case err == nil:
			name := selector
			if b.assets.HasCustomLoader() {
				name = engine.ContentName(text)
			}
			return b.register(name, text)
		case !assets.IsNotFound(err):
			return "", fmt.Errorf("%w: %v", ErrUnknownStyle, err)
		}
	}

	inline := strings.Contains(selector, "{{")
	if fileutil.FileExists(selector) || (!inline && fileutil.IsFilePath(selector)) {
		text, err := b.readFile(selector)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnknownStyle, err)
		}
		return b.register(engine.ContentName(text), text)
	}

	if inline {
		return b.register(engine.ContentName(selector), selector)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, selector)
}

func (b *Bibliography) register(name, text string) (string, error) {
	if b.engine.StyleExists(name) {
		return name, nil
	}
	if err := b.engine.RegisterStyle(name, text); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownStyle, err)
	}
	return name, nil
}
