package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemLoader reads assets below a custom directory. Reads go through
// os.OpenInRoot, so neither names nor symlinks can leave the directory.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader checks that basePath is a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	_ = root.Close()

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadStyle reads styles/{name}.tmpl.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load(styleKind, name)
}

// LoadTheme reads themes/{name}.css.
func (f *FilesystemLoader) LoadTheme(name string) (string, error) {
	return f.load(themeKind, name)
}

// LoadTemplate reads templates/{name}.html.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.load(templateKind, name)
}

func (f *FilesystemLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	rel := filepath.Join(k.dir, name+k.ext)

	file, err := os.OpenInRoot(f.basePath, rel)
	if err != nil {
		return "", f.classify(k, name, rel, err)
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, rel, err)
	}
	return string(content), nil
}

// classify maps an open failure to a sentinel. A symlink that exists but
// cannot be opened inside the root points outside it.
func (f *FilesystemLoader) classify(k kind, name, rel string, err error) error {
	info, lerr := os.Lstat(filepath.Join(f.basePath, rel))
	switch {
	case lerr == nil && info.Mode()&fs.ModeSymlink != 0 && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrPathTraversal, rel)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %q", k.notFound, name)
	default:
		return fmt.Errorf("%w: %s: %v", ErrAssetRead, rel, err)
	}
}

var _ AssetLoader = (*FilesystemLoader)(nil)
