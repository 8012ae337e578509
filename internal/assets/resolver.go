package assets

// AssetResolver walks a chain of loaders: the custom directory when one is
// configured, then the embedded assets. The first loader that has the asset
// wins; a validation or I/O error stops the walk.
type AssetResolver struct {
	chain []AssetLoader
}

// NewAssetResolver builds the chain. An empty customBasePath leaves only
// the embedded assets.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	if customBasePath == "" {
		return &AssetResolver{chain: []AssetLoader{defaultLoader}}, nil
	}
	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	return &AssetResolver{chain: []AssetLoader{custom, defaultLoader}}, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTheme(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTheme(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		if content, err = load(l); err == nil || !IsNotFound(err) {
			return content, err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a custom asset directory is in the chain.
// Content it serves may differ from the embedded asset of the same name.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
