package assets

import "errors"

// Resolver tries a custom directory first and falls back to embedded assets
// when the custom directory does not have the requested asset.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver. An empty customBasePath, or one that does
// not exist, selects embedded assets only.
func NewResolver(customBasePath string) *Resolver {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		if dl, err := NewDirLoader(customBasePath); err == nil {
			r.custom = dl
		}
	}
	return r
}

func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) { return l.LoadStyle(name) })
}

func (r *Resolver) LoadLayout(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) { return l.LoadLayout(name) })
}

func (r *Resolver) loadWithFallback(loadFn func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}
	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}
	// Only "not found" falls back; traversal and I/O errors surface.
	if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrLayoutNotFound) {
		return "", err
	}
	return loadFn(r.embedded)
}

// HasCustomLoader reports whether a custom directory is in use.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ Loader = (*Resolver)(nil)
