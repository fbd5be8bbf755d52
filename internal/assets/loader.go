package assets

// Loader loads CSS styles and HTML layouts by name.
type Loader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadLayout loads an HTML layout by name (without .html extension).
	LoadLayout(name string) (string, error)
}
