package dokufy

import (
	"fmt"

	"github.com/alnah/go-dokufy/internal/assets"
	"github.com/alnah/go-dokufy/internal/pipeline"
)

// AssetLoader supplies the stylesheet and layout used when dokufy renders
// markup itself (Markdown templates, DOCX previews).
type AssetLoader = assets.Loader

// NewAssetLoader looks up assets under dir first and falls back to the
// built-in ones. An empty or invalid dir uses the built-ins only.
func NewAssetLoader(dir string) AssetLoader {
	return assets.NewResolver(dir)
}

// renderPage wraps a body fragment in the default layout and stylesheet.
func renderPage(loader AssetLoader, frag pipeline.Fragment) (string, error) {
	layout, err := loader.LoadLayout(assets.DefaultLayout)
	if err != nil {
		return "", fmt.Errorf("loading layout: %w", err)
	}
	css, err := loader.LoadStyle(assets.DefaultStyle)
	if err != nil {
		return "", fmt.Errorf("loading style: %w", err)
	}
	return pipeline.RenderLayout(layout, frag.Title, css, frag.Body)
}
