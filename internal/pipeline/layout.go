package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrLayoutRender indicates the layout template could not be executed.
var ErrLayoutRender = errors.New("layout rendering failed")

// Page is the data a layout receives.
type Page struct {
	Title string
	Style template.CSS
	Body  template.HTML
}

// RenderLayout executes layout with the given title, stylesheet and body.
// The body is trusted HTML produced by this package; the title is escaped.
func RenderLayout(layout, title, css, body string) (string, error) {
	tmpl, err := template.New("layout").Parse(layout)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLayoutRender, err)
	}

	if title == "" {
		title = "Document"
	}
	page := Page{
		Title: title,
		Style: template.CSS(sanitizeCSS(css)), // #nosec G203 -- stylesheet from embedded or configured assets
		Body:  template.HTML(body),            // #nosec G203 -- body produced by goldmark or the DOCX renderer
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("%w: %v", ErrLayoutRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
