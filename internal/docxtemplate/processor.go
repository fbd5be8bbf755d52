// Package docxtemplate fills DOCX templates through go-stencil.
//
// Templates use stencil's {{ }} expressions, including {{for x in rows}}
// loops for table rows and {{html(v)}} for inline formatted text.
package docxtemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benjaminschreck/go-stencil/pkg/stencil"

	"github.com/alnah/go-dokufy/internal/fileutil"
)

// Sentinel errors for template processing.
var (
	ErrLoad   = errors.New("loading DOCX template failed")
	ErrRender = errors.New("rendering DOCX template failed")
	ErrClosed = errors.New("processor is closed")
)

// Processor accumulates values for one DOCX template and renders it.
// A Processor is not safe for concurrent use.
type Processor struct {
	tmpl   *stencil.PreparedTemplate
	data   stencil.TemplateData
	closed bool
}

// Load prepares the DOCX template at path.
func Load(path string) (*Processor, error) {
	tmpl, err := stencil.PrepareFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	return &Processor{tmpl: tmpl, data: stencil.TemplateData{}}, nil
}

// LoadReader prepares a DOCX template from r.
func LoadReader(r io.Reader) (*Processor, error) {
	tmpl, err := stencil.Prepare(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return &Processor{tmpl: tmpl, data: stencil.TemplateData{}}, nil
}

// SetValue sets one template variable.
func (p *Processor) SetValue(key string, value any) {
	p.data[key] = value
}

// SetValues merges values into the template variables. Later calls win.
func (p *Processor) SetValues(values map[string]any) {
	for k, v := range values {
		p.data[k] = v
	}
}

// SetTableRows binds rows to key, for use with {{for row in key}} inside a table row.
func (p *Processor) SetTableRows(key string, rows []map[string]any) {
	items := make([]any, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	p.data[key] = items
}

// Render executes the template with the accumulated values.
func (p *Processor) Render() ([]byte, error) {
	if p.closed {
		return nil, ErrClosed
	}
	out, err := p.tmpl.Render(p.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// Save renders the template and writes it to path, creating parent directories.
func (p *Processor) Save(path string) error {
	content, err := p.Render()
	if err != nil {
		return err
	}
	if err := fileutil.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Close releases the prepared template. Safe to call twice.
func (p *Processor) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.tmpl.Close()
}
