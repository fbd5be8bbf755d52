package dokufy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-dokufy/internal/docxtemplate"
	"github.com/alnah/go-dokufy/internal/fileutil"
	"github.com/alnah/go-dokufy/internal/logger"
	"github.com/alnah/go-dokufy/internal/metrics"
	"github.com/alnah/go-dokufy/internal/pipeline"
)

// Logger is the structured logger dokufy writes to.
type Logger = logger.Logger

// Conversion operations, used as metric and log labels.
const (
	opHTMLToPDF  = "html_to_pdf"
	opDocxToPDF  = "docx_to_pdf"
	opHTMLToDocx = "html_to_docx"
	opCopyDocx   = "copy_docx"
	opRenderDocx = "render_docx"
)

type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceTemplate
	sourceMarkup
)

// Dokufy builds one document at a time: a template or inline markup, the
// placeholder data, and the driver that converts it.
//
// Builder methods mutate and return the same instance. A Dokufy is not safe
// for concurrent use; call Make for an independent instance.
type Dokufy struct {
	cfg      *Config
	registry *Registry
	ownsReg  bool
	log      Logger
	metrics  *metrics.Metrics
	metReg   prometheus.Registerer
	assets   AssetLoader
	markdown pipeline.MarkdownConverter

	source       sourceKind
	templatePath string
	markup       string
	data         map[string]any
	handler      any
	driver       Driver
	fake         *FakeDriver
}

// Option configures a Dokufy.
type Option func(*Dokufy)

// WithConfig sets the configuration. It is validated by New.
func WithConfig(cfg *Config) Option {
	return func(d *Dokufy) {
		if cfg != nil {
			d.cfg = cfg.Clone()
		}
	}
}

// WithRegistry sets the driver registry. The caller keeps ownership.
func WithRegistry(r *Registry) Option {
	return func(d *Dokufy) { d.registry = r }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(d *Dokufy) { d.log = l }
}

// WithMetrics registers conversion metrics on reg. Instances sharing a
// registry share its collectors; a conflicting collector makes New fail.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(d *Dokufy) { d.metReg = reg }
}

// WithAssetLoader overrides the stylesheet and layout source for Markdown templates.
func WithAssetLoader(l AssetLoader) Option {
	return func(d *Dokufy) { d.assets = l }
}

// New creates a Dokufy. Without WithRegistry it builds DefaultRegistry
// from the configuration and closes it on Close.
func New(opts ...Option) (*Dokufy, error) {
	d := &Dokufy{
		cfg:      DefaultConfig(),
		log:      logger.NewNoOp(),
		markdown: pipeline.NewGoldmarkConverter(),
		data:     map[string]any{},
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.cfg.Validate(); err != nil {
		return nil, err
	}
	if d.metReg != nil {
		m, err := metrics.New(d.metReg)
		if err != nil {
			return nil, err
		}
		d.metrics = m
	}
	if d.registry == nil {
		d.registry = DefaultRegistry(d.cfg, d.log)
		d.ownsReg = true
	}
	if d.assets == nil {
		d.assets = NewAssetLoader(d.cfg.Templates.Path)
	}
	return d, nil
}

// Close releases drivers built by a registry this instance created.
func (d *Dokufy) Close() error {
	if !d.ownsReg {
		return nil
	}
	return d.registry.Close()
}

// Config returns a copy of the active configuration.
func (d *Dokufy) Config() *Config { return d.cfg.Clone() }

// Registry returns the driver registry.
func (d *Dokufy) Registry() *Registry { return d.registry }

// DefaultDriver returns the configured default driver name.
func (d *Dokufy) DefaultDriver() string { return d.cfg.Default }

// Template sets a template file as the source, clearing inline markup.
// Relative paths that do not exist are retried under templates.path.
func (d *Dokufy) Template(path string) (*Dokufy, error) {
	resolved := path
	if !fileutil.FileExists(resolved) && !filepath.IsAbs(path) && d.cfg.Templates.Path != "" {
		resolved = filepath.Join(d.cfg.Templates.Path, path)
	}
	if !fileutil.FileExists(resolved) {
		return d, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}
	d.source = sourceTemplate
	d.templatePath = resolved
	d.markup = ""
	return d, nil
}

// HTML sets inline markup as the source, clearing any template.
func (d *Dokufy) HTML(content string) *Dokufy {
	d.source = sourceMarkup
	d.markup = content
	d.templatePath = ""
	return d
}

// Data merges values into the placeholder data. Later values win.
func (d *Dokufy) Data(values map[string]any) *Dokufy {
	for k, v := range values {
		d.data[k] = v
	}
	return d
}

// With attaches a placeholder handler. While attached, its data replaces
// the values set with Data. See HandlerData.
func (d *Dokufy) With(handler any) *Dokufy {
	d.handler = handler
	return d
}

// Driver pins the named driver for this instance.
func (d *Dokufy) Driver(name string) (*Dokufy, error) {
	drv, err := d.registry.Resolve(name)
	if err != nil {
		return d, err
	}
	d.log.Debug("driver pinned", map[string]any{"driver": name})
	d.driver = drv
	return d, nil
}

// Make returns a new instance with empty request state sharing this one's
// configuration, registry, logger and metrics. A non-empty driver is pinned.
func (d *Dokufy) Make(driver string) (*Dokufy, error) {
	n := &Dokufy{
		cfg:      d.cfg,
		registry: d.registry,
		log:      d.log,
		metrics:  d.metrics,
		assets:   d.assets,
		markdown: d.markdown,
		data:     map[string]any{},
	}
	if driver == "" {
		return n, nil
	}
	return n.Driver(driver)
}

// Reset clears the source, data, handler and pinned driver.
func (d *Dokufy) Reset() *Dokufy {
	d.source = sourceNone
	d.templatePath = ""
	d.markup = ""
	d.data = map[string]any{}
	d.handler = nil
	d.driver = nil
	return d
}

// ToPDF converts the current source to a PDF at outputPath.
// HTML and Markdown templates and inline markup are substituted and sent
// through HTMLToPDF; any other template goes through DocxToPDF unchanged.
func (d *Dokufy) ToPDF(ctx context.Context, outputPath string) (string, error) {
	switch d.source {
	case sourceNone:
		return "", ErrNoContent
	case sourceMarkup:
		return d.htmlToPDF(ctx, d.substitute(d.markup), outputPath)
	}

	switch fileutil.Ext(d.templatePath) {
	case "html", "htm", "md", "markdown":
		html, err := d.templateHTML(ctx)
		if err != nil {
			return "", err
		}
		return d.htmlToPDF(ctx, html, outputPath)
	default:
		drv, err := d.activeDriver(ctx)
		if err != nil {
			return "", err
		}
		return d.convert(drv, opDocxToPDF, func() (string, error) {
			return drv.DocxToPDF(ctx, d.templatePath, outputPath)
		})
	}
}

// ToDocx copies the template to outputPath. Placeholders are not applied;
// use RenderDocx for that.
func (d *Dokufy) ToDocx(outputPath string) (string, error) {
	if d.source != sourceTemplate {
		return "", ErrTemplateRequired
	}
	started := time.Now()
	err := fileutil.CopyFile(d.templatePath, outputPath)
	d.metrics.Observe("copy", opCopyDocx, started, err)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionOutput, err)
	}
	d.log.Info("document copied", map[string]any{"template": d.templatePath, "output": outputPath})
	return outputPath, nil
}

// RenderDocx writes a DOCX with placeholders applied. DOCX templates are
// filled with go-stencil expressions; markup sources need a driver that
// implements DocxWriter.
func (d *Dokufy) RenderDocx(ctx context.Context, outputPath string) (string, error) {
	var html string
	switch d.source {
	case sourceNone:
		return "", ErrNoContent
	case sourceMarkup:
		html = d.substitute(d.markup)
	case sourceTemplate:
		switch ext := fileutil.Ext(d.templatePath); ext {
		case "docx":
			return d.renderDocxTemplate(outputPath)
		case "html", "htm", "md", "markdown":
			var err error
			if html, err = d.templateHTML(ctx); err != nil {
				return "", err
			}
		default:
			return "", fmt.Errorf("%w: %s templates cannot be rendered to DOCX", ErrUnsupportedFormat, ext)
		}
	}

	drv, err := d.activeDriver(ctx)
	if err != nil {
		return "", err
	}
	writer, ok := drv.(DocxWriter)
	if !ok {
		return "", fmt.Errorf("%w: driver %s cannot write DOCX", ErrUnsupportedFormat, drv.Name())
	}
	return d.convert(drv, opHTMLToDocx, func() (string, error) {
		return writer.HTMLToDocx(ctx, html, outputPath)
	})
}

func (d *Dokufy) renderDocxTemplate(outputPath string) (string, error) {
	started := time.Now()
	err := func() error {
		proc, err := docxtemplate.Load(d.templatePath)
		if err != nil {
			return err
		}
		defer proc.Close()
		proc.SetValues(d.placeholderData())
		return proc.Save(outputPath)
	}()
	d.metrics.Observe(DriverStencil, opRenderDocx, started, err)
	if err != nil {
		d.log.WithError(err).Error("docx rendering failed", map[string]any{"template": d.templatePath})
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	d.log.Info("docx rendered", map[string]any{"template": d.templatePath, "output": outputPath})
	return outputPath, nil
}

// templateHTML reads an HTML or Markdown template and applies placeholders.
// Markdown is converted with goldmark and wrapped in the default layout.
func (d *Dokufy) templateHTML(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(d.templatePath) // #nosec G304 -- template path checked by Template
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, d.templatePath, err)
	}
	content := d.substitute(string(raw))

	switch fileutil.Ext(d.templatePath) {
	case "md", "markdown":
		frag, err := d.markdown.ToHTML(ctx, content)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
		}
		page, err := renderPage(d.assets, frag)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
		}
		return page, nil
	default:
		return content, nil
	}
}

func (d *Dokufy) htmlToPDF(ctx context.Context, html, outputPath string) (string, error) {
	drv, err := d.activeDriver(ctx)
	if err != nil {
		return "", err
	}
	return d.convert(drv, opHTMLToPDF, func() (string, error) {
		return drv.HTMLToPDF(ctx, html, outputPath)
	})
}

// convert runs fn with logging and metrics around it.
func (d *Dokufy) convert(drv Driver, op string, fn func() (string, error)) (string, error) {
	fields := map[string]any{"driver": drv.Name(), "operation": op}
	d.log.Info("conversion started", fields)

	started := time.Now()
	out, err := fn()
	d.metrics.Observe(drv.Name(), op, started, err)

	if err != nil {
		d.log.WithError(err).Error("conversion failed", fields)
		return "", err
	}
	d.log.Info("conversion finished", map[string]any{
		"driver":    drv.Name(),
		"operation": op,
		"output":    out,
		"duration":  time.Since(started).String(),
	})
	return out, nil
}

// activeDriver returns the pinned driver or the configured default, and
// checks that it is available.
func (d *Dokufy) activeDriver(ctx context.Context) (Driver, error) {
	drv := d.driver
	if drv == nil {
		var err error
		if drv, err = d.registry.Resolve(d.cfg.Default); err != nil {
			return nil, err
		}
	}
	if !checkAvailable(ctx, drv) {
		return nil, fmt.Errorf("%w: %s", ErrDriverUnavailable, drv.Name())
	}
	return drv, nil
}

func (d *Dokufy) placeholderData() map[string]any {
	if d.handler != nil {
		return HandlerData(d.handler)
	}
	return d.data
}

func (d *Dokufy) substitute(content string) string {
	return Substitute(content, d.placeholderData())
}

// AvailableDrivers returns the registered drivers that resolve and report
// available, in registration order.
func (d *Dokufy) AvailableDrivers(ctx context.Context) []string {
	var out []string
	for _, name := range d.registry.Names() {
		if d.IsDriverAvailable(ctx, name) {
			out = append(out, name)
		}
	}
	return out
}

// IsDriverAvailable resolves name and checks it. Any failure reports false.
func (d *Dokufy) IsDriverAvailable(ctx context.Context, name string) bool {
	drv, err := d.registry.Resolve(name)
	if err != nil {
		d.log.Debug("driver unavailable", map[string]any{"driver": name, "reason": err.Error()})
		return false
	}
	return checkAvailable(ctx, drv)
}

// checkAvailable calls IsAvailable, treating a panic as unavailable.
func checkAvailable(ctx context.Context, drv Driver) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return drv.IsAvailable(ctx)
}

// Fake pins a fresh FakeDriver and returns it.
func (d *Dokufy) Fake() *FakeDriver {
	d.fake = NewFakeDriver(d.cfg.Driver(DriverFake))
	d.driver = d.fake
	return d.fake
}

// FakeDriver returns the driver installed by Fake.
func (d *Dokufy) FakeDriver() (*FakeDriver, error) {
	if d.fake == nil {
		return nil, ErrFakeNotActive
	}
	return d.fake, nil
}
