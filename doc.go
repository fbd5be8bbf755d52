// Package dokufy generates PDF and DOCX documents from templates through
// interchangeable conversion drivers.
//
// # Quick Start
//
// Create an instance, pick a source, add data, and convert:
//
//	d, err := dokufy.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Close()
//
//	_, err = d.HTML("<h1>Invoice {{ number }}</h1>").
//	    Data(map[string]any{"number": 42}).
//	    ToPDF(ctx, "out/invoice.pdf")
//
// Template sets a file as the source instead. HTML and Markdown templates
// are substituted and rendered as markup; DOCX and other office files are
// handed to the driver unchanged.
//
// # Drivers
//
// Five drivers are registered by DefaultRegistry, in this order:
//
//   - gotenberg: a Gotenberg service over HTTP (drivers.gotenberg.url)
//   - libreoffice: soffice in headless mode (drivers.libreoffice.binary)
//   - chromium: headless Chrome through go-rod, HTML only
//   - stencil: DOCX read with go-stencil and printed by a PDF renderer
//     (chrome, wkhtmltopdf or weasyprint); also writes DOCX from HTML
//   - fake: records calls for tests and never touches the filesystem
//
// The default driver comes from the configuration; Driver pins another one.
// Each name resolves to one shared instance per Registry.
//
// # Placeholders
//
// Tokens {{ key }}, {{key}}, {{ key}} and {{key }} are replaced with the
// value for key. Strings, numbers, booleans and fmt.Stringer values are
// substituted; other values leave the token in place. A handler attached
// with With replaces the Data values; see HandlerData for lookup order.
//
// # DOCX Output
//
// ToDocx copies the template as-is. RenderDocx fills DOCX templates written
// with go-stencil expressions, or converts markup through a driver that
// implements DocxWriter.
//
// # Configuration
//
// LoadConfig reads a YAML file over DefaultConfig. The dokufy CLI also
// applies DOKUFY_* environment variables and .env files.
//
// # Testing
//
// Fake swaps in a recording driver. Package dokufytest asserts over what it
// recorded:
//
//	fake := d.Fake()
//	_, _ = d.HTML("<p>x</p>").ToPDF(ctx, "/tmp/a.pdf")
//	dokufytest.AssertPDFGenerated(t, fake)
//	dokufytest.AssertMethodCalled(t, fake, dokufy.MethodHTMLToPDF)
package dokufy
