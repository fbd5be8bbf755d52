package pipeline

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/benjaminschreck/go-stencil/pkg/stencil"
)

// ErrDocxRead indicates the DOCX package or its main part could not be read.
var ErrDocxRead = errors.New("reading DOCX failed")

// DocxToHTML reads the main document part of the DOCX at path and renders
// its paragraphs and tables as an HTML body fragment.
// Template tags in the document are kept as literal text.
func DocxToHTML(path string) (Fragment, error) {
	reader, err := stencil.DocxReaderFromFile(path)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: %v", ErrDocxRead, err)
	}
	docXML, err := reader.GetDocumentXML()
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: %v", ErrDocxRead, err)
	}
	doc, err := stencil.ParseDocument(strings.NewReader(docXML))
	if err != nil {
		return Fragment{}, fmt.Errorf("%w: %v", ErrDocxRead, err)
	}
	return DocumentToHTML(doc), nil
}

// DocumentToHTML renders a parsed document body.
// Paragraphs styled Title or Heading1..6 become headings; the first Title
// or Heading1 becomes the fragment title.
func DocumentToHTML(doc *stencil.Document) Fragment {
	var frag Fragment
	if doc == nil || doc.Body == nil {
		return frag
	}

	var b strings.Builder
	for _, el := range doc.Body.Elements {
		switch e := el.(type) {
		case *stencil.Paragraph:
			tag := paragraphTag(e)
			if frag.Title == "" && tag == "h1" {
				frag.Title = e.GetText()
			}
			writeParagraph(&b, e, tag)
		case *stencil.Table:
			writeTable(&b, e)
		}
	}
	frag.Body = b.String()
	return frag
}

func paragraphTag(p *stencil.Paragraph) string {
	if p.Properties == nil || p.Properties.Style == nil {
		return "p"
	}
	style := strings.ToLower(p.Properties.Style.Val)
	switch {
	case style == "title":
		return "h1"
	case strings.HasPrefix(style, "heading") && len(style) == len("heading")+1:
		level := style[len(style)-1]
		if level >= '1' && level <= '6' {
			return "h" + string(level)
		}
	}
	return "p"
}

func writeParagraph(b *strings.Builder, p *stencil.Paragraph, tag string) {
	b.WriteString("<" + tag + ">")
	for i := range p.Runs {
		writeRun(b, &p.Runs[i])
	}
	b.WriteString("</" + tag + ">\n")
}

func writeRun(b *strings.Builder, r *stencil.Run) {
	if r.Break != nil {
		b.WriteString("<br/>")
	}
	if r.Text == nil || r.Text.Content == "" {
		return
	}

	var open, close []string
	wrap := func(tag string) {
		open = append(open, "<"+tag+">")
		close = append([]string{"</" + tag + ">"}, close...)
	}
	if p := r.Properties; p != nil {
		if p.Bold != nil {
			wrap("strong")
		}
		if p.Italic != nil {
			wrap("em")
		}
		if p.Underline != nil && p.Underline.Val != "none" {
			wrap("u")
		}
		if p.Strike != nil {
			wrap("s")
		}
		if p.VerticalAlign != nil {
			switch p.VerticalAlign.Val {
			case "superscript":
				wrap("sup")
			case "subscript":
				wrap("sub")
			}
		}
	}

	b.WriteString(strings.Join(open, ""))
	b.WriteString(html.EscapeString(r.Text.Content))
	b.WriteString(strings.Join(close, ""))
}

func writeTable(b *strings.Builder, t *stencil.Table) {
	b.WriteString("<table>\n")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row.Cells {
			b.WriteString("<td>")
			for i := range cell.Paragraphs {
				p := &cell.Paragraphs[i]
				writeParagraph(b, p, paragraphTag(p))
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}
