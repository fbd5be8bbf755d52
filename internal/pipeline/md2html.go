package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrHTMLConversion indicates Markdown conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Fragment is a converted HTML body plus the document title found in it.
type Fragment struct {
	Title string
	Body  string
}

// MarkdownConverter abstracts Markdown to HTML conversion.
type MarkdownConverter interface {
	ToHTML(ctx context.Context, content string) (Fragment, error)
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles: the layout carries no chroma stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// No WithUnsafe: raw HTML in Markdown templates is dropped.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML body fragment.
// The title is the text of the first level-1 heading, if any.
// Goldmark has no context support, so conversion runs in a goroutine.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (Fragment, error) {
	if err := ctx.Err(); err != nil {
		return Fragment{}, err
	}

	type result struct {
		frag Fragment
		err  error
	}
	done := make(chan result, 1)

	go func() {
		src := []byte(content)
		doc := c.md.Parser().Parse(text.NewReader(src))

		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{frag: Fragment{Title: firstHeading(doc, src), Body: buf.String()}}
	}()

	select {
	case <-ctx.Done():
		return Fragment{}, ctx.Err()
	case r := <-done:
		return r.frag, r.err
	}
}

func firstHeading(doc ast.Node, src []byte) string {
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = string(headingText(h, src))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

func headingText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			continue
		}
		buf.Write(headingText(c, src))
	}
	return buf.Bytes()
}
