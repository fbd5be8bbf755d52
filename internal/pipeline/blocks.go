package pipeline

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inlineTags are the tags go-stencil's html() function renders.
// Anything else is unwrapped to its text content.
var inlineTags = map[atom.Atom]bool{
	atom.B: true, atom.Strong: true, atom.I: true, atom.Em: true,
	atom.U: true, atom.S: true, atom.Sup: true, atom.Sub: true,
	atom.Span: true, atom.Br: true,
}

var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Li: true, atom.Blockquote: true,
	atom.Pre: true, atom.Tr: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Table: true, atom.Ul: true, atom.Ol: true,
}

// Block is one paragraph worth of inline HTML.
type Block struct {
	// Heading is 1..6 for h1..h6, 0 otherwise.
	Heading int
	HTML    string
}

// SplitBlocks parses an HTML document or fragment and returns its
// top-level text blocks in document order. Inline formatting supported by
// go-stencil is kept; other markup is reduced to its text.
// Script, style and head content is dropped. Empty blocks are skipped.
func SplitBlocks(markup string) ([]Block, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var (
		blocks  []Block
		current bytes.Buffer
		heading int
	)
	flush := func() {
		text := strings.TrimSpace(current.String())
		if text != "" {
			blocks = append(blocks, Block{Heading: heading, HTML: text})
		}
		current.Reset()
		heading = 0
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current.WriteString(html.EscapeString(collapseSpace(n.Data)))
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Head, atom.Template:
				return
			}
			if blockTags[n.DataAtom] {
				flush()
				if lvl := headingLevel(n.DataAtom); lvl > 0 {
					heading = lvl
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				flush()
				return
			}
			if inlineTags[n.DataAtom] {
				if n.DataAtom == atom.Br {
					current.WriteString("<br>")
					return
				}
				current.WriteString("<" + n.Data + ">")
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				current.WriteString("</" + n.Data + ">")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	flush()

	return blocks, nil
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// collapseSpace folds whitespace runs to one space, keeping a single
// leading or trailing space so adjacent inline nodes stay separated.
func collapseSpace(s string) string {
	if s == "" {
		return ""
	}
	if strings.TrimSpace(s) == "" {
		return " "
	}
	out := strings.Join(strings.Fields(s), " ")
	if unicode.IsSpace(rune(s[0])) {
		out = " " + out
	}
	if unicode.IsSpace(rune(s[len(s)-1])) {
		out += " "
	}
	return out
}
