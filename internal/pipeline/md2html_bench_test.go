//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkGoldmarkToHTMLBySize benchmarks Markdown template conversion by size.
func BenchmarkGoldmarkToHTMLBySize(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	for _, size := range []int{1, 10, 100} {
		content := generateMarkdown(size)
		b.Run(fmt.Sprintf("sections_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSplitBlocks benchmarks HTML block extraction for DOCX output.
func BenchmarkSplitBlocks(b *testing.B) {
	markup := strings.Repeat("<h2>Item</h2><p>Hello <b>{{ name }}</b>, total {{total}}.</p>", 100)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := SplitBlocks(markup); err != nil {
			b.Fatal(err)
		}
	}
}

func generateMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Report\n\n")
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\nDear {{ name }}, paragraph %d.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n", i, i)
	}
	return sb.String()
}
