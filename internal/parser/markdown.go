// Package parser handles parsing markdown documents and extracting link targets.
package parser

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// LinkKind identifies the markdown construct a link target came from.
type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
)

// Link is a single link target extracted from a document.
type Link struct {
	// Destination is the raw target string, exactly as written (still
	// percent-encoded, fragment included).
	Destination string
	Kind        LinkKind
	// Line is the 1-indexed line of the enclosing block. Inline nodes don't
	// carry their own source positions, so this is the best available anchor.
	Line int
}

// ExtractOptions controls link extraction.
type ExtractOptions struct {
	// IncludeImages also collects image destinations.
	IncludeImages bool
	// StartLine is the 1-indexed line the parsed content begins at in the
	// original file (used when frontmatter was stripped). Zero means 1.
	StartLine int
}

// md is the shared parser instance. The dialect is fixed: tables and
// autolinking on, everything else default.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Linkify,
	),
)

// Parse parses markdown content into a syntax tree. Parsing is total: goldmark
// never fails on arbitrary input, it degrades to text nodes.
func Parse(source []byte) ast.Node {
	return md.Parser().Parse(text.NewReader(source))
}

// ExtractLinks walks the tree pre-order (depth-first, left-to-right) and
// collects every link destination in document order. A link's display text is
// never searched for further links; all other node kinds recurse normally.
// Code spans and code blocks are opaque text to the parser, so they contribute
// nothing here.
func ExtractLinks(doc ast.Node, source []byte, opts ExtractOptions) []Link {
	startLine := opts.StartLine
	if startLine < 1 {
		startLine = 1
	}
	lineStarts := computeLineStarts(string(source))

	var links []Link
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Link:
			links = append(links, Link{
				Destination: string(node.Destination),
				Kind:        LinkKindInline,
				Line:        startLine + blockLine(n, lineStarts),
			})
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			links = append(links, Link{
				Destination: string(node.URL(source)),
				Kind:        LinkKindAuto,
				Line:        startLine + blockLine(n, lineStarts),
			})
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			if opts.IncludeImages {
				links = append(links, Link{
					Destination: string(node.Destination),
					Kind:        LinkKindImage,
					Line:        startLine + blockLine(n, lineStarts),
				})
				// Alt text becomes display text, same rule as links.
				return ast.WalkSkipChildren, nil
			}
			// Not collecting images: alt text may still contain links.
			return ast.WalkContinue, nil
		}

		return ast.WalkContinue, nil
	})

	return links
}

// blockLine returns the 0-indexed line of the nearest ancestor block that has
// source segments.
func blockLine(n ast.Node, lineStarts []int) int {
	for b := n; b != nil; b = b.Parent() {
		if b.Type() == ast.TypeBlock && b.Lines().Len() > 0 {
			return offsetToLine(lineStarts, b.Lines().At(0).Start)
		}
	}
	return 0
}

// computeLineStarts computes the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
