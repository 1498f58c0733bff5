package chunker

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one occurrence of a numbered markdown heading.
type Heading struct {
	// Text is the full heading line, e.g. "## 1. Background".
	Text string

	// Position is the byte offset of the heading line's start in the
	// document. Headings are returned in ascending position order and
	// never overlap.
	Position int
}

// numberedHeadingRe matches a structural section heading: one to six '#'
// followed by a required numeric label ("1.", "2.3.", "2.3") and heading
// text. Plain headings ("# Title") and horizontal rules lack the label and
// are intentionally excluded — the label is what distinguishes a section
// marker from incidental markdown.
var numberedHeadingRe = regexp.MustCompile(`^ {0,3}#{1,6}\s+\d+(?:\.\d+)*\.?\s+\S`)

// parser is shared; goldmark.Markdown is safe for concurrent Parse calls.
var parser = goldmark.New()

// FindContentHeadings returns the numbered headings of a markdown document,
// ordered by position.
func FindContentHeadings(content string) []Heading {
	source := []byte(content)
	doc := parser.Parser().Parse(text.NewReader(source))

	var headings []Heading
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		// The node's line segment starts after the ATX marker; widen to the
		// full line so the regex sees the '#' prefix and Position points at
		// the line start.
		lineStart := lineStartBefore(source, lines.At(0).Start)
		lineEnd := lineEndAfter(source, lines.At(0).Start)
		line := content[lineStart:lineEnd]

		if !numberedHeadingRe.MatchString(line) {
			return ast.WalkContinue, nil
		}

		headings = append(headings, Heading{
			Text:     strings.TrimRight(line, " \t"),
			Position: lineStart,
		})
		return ast.WalkContinue, nil
	})

	sort.Slice(headings, func(i, j int) bool {
		return headings[i].Position < headings[j].Position
	})
	return headings
}

// lineStartBefore returns the offset just after the previous newline.
func lineStartBefore(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	for i := offset - 1; i >= 0; i-- {
		if source[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// lineEndAfter returns the offset of the next newline, or len(source).
func lineEndAfter(source []byte, offset int) int {
	for i := offset; i < len(source); i++ {
		if source[i] == '\n' {
			return i
		}
	}
	return len(source)
}
