// Package ingest turns markdown journals into ordered sequences of
// timestamped conversation entries.
package ingest

import (
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/sandevgo/mnemo/internal/core"
)

const extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock

// Parse walks the markdown AST, tracking the heading chain as section
// context. List items become entries (with a parsed timestamp when one
// prefixes the text); prose paragraphs accumulate into the enclosing
// section's context. Parsing never fails for well-formed UTF-8 text.
func Parse(path, text string) *core.Document {
	doc := &core.Document{Path: path}

	// parser instances are single-use
	p := parser.NewWithExtensions(extensions)
	root := p.Parse([]byte(text))

	type heading struct {
		level int
		text  string
	}
	var chain []heading
	var prose []string

	sectionContext := func() string {
		parts := make([]string, 0, len(chain)+1)
		for _, h := range chain {
			parts = append(parts, h.text)
		}
		if len(prose) > 0 {
			parts = append(parts, strings.Join(prose, " "))
		}
		return strings.Join(parts, " > ")
	}

	for _, node := range root.GetChildren() {
		switch n := node.(type) {
		case *ast.Heading:
			title := nodeText(n)
			for len(chain) > 0 && chain[len(chain)-1].level >= n.Level {
				chain = chain[:len(chain)-1]
			}
			chain = append(chain, heading{level: n.Level, text: title})
			prose = nil
			if n.Level == 1 && doc.Title == "" {
				doc.Title = title
			}
		case *ast.List:
			collectEntries(n, sectionContext(), &doc.Entries)
		default:
			if line := nodeText(node); line != "" {
				prose = append(prose, line)
			}
		}
	}

	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc
}

// collectEntries flattens a list (including nested lists) into the
// document's entry sequence, all under the same section context.
func collectEntries(list *ast.List, section string, entries *[]core.ConversationEntry) {
	for _, child := range list.GetChildren() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}

		var own []string
		var nested []*ast.List
		for _, part := range item.GetChildren() {
			if sub, ok := part.(*ast.List); ok {
				nested = append(nested, sub)
				continue
			}
			if text := nodeText(part); text != "" {
				own = append(own, text)
			}
		}

		text := strings.TrimSpace(strings.Join(own, " "))
		if text != "" {
			ts, rest := splitTimestamp(text)
			if rest == "" {
				// Timestamp-only item still marks a moment in time.
				rest = text
			}
			*entries = append(*entries, core.ConversationEntry{
				Timestamp:      ts,
				Text:           rest,
				SectionContext: section,
			})
		}

		// Nested items follow their parent in document order.
		for _, sub := range nested {
			collectEntries(sub, section, entries)
		}
	}
}

// nodeText concatenates the literal text of a node's leaves.
func nodeText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch leaf := n.(type) {
		case *ast.Text:
			b.Write(leaf.Literal)
		case *ast.Code:
			b.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(b.String())
}
