package markdown

import (
	"strings"

	"github.com/skridlevsky/pkmthulhu/types"
)

// RenderPage assembles the Markdown document for one page: level-1 heading,
// properties section (when any lines exist), then the ordered block tree.
// A page with neither renders as just the heading line.
func RenderPage(page *types.Page, propertyLines []string, tree []*types.Block) string {
	sections := []string{"# " + page.OriginalName, ""}

	if len(propertyLines) > 0 {
		sections = append(sections, "properties:")
		for _, line := range propertyLines {
			sections = append(sections, "- "+line)
		}
		sections = append(sections, "")
	}

	if body := renderBlocks(tree); body != "" {
		sections = append(sections, body)
	}

	return strings.Join(sections, "\n")
}

// renderBlocks renders an ordered forest of top-level blocks, "" when empty.
func renderBlocks(tree []*types.Block) string {
	if len(tree) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tree))
	for _, b := range tree {
		parts = append(parts, renderBlock(b, 0))
	}
	return strings.Join(parts, "\n") + "\n"
}

// renderBlock formats one block and its children as list items indented two
// spaces per nesting level. Content containing a fenced code span is emitted
// line by line so the fences align under the bullet; all other content is
// kept byte-for-byte after the bullet marker, embedded newlines included.
func renderBlock(b *types.Block, level int) string {
	indent := strings.Repeat("  ", level)
	var lines []string

	if strings.Contains(b.Content, "```") {
		contentLines := strings.Split(b.Content, "\n")
		lines = append(lines, indent+"- "+contentLines[0])
		for _, line := range contentLines[1:] {
			lines = append(lines, indent+"  "+line)
		}
	} else {
		lines = append(lines, indent+"- "+b.Content)
	}

	for _, child := range b.Children {
		lines = append(lines, renderBlock(child, level+1))
	}

	return strings.Join(lines, "\n")
}
