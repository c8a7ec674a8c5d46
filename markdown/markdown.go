// Package markdown converts the flat, relationally-linked block lists
// returned by the Logseq HTTP API into nested Markdown documents.
//
// The pipeline has four stages: Normalize turns raw records into typed
// pages and blocks, ExtractProperties splits off page-level key:: value
// metadata, BuildTree recovers the sibling order encoded in each block's
// left-id chain, and RenderPage serializes the result. PageToMarkdown
// runs all four for every page in the batch.
package markdown

import (
	"sort"
	"strings"

	"github.com/skridlevsky/pkmthulhu/types"
)

// PageToMarkdown converts a raw Logseq API response into Markdown. An empty
// batch yields "" (unlike Normalize, which reports ErrEmptyResponse); a
// malformed record propagates as an error. Pages are emitted newest first
// (descending id, since Logseq ids grow monotonically) and joined with a
// blank line.
func PageToMarkdown(records []types.BlockEntity) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	pages, blocks, err := Normalize(records)
	if err != nil {
		return "", err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].ID > pages[j].ID })

	docs := make([]string, 0, len(pages))
	for _, page := range pages {
		own := make(map[int]*types.Block)
		for id, b := range blocks {
			if b.PageID == page.ID {
				own[id] = b
			}
		}

		lines, remaining := ExtractProperties(own, nil, nil)
		tree := BuildTree(remaining, page.ID)
		docs = append(docs, RenderPage(page, lines, tree))
	}

	return strings.Join(docs, "\n\n"), nil
}
