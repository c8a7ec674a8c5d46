package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skridlevsky/pkmthulhu/backend"
	"github.com/skridlevsky/pkmthulhu/markdown"
	"github.com/skridlevsky/pkmthulhu/types"
)

// GuidePage is the page holding the knowledge base's own usage instructions.
const GuidePage = "MCP PKM Logseq"

// Notes implements the note retrieval MCP tools.
type Notes struct {
	client backend.Backend
}

// NewNotes creates a new Notes tool handler.
func NewNotes(c backend.Backend) *Notes {
	return &Notes{client: c}
}

// PersonalNotes retrieves notes tagged with any of the given topics as
// Markdown. When no tag matches, it retries as a full-text search. An empty
// topic list returns the guide instead.
func (n *Notes) PersonalNotes(ctx context.Context, req *mcp.CallToolRequest, input types.PersonalNotesInput) (*mcp.CallToolResult, any, error) {
	if len(input.Topics) == 0 {
		md, err := n.Guide(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("fetch guide: %v", err)), nil, nil
		}
		return textResult(md), nil, nil
	}

	md, err := n.TopicMarkdown(ctx, input.Topics)
	if err != nil {
		return errorResult(fmt.Sprintf("fetch notes: %v", err)), nil, nil
	}
	return textResult(md), nil, nil
}

// Guide fetches the usage instructions page as Markdown.
func (n *Notes) Guide(ctx context.Context) (string, error) {
	return n.PageMarkdown(ctx, GuidePage)
}

// PageMarkdown fetches a single page by name and converts it to Markdown.
func (n *Notes) PageMarkdown(ctx context.Context, name string) (string, error) {
	return n.queryMarkdown(ctx, fmt.Sprintf("(page %q)", name))
}

// TopicMarkdown fetches everything tagged with any of the topics. Topics not
// found by tag are retried as full-text terms, matching how people mix
// [[references]] and plain mentions in their notes.
func (n *Notes) TopicMarkdown(ctx context.Context, topics []string) (string, error) {
	md, err := n.queryMarkdown(ctx, topicQuery(topics, true))
	if err != nil || md != "" {
		return md, err
	}
	return n.queryMarkdown(ctx, topicQuery(topics, false))
}

// queryMarkdown runs a DSL query and converts the response to Markdown.
func (n *Notes) queryMarkdown(ctx context.Context, dsl string) (string, error) {
	records, err := n.client.Q(ctx, dsl)
	if err != nil {
		return "", err
	}
	return markdown.PageToMarkdown(records)
}

// topicQuery builds an (or ...) DSL query over topics, either as tag
// references or as quoted full-text terms.
func topicQuery(topics []string, asTags bool) string {
	terms := make([]string, len(topics))
	for i, topic := range topics {
		if asTags {
			terms[i] = "[[" + topic + "]]"
		} else {
			terms[i] = strconv.Quote(topic)
		}
	}
	return "(or " + strings.Join(terms, " ") + ")"
}
