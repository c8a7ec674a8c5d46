package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skridlevsky/pkmthulhu/backend"
	"github.com/skridlevsky/pkmthulhu/parser"
	"github.com/skridlevsky/pkmthulhu/types"
)

// Related implements the topic graph MCP tools.
type Related struct {
	client backend.Backend
}

// NewRelated creates a new Related tool handler.
func NewRelated(c backend.Backend) *Related {
	return &Related{client: c}
}

// RelatedTopics scans the notes tagged with the given topics and returns the
// distinct [[links]] and #tags found in them, so a caller can walk the topic
// graph one hop at a time. The queried topics themselves are excluded.
func (r *Related) RelatedTopics(ctx context.Context, req *mcp.CallToolRequest, input types.RelatedTopicsInput) (*mcp.CallToolResult, any, error) {
	if len(input.Topics) == 0 {
		return errorResult("at least one topic is required"), nil, nil
	}

	records, err := r.client.Q(ctx, topicQuery(input.Topics, true))
	if err != nil {
		return errorResult(fmt.Sprintf("fetch notes: %v", err)), nil, nil
	}

	queried := make(map[string]bool, len(input.Topics))
	for _, t := range input.Topics {
		queried[strings.ToLower(t)] = true
	}

	var links, tags []string
	seenLink := make(map[string]bool)
	seenTag := make(map[string]bool)

	for _, rec := range records {
		for _, link := range parser.Links(rec.Content) {
			key := strings.ToLower(link)
			if !queried[key] && !seenLink[key] {
				links = append(links, link)
				seenLink[key] = true
			}
		}
		for _, tag := range parser.Tags(rec.Content) {
			key := strings.ToLower(tag)
			if !queried[key] && !seenTag[key] {
				tags = append(tags, tag)
				seenTag[key] = true
			}
		}
	}

	res, err := jsonTextResult(map[string]any{
		"topics": input.Topics,
		"links":  links,
		"tags":   tags,
	})
	return res, nil, err
}
