package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skridlevsky/pkmthulhu/backend"
	"github.com/skridlevsky/pkmthulhu/markdown"
	"github.com/skridlevsky/pkmthulhu/types"
)

// Journal implements journal MCP tools.
type Journal struct {
	client backend.Backend
}

// NewJournal creates a new Journal tool handler.
func NewJournal(c backend.Backend) *Journal {
	return &Journal{client: c}
}

// JournalNotes retrieves journal entries in a date range as Markdown.
func (j *Journal) JournalNotes(ctx context.Context, req *mcp.CallToolRequest, input types.JournalNotesInput) (*mcp.CallToolResult, any, error) {
	from, err := time.Parse("2006-01-02", input.From)
	if err != nil {
		return errorResult(fmt.Sprintf("invalid from date '%s': use YYYY-MM-DD format", input.From)), nil, nil
	}

	to, err := time.Parse("2006-01-02", input.To)
	if err != nil {
		return errorResult(fmt.Sprintf("invalid to date '%s': use YYYY-MM-DD format", input.To)), nil, nil
	}

	if to.Before(from) {
		return errorResult("'to' date must be after 'from' date"), nil, nil
	}

	dsl := fmt.Sprintf("(between [[%s]] [[%s]])", from.Format("2006-01-02"), to.Format("2006-01-02"))
	records, err := j.client.Q(ctx, dsl)
	if err != nil {
		return errorResult(fmt.Sprintf("fetch journals: %v", err)), nil, nil
	}

	md, err := markdown.PageToMarkdown(records)
	if err != nil {
		return errorResult(fmt.Sprintf("convert journals: %v", err)), nil, nil
	}
	return textResult(md), nil, nil
}
