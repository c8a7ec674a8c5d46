package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skridlevsky/pkmthulhu/backend"
	"github.com/skridlevsky/pkmthulhu/markdown"
	"github.com/skridlevsky/pkmthulhu/types"
)

// defaultMarkers are the task states considered "open".
var defaultMarkers = []string{"TODO", "DOING"}

// Tasks implements the task MCP tools.
type Tasks struct {
	client backend.Backend
}

// NewTasks creates a new Tasks tool handler.
func NewTasks(c backend.Backend) *Tasks {
	return &Tasks{client: c}
}

// TodoItems retrieves task blocks as Markdown, grouped per page. Markers
// default to TODO and DOING.
func (t *Tasks) TodoItems(ctx context.Context, req *mcp.CallToolRequest, input types.TodoItemsInput) (*mcp.CallToolResult, any, error) {
	markers := input.Markers
	if len(markers) == 0 {
		markers = defaultMarkers
	}
	for i, m := range markers {
		markers[i] = strings.ToUpper(m)
	}

	records, err := t.client.Q(ctx, "(task "+strings.Join(markers, " ")+")")
	if err != nil {
		return errorResult(fmt.Sprintf("fetch tasks: %v", err)), nil, nil
	}

	md, err := markdown.PageToMarkdown(records)
	if err != nil {
		return errorResult(fmt.Sprintf("convert tasks: %v", err)), nil, nil
	}
	return textResult(md), nil, nil
}
