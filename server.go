package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skridlevsky/pkmthulhu/backend"
	"github.com/skridlevsky/pkmthulhu/tools"
)

// newServer creates and configures the MCP server with all tools registered.
func newServer(b backend.Backend) *mcp.Server {
	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pkmthulhu",
			Version: version,
		},
		nil,
	)

	notes := tools.NewNotes(b)
	journal := tools.NewJournal(b)
	tasks := tools.NewTasks(b)
	related := tools.NewRelated(b)

	// The guide is exposed as a resource so clients can read it before
	// calling any tool.
	srv.AddResource(&mcp.Resource{
		URI:         "logseq://guide",
		Name:        "guide",
		Description: "Initial instructions on how to interact with this knowledge base. Before any other interaction, read this first.",
		MIMEType:    "text/markdown",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		md, err := notes.Guide(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch guide: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "text/markdown", Text: md},
			},
		}, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "personal_notes",
		Description: "Retrieve personal notes from Logseq by topic. Returns everything tagged with the given topics as a nested markdown list; falls back to full-text search when no tag matches. The markdown contains [[topic]] links — follow them with further calls to get more information. An empty topic list returns the guide on how to use the knowledge base.",
	}, notes.PersonalNotes)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "todo_items",
		Description: "Retrieve open task blocks (TODO, DOING by default) from the knowledge base as markdown, grouped per page. Pass markers to select other task states.",
	}, tasks.TodoItems)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "journal_notes",
		Description: "Retrieve journal entries across a date range as markdown. Dates in YYYY-MM-DD format.",
	}, journal.JournalNotes)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "related_topics",
		Description: "Discover topics adjacent to the given ones: returns the distinct [[links]] and #tags found in the matching notes, excluding the queried topics themselves. Use to walk the topic graph one hop at a time.",
	}, related.RelatedTopics)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "health",
		Description: "Check server status: version and whether the Logseq API is reachable.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
		status := "ok"
		if err := b.Ping(ctx); err != nil {
			status = fmt.Sprintf("error: %v", err)
		}

		data, _ := json.MarshalIndent(map[string]any{
			"status":  status,
			"version": version,
		}, "", "  ")

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil, nil
	})

	return srv
}
