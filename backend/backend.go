// Package backend defines the interface between tool handlers and the
// knowledge base transport.
package backend

import (
	"context"

	"github.com/skridlevsky/pkmthulhu/types"
)

// Backend is the interface tool handlers use to reach the knowledge base.
// The Logseq client (client.Client) satisfies it; tests substitute fakes.
type Backend interface {
	// Q executes a Logseq DSL query and returns the flat block records it
	// matches.
	Q(ctx context.Context, dsl string) ([]types.BlockEntity, error)

	// Ping reports whether the knowledge base API is reachable.
	Ping(ctx context.Context) error
}
