package markdown

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skridlevsky/pkmthulhu/types"
)

func propBlock(id int, props map[string]any, order ...string) *types.Block {
	return &types.Block{
		ID:            id,
		Properties:    props,
		PropertyOrder: order,
		PageProperty:  true,
	}
}

func TestExtractProperties_Defaults(t *testing.T) {
	blocks := blockMap(
		blk(1, 0, 0, 0, "Regular content"),
		propBlock(2, map[string]any{
			"alias":  []any{"test"},
			"author": []any{"Ronie Uliana", "John Doe"},
		}, "alias", "author"),
		blk(3, 0, 2, 2, "Another regular block"),
	)

	lines, remaining := ExtractProperties(blocks, nil, nil)

	require.Equal(t, []string{"alias:: test", "author:: Ronie Uliana, John Doe"}, lines)

	require.Len(t, remaining, 2)
	assert.Contains(t, remaining, 1)
	assert.Contains(t, remaining, 3)
	assert.NotContains(t, remaining, 2)
}

func TestExtractProperties_ScalarValue(t *testing.T) {
	blocks := blockMap(propBlock(1, map[string]any{"status": "active"}))

	lines, remaining := ExtractProperties(blocks, nil, nil)

	assert.Equal(t, []string{"status:: active"}, lines)
	assert.Empty(t, remaining)
}

func TestExtractProperties_NonPagePropertyPassesThrough(t *testing.T) {
	// Carries properties but is not the page's designated property block.
	b := blk(1, 0, 0, 0, "status:: active")
	b.Properties = map[string]any{"status": "active"}
	blocks := blockMap(b)

	lines, remaining := ExtractProperties(blocks, nil, nil)

	assert.Empty(t, lines)
	assert.Len(t, remaining, 1)
}

func TestExtractProperties_EmptyPropertiesPassesThrough(t *testing.T) {
	b := blk(1, 0, 0, 0, "content")
	b.PageProperty = true
	blocks := blockMap(b)

	lines, remaining := ExtractProperties(blocks, nil, nil)

	assert.Empty(t, lines)
	assert.Len(t, remaining, 1)
}

func TestExtractProperties_Empty(t *testing.T) {
	lines, remaining := ExtractProperties(map[int]*types.Block{}, nil, nil)
	assert.Empty(t, lines)
	assert.Empty(t, remaining)
}

func TestExtractProperties_MultiplePropertyBlocks(t *testing.T) {
	// Should not normally occur, but must not break: blocks contribute in
	// ascending id order.
	blocks := blockMap(
		propBlock(20, map[string]any{"b": "2"}),
		propBlock(10, map[string]any{"a": "1"}),
	)

	lines, remaining := ExtractProperties(blocks, nil, nil)

	assert.Equal(t, []string{"a:: 1", "b:: 2"}, lines)
	assert.Empty(t, remaining)
}

func TestExtractProperties_KeysFollowPropertiesOrder(t *testing.T) {
	blocks := blockMap(propBlock(1, map[string]any{
		"zeta":  "z",
		"alpha": "a",
		"mid":   "m",
	}, "zeta", "mid", "alpha"))

	lines, _ := ExtractProperties(blocks, nil, nil)
	assert.Equal(t, []string{"zeta:: z", "mid:: m", "alpha:: a"}, lines)
}

func TestExtractProperties_NoOrderFallsBackToSortedKeys(t *testing.T) {
	blocks := blockMap(propBlock(1, map[string]any{
		"zeta":  "z",
		"alpha": "a",
	}))

	lines, _ := ExtractProperties(blocks, nil, nil)
	assert.Equal(t, []string{"alpha:: a", "zeta:: z"}, lines)
}

func TestExtractProperties_CustomStrategy(t *testing.T) {
	b := blk(7, 0, 0, 0, "tagged")
	b.Properties = map[string]any{"tags": []any{"go", "pkm"}}
	blocks := blockMap(b, propBlock(8, map[string]any{"alias": "other"}))

	// Match on any block with properties, render uppercase keys.
	match := func(b *types.Block) bool { return len(b.Properties) > 0 }
	format := func(key string, value any) string {
		return fmt.Sprintf("%s=%v", strings.ToUpper(key), value)
	}

	lines, remaining := ExtractProperties(blocks, match, format)

	require.Len(t, lines, 2)
	assert.Equal(t, "TAGS=[go pkm]", lines[0])
	assert.Equal(t, "ALIAS=other", lines[1])
	assert.Empty(t, remaining)
}
