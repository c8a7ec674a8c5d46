package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skridlevsky/pkmthulhu/types"
)

// PropertyPredicate selects which blocks carry page-level properties.
type PropertyPredicate func(*types.Block) bool

// PropertyFormatter turns one property key/value pair into a display line.
type PropertyFormatter func(key string, value any) string

// IsPageProperty is the default predicate: the block is the page's
// designated property block and actually carries properties.
func IsPageProperty(b *types.Block) bool {
	return b.PageProperty && len(b.Properties) > 0
}

// FormatProperty is the default formatter: list values joined with ", ",
// rendered as "key:: value".
func FormatProperty(key string, value any) string {
	return fmt.Sprintf("%s:: %s", key, propertyValue(value))
}

func propertyValue(value any) string {
	switch list := value.(type) {
	case []any:
		parts := make([]string, len(list))
		for i, v := range list {
			parts[i] = fmt.Sprint(v)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(list, ", ")
	default:
		return fmt.Sprint(value)
	}
}

// ExtractProperties partitions blocks into formatted page-property lines and
// the remaining content blocks. A nil predicate or formatter selects the
// default. Matched blocks contribute lines in ascending block-id order;
// everything else passes through untouched.
func ExtractProperties(blocks map[int]*types.Block, match PropertyPredicate, format PropertyFormatter) ([]string, map[int]*types.Block) {
	if match == nil {
		match = IsPageProperty
	}
	if format == nil {
		format = FormatProperty
	}

	var lines []string
	remaining := make(map[int]*types.Block, len(blocks))

	for _, id := range sortedIDs(blocks) {
		b := blocks[id]
		if !match(b) {
			remaining[id] = b
			continue
		}
		for _, key := range propertyKeys(b) {
			lines = append(lines, format(key, b.Properties[key]))
		}
	}

	return lines, remaining
}

// propertyKeys returns the block's property keys in the API's
// propertiesOrder when present, any stragglers sorted after it.
func propertyKeys(b *types.Block) []string {
	keys := make([]string, 0, len(b.Properties))
	used := make(map[string]bool, len(b.Properties))
	for _, k := range b.PropertyOrder {
		if _, ok := b.Properties[k]; ok && !used[k] {
			keys = append(keys, k)
			used[k] = true
		}
	}

	var rest []string
	for k := range b.Properties {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}

func sortedIDs(blocks map[int]*types.Block) []int {
	ids := make([]int, 0, len(blocks))
	for id := range blocks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
