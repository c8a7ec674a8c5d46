package markdown

import (
	"sort"

	"github.com/skridlevsky/pkmthulhu/types"
)

// BuildTree returns the blocks whose ParentID equals rootID, ordered by the
// left-id sibling chain, with Children populated recursively. Blocks whose
// parent resolves to nothing never appear in any tree.
func BuildTree(blocks map[int]*types.Block, rootID int) []*types.Block {
	candidates := childrenOf(blocks, rootID)
	if len(candidates) == 0 {
		return nil
	}

	ordered := orderSiblings(candidates, rootID)

	for _, b := range ordered {
		b.Children = BuildTree(blocks, b.ID)
	}
	return ordered
}

// childrenOf collects blocks parented at id, in input (Seq) order.
func childrenOf(blocks map[int]*types.Block, id int) []*types.Block {
	var out []*types.Block
	for _, b := range blocks {
		if b.ParentID == id {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// orderSiblings walks the left-id chain starting from the head (the
// candidate whose LeftID equals rootID). A missing head, broken link or
// cycle degrades to input order for whatever cannot be placed; the placed
// set guarantees termination in at most len(candidates) steps.
func orderSiblings(candidates []*types.Block, rootID int) []*types.Block {
	ordered := make([]*types.Block, 0, len(candidates))
	placed := make(map[int]bool, len(candidates))

	currentID := rootID
	for len(ordered) < len(candidates) {
		var next *types.Block
		for _, c := range candidates {
			if !placed[c.ID] && c.LeftID == currentID {
				next = c
				break
			}
		}
		if next == nil {
			for _, c := range candidates {
				if !placed[c.ID] {
					ordered = append(ordered, c)
					placed[c.ID] = true
				}
			}
			break
		}
		ordered = append(ordered, next)
		placed[next.ID] = true
		currentID = next.ID
	}

	return ordered
}
