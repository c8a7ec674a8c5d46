package types

import (
	"encoding/json"
	"fmt"
)

// BlockEntity is a raw block record as returned by the Logseq HTTP API.
// Page, Left and Parent are pointers so a missing field is distinguishable
// from a zero id during normalization.
type BlockEntity struct {
	ID              int            `json:"id"`
	UUID            string         `json:"uuid,omitempty"`
	Content         string         `json:"content"`
	Format          string         `json:"format,omitempty"`
	Page            *PageRef       `json:"page,omitempty"`
	Left            *BlockRef      `json:"left,omitempty"`
	Parent          *BlockRef      `json:"parent,omitempty"`
	Properties      map[string]any `json:"properties,omitempty"`
	PropertiesOrder []string       `json:"propertiesOrder,omitempty"`
	PathRefs        []PageRef      `json:"pathRefs,omitempty"`
	PreBlock        bool           `json:"preBlock?,omitempty"`
}

// PageRef is a lightweight page reference embedded in block records.
type PageRef struct {
	ID           int    `json:"id"`
	Name         string `json:"name,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
}

// BlockRef is a lightweight block reference.
type BlockRef struct {
	ID int `json:"id"`
}

// UnmarshalJSON handles Logseq returning PageRef as either {"id": N} or plain N.
func (p *PageRef) UnmarshalJSON(data []byte) error {
	// Try number first (compact form from some API methods)
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		p.ID = id
		return nil
	}
	// Fall back to object form
	type pageRefAlias PageRef
	var alias pageRefAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("PageRef: expected number or object, got %s", string(data))
	}
	*p = PageRef(alias)
	return nil
}

// UnmarshalJSON handles Logseq returning BlockRef as either {"id": N} or plain N.
func (b *BlockRef) UnmarshalJSON(data []byte) error {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		b.ID = id
		return nil
	}
	type blockRefAlias BlockRef
	var alias blockRefAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("BlockRef: expected number or object, got %s", string(data))
	}
	*b = BlockRef(alias)
	return nil
}

// Page is a normalized Logseq page. One instance exists per distinct page id
// in an input batch; fields are never mutated after construction.
type Page struct {
	ID           int
	Name         string
	OriginalName string
}

// Block is a normalized Logseq block. Children is derived state, populated
// exactly once by the tree builder; everything else is read-only after
// normalization.
type Block struct {
	ID       int
	Content  string
	ParentID int
	LeftID   int
	PageID   int

	// Properties holds key:: value metadata; values are either a single
	// value or a list. PropertyOrder preserves the API's propertiesOrder
	// so rendering is deterministic.
	Properties    map[string]any
	PropertyOrder []string

	// PageProperty marks the page's designated property block (preBlock?).
	PageProperty bool

	// Seq is the block's position in the input batch. Sibling ordering falls
	// back to it when the left-id chain is broken.
	Seq int

	Children []*Block
}

// LogseqAPIRequest is the JSON body sent to the Logseq HTTP API.
type LogseqAPIRequest struct {
	Method string `json:"method"`
	Args   []any  `json:"args,omitempty"`
}
