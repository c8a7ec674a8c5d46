package markdown

import (
	"errors"
	"fmt"

	"github.com/skridlevsky/pkmthulhu/types"
)

var (
	// ErrEmptyResponse is reported by Normalize for a zero-record batch.
	// PageToMarkdown treats the same case as "" instead of an error.
	ErrEmptyResponse = errors.New("empty response")

	// ErrMalformedRecord is reported when a record lacks a required
	// nested field (page, parent or left reference).
	ErrMalformedRecord = errors.New("malformed block record")
)

// Normalize converts raw API block records into one Page per distinct page
// referenced (ordered by first appearance) and a map from block id to Block.
// A page is registered the first time any block references it; later blocks
// reuse the existing Page without overwriting its fields.
func Normalize(records []types.BlockEntity) ([]*types.Page, map[int]*types.Block, error) {
	if len(records) == 0 {
		return nil, nil, ErrEmptyResponse
	}

	var pages []*types.Page
	byID := make(map[int]*types.Page)
	blocks := make(map[int]*types.Block, len(records))

	for i, rec := range records {
		if err := validateRecord(rec); err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", i, err)
		}

		if _, ok := byID[rec.Page.ID]; !ok {
			page := &types.Page{
				ID:           rec.Page.ID,
				Name:         rec.Page.Name,
				OriginalName: rec.Page.OriginalName,
			}
			byID[page.ID] = page
			pages = append(pages, page)
		}

		blocks[rec.ID] = &types.Block{
			ID:            rec.ID,
			Content:       rec.Content,
			ParentID:      rec.Parent.ID,
			LeftID:        rec.Left.ID,
			PageID:        rec.Page.ID,
			Properties:    rec.Properties,
			PropertyOrder: rec.PropertiesOrder,
			PageProperty:  rec.PreBlock,
			Seq:           i,
		}
	}

	return pages, blocks, nil
}

func validateRecord(rec types.BlockEntity) error {
	switch {
	case rec.Page == nil:
		return fmt.Errorf("%w: missing page", ErrMalformedRecord)
	case rec.Page.Name == "" || rec.Page.OriginalName == "":
		return fmt.Errorf("%w: incomplete page reference", ErrMalformedRecord)
	case rec.Parent == nil:
		return fmt.Errorf("%w: missing parent", ErrMalformedRecord)
	case rec.Left == nil:
		return fmt.Errorf("%w: missing left", ErrMalformedRecord)
	}
	return nil
}
