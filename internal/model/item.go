package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Item is one URL admitted into a batch, together with its identity.
// Duplicate URLs become distinct items and are processed independently.
type Item struct {
	ID  string
	URL string
}

// NewItem wraps a URL into an Item with a fresh ID
func NewItem(url string) Item {
	return Item{
		ID:  generateItemID(),
		URL: url,
	}
}

// ItemResult is the collected terminal state of one item
type ItemResult struct {
	Item    Item
	Outcome Outcome
	Reason  string // failure cause, set when Outcome is OutcomeFailed
	Title   string // resolved media title, when known
	// OutputDir is the per-item destination directory created in video
	// mode, empty otherwise
	OutputDir string
}

// ItemIDPrefix is prepended to generated item IDs
const ItemIDPrefix = "item-"

// generateItemID generates a unique item ID.
// UUID v7 includes a timestamp, so IDs sort chronologically.
func generateItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(ItemIDPrefix+"%d", time.Now().UnixNano())
	}
	return ItemIDPrefix + id.String()
}
