package engine

import "context"

// TooltipFetcher retrieves raw tooltip markup for an item id. A false return
// means the tooltip could not be obtained; the engine treats the item as
// contributing zero stats.
type TooltipFetcher interface {
	Fetch(ctx context.Context, itemID int) (string, bool)
}
