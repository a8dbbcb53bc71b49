package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one pending order position. Serving size and price are copied from
// the catalog at add time, so later catalog changes never alter a pending
// order. Price is nil when the menu export carried no price column.
type Line struct {
	Item        string           `json:"item"`
	Quantity    int              `json:"quantity"`
	ServingSize string           `json:"serving_size"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// Finalized is the immutable snapshot written to the order store when a
// ledger is confirmed.
type Finalized struct {
	Timestamp time.Time       `json:"timestamp"`
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}
