package catalog

import "github.com/shopspring/decimal"

// MenuItem is one validated row of the menu source. The price column only
// exists in newer menu exports, so HasPrice tracks whether it was present.
type MenuItem struct {
	Category    string
	Name        string
	ServingSize string
	Price       decimal.Decimal
	HasPrice    bool
}
