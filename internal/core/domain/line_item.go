package domain

import "github.com/shopspring/decimal"

// LineItem is a single article line on a bill, purchase voucher or return.
// Jewelry stock is tracked both by piece count and by weight in grams; either
// may be zero depending on the article.
type LineItem struct {
	ItemID   string          `json:"itemID"`
	Name     string          `json:"name"`
	Pcs      int             `json:"pcs"`      // piece count, 0 when sold by weight
	Quantity decimal.Decimal `json:"quantity"` // explicit quantity, 0 when Pcs/Weight applies
	Weight   decimal.Decimal `json:"weight"`   // grams
	Rate     decimal.Decimal `json:"rate"`     // unit rate
	Amount   decimal.Decimal `json:"amount"`   // line amount
	Taxable  bool            `json:"taxable"`
}
