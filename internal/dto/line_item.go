package dto

import (
	"github.com/goldloom/jewelshop_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one article line on an incoming bill, purchase or
// return. Older desktop clients send camelCase keys; the alternate fields
// capture those and Resolve prefers the canonical snake_case spelling.
type LineItemRequest struct {
	Name    string           `json:"name"`
	ItemAlt string           `json:"itemName"`
	Pcs     int              `json:"pcs"`
	Qty     decimal.Decimal  `json:"quantity"`
	QtyAlt  *decimal.Decimal `json:"qty"`
	Weight  decimal.Decimal  `json:"weight"`
	Rate    decimal.Decimal  `json:"rate"`
	Amount  decimal.Decimal  `json:"amount"`
	Taxable bool             `json:"taxable"`
}

// Resolve converts the request line to its domain form, applying the
// alternate-name preferences.
func (r LineItemRequest) Resolve() domain.LineItem {
	name := r.Name
	if name == "" {
		name = r.ItemAlt
	}
	qty := r.Qty
	if qty.IsZero() && r.QtyAlt != nil {
		qty = *r.QtyAlt
	}
	return domain.LineItem{
		ItemID:   uuid.NewString(),
		Name:     name,
		Pcs:      r.Pcs,
		Quantity: qty,
		Weight:   r.Weight,
		Rate:     r.Rate,
		Amount:   r.Amount,
		Taxable:  r.Taxable,
	}
}

// ResolveLineItems maps a slice of request lines to domain lines.
func ResolveLineItems(items []LineItemRequest) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		out[i] = it.Resolve()
	}
	return out
}

// firstNonEmpty returns a unless it is empty, otherwise b.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// firstNonZero returns a unless it is zero, otherwise the alternate value
// when present.
func firstNonZero(a decimal.Decimal, alt *decimal.Decimal) decimal.Decimal {
	if !a.IsZero() || alt == nil {
		return a
	}
	return *alt
}
