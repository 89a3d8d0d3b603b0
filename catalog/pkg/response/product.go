package response

import (
	"github.com/shopspring/decimal"
)

// Product is a read-only catalog snapshot. The client never mutates it.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    int64           `json:"discount"`
	Stock       int64           `json:"stock"`
	Images      []string        `json:"images"`
	Categories  []string        `json:"categories"`
}

// Discounted reports whether a discount badge should be shown.
func (p Product) Discounted() bool {
	return p.Discount > 0
}

// DiscountedPrice is round(price × (1 − discount/100)). A zero discount
// returns the original price untouched.
func (p Product) DiscountedPrice() decimal.Decimal {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price.
		Mul(decimal.NewFromInt(100 - p.Discount)).
		Div(decimal.NewFromInt(100)).
		Round(0)
}
