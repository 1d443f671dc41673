package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. Stock is nil for products that are not
// stock-tracked (made to order); those never block a sale and are never
// decremented.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       *int64          `json:"stock"`
	Description string          `json:"description,omitempty"`
}

// HasStock reports whether the product can cover the requested quantity.
func (p *Product) HasStock(quantity int64) bool {
	return p.Stock == nil || *p.Stock >= quantity
}
