package model

import "github.com/shopspring/decimal"

type Product struct {
	ID       int64           `db:"id" json:"id"`
	Name     string          `db:"name" json:"name"`
	SKU      string          `db:"sku" json:"sku"`
	Price    decimal.Decimal `db:"price" json:"price"`
	Stock    int             `db:"stock" json:"stock"` // Sum of inventory quantities, computed by the backend
	IsBundle bool            `db:"is_bundle" json:"is_bundle"`
}

// ProductInput is the write payload for create and update. Price is sent as
// a JSON number.
type ProductInput struct {
	Name     string  `db:"name" json:"name"`
	SKU      string  `db:"sku" json:"sku"`
	Price    float64 `db:"price" json:"price"`
	IsBundle bool    `db:"is_bundle" json:"is_bundle"`
}

// OutOfStock marks rows the list view highlights.
func (p Product) OutOfStock() bool {
	return p.Stock == 0
}
