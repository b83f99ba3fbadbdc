package domain

import "github.com/shopspring/decimal"

// CartLine pairs a product snapshot with the quantity in the cart.
// Quantity is always within [1, Product.Stock] for the snapshot held.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

// Total returns price x quantity for this line.
func (l CartLine) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(l.Quantity))
}
