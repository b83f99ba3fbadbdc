package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks bare JSON numbers for monetary fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a read-only snapshot of a catalog entry. The Catalog Service
// owns the record; the terminal only caches it.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
