package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequestItem carries product id and quantity only. Unit prices are
// deliberately omitted: the Ledger Service prices the sale from its own
// current catalog.
type SaleRequestItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// SaleRequest is the outbound representation of a finalized cart.
type SaleRequest struct {
	Items         []SaleRequestItem `json:"items"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
}

// SaleItem is one priced line of an authoritative sale record.
type SaleItem struct {
	ID          int64           `json:"id"`
	SaleID      int64           `json:"sale_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SaleResult is the record returned by the Ledger Service. It is the source
// of truth for totals and stock decrement; the terminal never recomputes it.
type SaleResult struct {
	ID            int64           `json:"id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []SaleItem      `json:"items,omitempty"`
}
