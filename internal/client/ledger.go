package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/retailpos/terminal/internal/domain"
)

// Ledger submits finalized sales to the Ledger Service and reads back
// authoritative records.
type Ledger struct {
	client *Client
}

func NewLedger(c *Client) *Ledger {
	return &Ledger{client: c}
}

// CreateSale posts the sale exactly once. The idempotency key travels as a
// header so the wire body stays the documented {items, payment_method,
// paid_amount} shape.
func (lc *Ledger) CreateSale(ctx context.Context, req domain.SaleRequest, idempotencyKey string) (*domain.SaleResult, error) {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set("Idempotency-Key", idempotencyKey)
	}

	var sale domain.SaleResult
	if err := lc.client.doHeaders(ctx, http.MethodPost, "/sales", header, req, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetSale fetches a sale record for receipt display.
func (lc *Ledger) GetSale(ctx context.Context, id int64) (*domain.SaleResult, error) {
	var sale domain.SaleResult
	if err := lc.client.do(ctx, http.MethodGet, "/sales/"+strconv.FormatInt(id, 10), nil, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}
