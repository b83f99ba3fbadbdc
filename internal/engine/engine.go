package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/retailpos/terminal/internal/cart"
	"github.com/retailpos/terminal/internal/catalog"
	"github.com/retailpos/terminal/internal/checkout"
	"github.com/retailpos/terminal/internal/pricing"
)

// Engine wires the catalog view, cart store, pricing policy and checkout
// coordinator together: the cart publishes change events, pricing keeps the
// paid amount defaulted to the subtotal, and a successful checkout clears
// the cart and refreshes the catalog.
type Engine struct {
	view        *catalog.View
	store       *cart.Store
	coordinator *checkout.Coordinator
}

func New(view *catalog.View, store *cart.Store, ledger checkout.Ledger) *Engine {
	e := &Engine{view: view, store: store}

	e.coordinator = checkout.NewCoordinator(ledger, store, func(ctx context.Context) error {
		_, err := view.Load(ctx)
		return err
	})

	// Auto-fill policy: recompute the paid amount on every cart change.
	// Writing the paid amount does not emit an event, so this cannot loop.
	store.Subscribe(func() {
		lines := store.Snapshot()
		subtotal := pricing.Subtotal(lines)
		current := store.Payment().PaidAmount
		store.SetPaidAmount(pricing.DerivePaidAmount(current, subtotal, len(lines) == 0))
	})

	return e
}

func (e *Engine) Catalog() *catalog.View {
	return e.view
}

func (e *Engine) Cart() *cart.Store {
	return e.store
}

func (e *Engine) Checkout() *checkout.Coordinator {
	return e.coordinator
}

// Subtotal of the current cart.
func (e *Engine) Subtotal() decimal.Decimal {
	return pricing.Subtotal(e.store.Snapshot())
}
