package checkout

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/retailpos/terminal/internal/domain"
)

// State of the checkout cycle. A terminal state is cleared by Acknowledge
// once the UI has shown it; a new checkout may also start directly from a
// terminal state. Only Submitting blocks further checkouts.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Validation errors, detected locally before any network call.
var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrNegativePayment    = errors.New("paid amount cannot be negative")
	ErrCheckoutInProgress = errors.New("a checkout is already in progress")
)

// Ledger submits a finalized sale to the system of record.
type Ledger interface {
	CreateSale(ctx context.Context, req domain.SaleRequest, idempotencyKey string) (*domain.SaleResult, error)
}

// Cart is the slice of the cart store the coordinator consumes.
type Cart interface {
	Snapshot() []domain.CartLine
	Payment() domain.PaymentSelection
	Clear()
}

// Coordinator drives the Idle -> Submitting -> {Succeeded, Failed} cycle
// for the single active cart. At most one checkout is in flight at a time.
type Coordinator struct {
	ledger  Ledger
	cart    Cart
	refresh func(ctx context.Context) error // catalog reload after success; may be nil

	mu         sync.Mutex
	state      State
	lastResult *domain.SaleResult
	lastErr    error
}

func NewCoordinator(ledger Ledger, cart Cart, refresh func(ctx context.Context) error) *Coordinator {
	return &Coordinator{
		ledger:  ledger,
		cart:    cart,
		refresh: refresh,
		state:   StateIdle,
	}
}

// Checkout submits the current cart to the ledger. Preconditions are
// checked synchronously and never reach the network. The ledger is invoked
// exactly once per call: a client-side retry could double-charge the
// customer and double-decrement stock.
func (c *Coordinator) Checkout(ctx context.Context) (*domain.SaleResult, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}

	lines := c.cart.Snapshot()
	payment := c.cart.Payment()
	if len(lines) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}
	if payment.PaidAmount.Sign() < 0 {
		c.mu.Unlock()
		return nil, ErrNegativePayment
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	sale, err := c.ledger.CreateSale(ctx, buildSaleRequest(lines, payment), uuid.NewString())
	if err != nil {
		// The cart stays intact so the operator can adjust and retry.
		c.mu.Lock()
		c.state = StateFailed
		c.lastErr = err
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	c.state = StateSucceeded
	c.lastResult = sale
	c.lastErr = nil
	c.mu.Unlock()

	c.cart.Clear()

	if c.refresh != nil {
		// Fire and forget: the sale is final; a failed refresh only means
		// the operator sees stale stock until the next load.
		go func() {
			if err := c.refresh(context.Background()); err != nil {
				log.Printf("catalog refresh after sale %d failed: %v", sale.ID, err)
			}
		}()
	}
	return sale, nil
}

// State returns the current checkout state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastResult returns the most recent successful sale, if any.
func (c *Coordinator) LastResult() *domain.SaleResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResult
}

// LastError returns the failure reason of the most recent checkout attempt.
func (c *Coordinator) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Acknowledge returns the coordinator to Idle once the UI has observed a
// terminal state, dropping the recorded result and error with it. A no-op
// while Submitting.
func (c *Coordinator) Acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSucceeded || c.state == StateFailed {
		c.state = StateIdle
		c.lastResult = nil
		c.lastErr = nil
	}
}

func buildSaleRequest(lines []domain.CartLine, payment domain.PaymentSelection) domain.SaleRequest {
	items := make([]domain.SaleRequestItem, len(lines))
	for i, line := range lines {
		items[i] = domain.SaleRequestItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		}
	}
	return domain.SaleRequest{
		Items:         items,
		PaymentMethod: payment.Method,
		PaidAmount:    payment.PaidAmount,
	}
}
