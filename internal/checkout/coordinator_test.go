package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/terminal/internal/cart"
	"github.com/retailpos/terminal/internal/domain"
)

type mockLedger struct {
	mu    sync.Mutex
	sale  *domain.SaleResult
	err   error
	calls int
	keys  []string
	reqs  []domain.SaleRequest
	block chan struct{} // when set, CreateSale waits until closed
}

func (m *mockLedger) CreateSale(ctx context.Context, req domain.SaleRequest, idempotencyKey string) (*domain.SaleResult, error) {
	m.mu.Lock()
	m.calls++
	m.keys = append(m.keys, idempotencyKey)
	m.reqs = append(m.reqs, req)
	block := m.block
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.sale, nil
}

func (m *mockLedger) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func product(id int64, price float64, stock int64) domain.Product {
	return domain.Product{ID: id, Price: decimal.NewFromFloat(price), Stock: stock}
}

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore()
	store.Add(product(1, 10.00, 5))
	store.Add(product(1, 10.00, 5))
	store.Add(product(2, 5.50, 3))
	store.Add(product(3, 2.25, 8))
	store.SetPaidAmount(decimal.NewFromFloat(30.00))
	return store
}

func TestCheckout_EmptyCart(t *testing.T) {
	ledger := &mockLedger{}
	c := NewCoordinator(ledger, cart.NewStore(), nil)

	_, err := c.Checkout(context.Background())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, ledger.callCount(), "validation errors must not reach the network")
	assert.Equal(t, StateIdle, c.State())
}

func TestCheckout_NegativePayment(t *testing.T) {
	ledger := &mockLedger{}
	store := cart.NewStore()
	store.Add(product(1, 10.00, 5))
	store.SetPaidAmount(decimal.NewFromFloat(-1.00))
	c := NewCoordinator(ledger, store, nil)

	_, err := c.Checkout(context.Background())

	assert.ErrorIs(t, err, ErrNegativePayment)
	assert.Equal(t, 0, ledger.callCount())
	assert.Equal(t, 1, store.Len(), "cart must stay intact")
}

func TestCheckout_Success(t *testing.T) {
	ledger := &mockLedger{
		sale: &domain.SaleResult{ID: 7, TotalAmount: decimal.NewFromFloat(27.75)},
	}
	store := filledCart(t)

	refreshed := make(chan struct{})
	c := NewCoordinator(ledger, store, func(ctx context.Context) error {
		close(refreshed)
		return nil
	})

	sale, err := c.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), sale.ID)
	assert.Equal(t, StateSucceeded, c.State())
	assert.Equal(t, sale, c.LastResult())

	// Cart cleared, payment reset.
	assert.Equal(t, 0, store.Len())
	payment := store.Payment()
	assert.Equal(t, domain.PaymentCash, payment.Method)
	assert.True(t, payment.PaidAmount.IsZero())

	// Catalog refresh fired.
	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("catalog refresh was not triggered")
	}
}

func TestCheckout_RequestShape(t *testing.T) {
	ledger := &mockLedger{sale: &domain.SaleResult{ID: 1}}
	store := filledCart(t)
	require.NoError(t, store.SetPaymentMethod(domain.PaymentCard))
	c := NewCoordinator(ledger, store, nil)

	_, err := c.Checkout(context.Background())
	require.NoError(t, err)

	require.Len(t, ledger.reqs, 1)
	req := ledger.reqs[0]
	require.Len(t, req.Items, 3)
	assert.Equal(t, domain.SaleRequestItem{ProductID: 1, Quantity: 2}, req.Items[0])
	assert.Equal(t, domain.SaleRequestItem{ProductID: 2, Quantity: 1}, req.Items[1])
	assert.Equal(t, domain.SaleRequestItem{ProductID: 3, Quantity: 1}, req.Items[2])
	assert.Equal(t, domain.PaymentCard, req.PaymentMethod)
	assert.True(t, req.PaidAmount.Equal(decimal.NewFromFloat(30.00)))

	require.Len(t, ledger.keys, 1)
	assert.NotEmpty(t, ledger.keys[0], "every submission carries an idempotency key")
}

func TestCheckout_FailureKeepsCartIntact(t *testing.T) {
	serverErr := errors.New("insufficient stock for one or more products")
	ledger := &mockLedger{err: serverErr}
	store := filledCart(t)
	c := NewCoordinator(ledger, store, nil)

	_, err := c.Checkout(context.Background())

	assert.ErrorIs(t, err, serverErr)
	assert.Equal(t, StateFailed, c.State())
	assert.ErrorIs(t, c.LastError(), serverErr)
	assert.Equal(t, 3, store.Len(), "operator must be able to adjust and retry")
}

func TestCheckout_SecondCallWhileSubmitting(t *testing.T) {
	ledger := &mockLedger{
		sale:  &domain.SaleResult{ID: 1},
		block: make(chan struct{}),
	}
	store := filledCart(t)
	c := NewCoordinator(ledger, store, nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.Checkout(context.Background())
		done <- err
	}()

	// Wait for the first checkout to reach the ledger.
	require.Eventually(t, func() bool { return ledger.callCount() == 1 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, StateSubmitting, c.State())

	_, err := c.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(ledger.block)
	require.NoError(t, <-done)

	// Exactly one network call total.
	assert.Equal(t, 1, ledger.callCount())
}

func TestCheckout_RefreshFailureDoesNotReflagSale(t *testing.T) {
	ledger := &mockLedger{sale: &domain.SaleResult{ID: 9}}
	store := filledCart(t)

	refreshed := make(chan struct{})
	c := NewCoordinator(ledger, store, func(ctx context.Context) error {
		close(refreshed)
		return errors.New("catalog unreachable")
	})

	sale, err := c.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), sale.ID)

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("catalog refresh was not triggered")
	}

	// The completed sale stays completed.
	assert.Equal(t, StateSucceeded, c.State())
	assert.NoError(t, c.LastError())
	assert.Equal(t, 0, store.Len())
}

func TestCheckout_AllowedAgainAfterTerminalState(t *testing.T) {
	ledger := &mockLedger{err: errors.New("boom")}
	store := filledCart(t)
	c := NewCoordinator(ledger, store, nil)

	_, err := c.Checkout(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, c.State())

	ledger.mu.Lock()
	ledger.err = nil
	ledger.sale = &domain.SaleResult{ID: 2}
	ledger.mu.Unlock()

	sale, err := c.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), sale.ID)
	assert.Equal(t, 2, ledger.callCount())
}

func TestAcknowledge(t *testing.T) {
	ledger := &mockLedger{sale: &domain.SaleResult{ID: 1}}
	c := NewCoordinator(ledger, filledCart(t), nil)

	_, err := c.Checkout(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateSucceeded, c.State())

	c.Acknowledge()
	assert.Equal(t, StateIdle, c.State())
	assert.Nil(t, c.LastResult())

	// Acknowledge from Idle is a no-op.
	c.Acknowledge()
	assert.Equal(t, StateIdle, c.State())
}

func TestAcknowledge_DropsFailureDetails(t *testing.T) {
	ledger := &mockLedger{err: errors.New("insufficient stock for one or more products")}
	c := NewCoordinator(ledger, filledCart(t), nil)

	_, err := c.Checkout(context.Background())
	require.Error(t, err)
	require.Equal(t, StateFailed, c.State())
	require.Error(t, c.LastError())

	c.Acknowledge()

	// An acknowledged failure must not haunt the next state poll.
	assert.Equal(t, StateIdle, c.State())
	assert.NoError(t, c.LastError())
	assert.Nil(t, c.LastResult())
}
