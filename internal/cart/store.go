package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/retailpos/terminal/internal/domain"
)

// ErrInvalidPaymentMethod is returned for a payment method other than
// cash or card.
var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// Store owns the active cart: an ordered list of line items (insertion
// order = first-add order) plus the operator's payment selection. All
// mutations are synchronous; the stock ceiling is enforced here purely as a
// UX convenience — the Ledger Service revalidates stock at checkout because
// the cached values can be stale relative to other terminals.
type Store struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	payment domain.PaymentSelection
	subs    []func()
}

func NewStore() *Store {
	return &Store{payment: domain.DefaultPayment()}
}

// Subscribe registers a listener invoked after every line mutation.
// Register subscribers at wiring time, before the store is in use.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Add puts one unit of the product in the cart. An existing line is
// incremented, clamped to the product's stock; an add at the ceiling is a
// silent no-op. A new line for an out-of-stock product is also a no-op —
// out-of-stock products are simply not addable. An existing line whose
// refreshed snapshot reports no stock is removed: quantity never drops
// below one while a line exists.
func (s *Store) Add(product domain.Product) {
	s.mu.Lock()
	changed := false
	if i := s.index(product.ID); i >= 0 {
		if product.Stock <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			changed = true
		} else {
			next := s.lines[i].Quantity + 1
			if next > product.Stock {
				next = product.Stock
			}
			if next != s.lines[i].Quantity {
				// Refresh the snapshot along with the quantity so the line's
				// stock ceiling tracks the catalog row the operator clicked.
				s.lines[i].Product = product
				s.lines[i].Quantity = next
				changed = true
			}
		}
	} else if product.Stock > 0 {
		s.lines = append(s.lines, domain.CartLine{Product: product, Quantity: 1})
		changed = true
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// SetQuantity clamps the requested quantity into [1, stock] for the given
// line. Unknown product ids are a no-op. A line whose snapshot has no stock
// left is removed (defensive; stock is never negative in practice).
func (s *Store) SetQuantity(productID, quantity int64) {
	s.mu.Lock()
	i := s.index(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	changed := false
	if max := s.lines[i].Product.Stock; max <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		changed = true
	} else {
		q := quantity
		if q > max {
			q = max
		}
		if q < 1 {
			q = 1
		}
		if q != s.lines[i].Quantity {
			s.lines[i].Quantity = q
			changed = true
		}
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Remove deletes the line for the given product id. Idempotent.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	i := s.index(productID)
	if i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
	s.mu.Unlock()

	if i >= 0 {
		s.notify()
	}
}

// Clear empties the cart and resets the payment selection to {cash, 0}.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.payment = domain.DefaultPayment()
	s.mu.Unlock()

	s.notify()
}

// Snapshot returns a copy of the ordered line list.
func (s *Store) Snapshot() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.lines...)
}

// Len returns the number of lines in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Payment returns the current payment selection.
func (s *Store) Payment() domain.PaymentSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payment
}

// SetPaymentMethod records the operator's payment method choice.
func (s *Store) SetPaymentMethod(method domain.PaymentMethod) error {
	if !method.Valid() {
		return ErrInvalidPaymentMethod
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment.Method = method
	return nil
}

// SetPaidAmount records the paid amount. Payment edits do not emit change
// events; subscribers watch line mutations only.
func (s *Store) SetPaidAmount(amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment.PaidAmount = amount
}

// index returns the position of the line for productID, or -1.
// Caller holds the lock.
func (s *Store) index(productID int64) int {
	for i, line := range s.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}
