package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/retailpos/terminal/internal/domain"
)

// Subtotal sums price x quantity over the given lines. The empty cart
// totals zero. Decimal arithmetic keeps two-decimal currency exact.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Total())
	}
	return total
}

// DerivePaidAmount implements the paid-amount auto-fill: a just-emptied
// cart resets to zero; an untouched amount (exactly zero) follows the
// subtotal; anything the operator has entered is never overwritten.
//
// This is a last-value-wins UX convenience carried over from observed
// terminal behavior, not a business rule.
func DerivePaidAmount(current, subtotal decimal.Decimal, cartEmpty bool) decimal.Decimal {
	if cartEmpty {
		return decimal.Zero
	}
	if current.IsZero() {
		return subtotal.Round(2)
	}
	return current
}

// Change returns the cash change due back to the customer, floored at zero
// for underpaid or card sales.
func Change(paid, total decimal.Decimal) decimal.Decimal {
	if change := paid.Sub(total); change.Sign() > 0 {
		return change
	}
	return decimal.Zero
}
