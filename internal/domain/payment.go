package domain

import "github.com/shopspring/decimal"

// PaymentMethod is how the customer settles a sale.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}

// PaymentSelection is the operator's payment choice for the active cart.
type PaymentSelection struct {
	Method     PaymentMethod   `json:"payment_method"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// DefaultPayment is the selection a fresh (or just-cleared) cart starts with.
func DefaultPayment() PaymentSelection {
	return PaymentSelection{Method: PaymentCash, PaidAmount: decimal.Zero}
}
