package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/retailpos/terminal/internal/cart"
	"github.com/retailpos/terminal/internal/catalog"
	"github.com/retailpos/terminal/internal/domain"
	"github.com/retailpos/terminal/internal/pricing"
)

type CartHandler struct {
	view  *catalog.View
	store *cart.Store
}

func NewCartHandler(view *catalog.View, store *cart.Store) *CartHandler {
	return &CartHandler{view: view, store: store}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int64 `json:"quantity"`
}

type SetPaymentRequestDTO struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
}

type CartLineDTO struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Stock     int64           `json:"stock"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items         []CartLineDTO        `json:"items"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
	Change        decimal.Decimal      `json:"change"`
}

func (h *CartHandler) cartResponse() CartResponse {
	lines := h.store.Snapshot()
	payment := h.store.Payment()
	subtotal := pricing.Subtotal(lines)

	items := make([]CartLineDTO, len(lines))
	for i, line := range lines {
		items[i] = CartLineDTO{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			SKU:       line.Product.SKU,
			UnitPrice: line.Product.Price,
			Quantity:  line.Quantity,
			Stock:     line.Product.Stock,
			LineTotal: line.Total(),
		}
	}
	return CartResponse{
		Items:         items,
		Subtotal:      subtotal,
		PaymentMethod: payment.Method,
		PaidAmount:    payment.PaidAmount,
		Change:        pricing.Change(payment.PaidAmount, subtotal),
	}
}

// Get returns the current cart with its subtotal and payment selection.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// AddItem puts one unit of a cataloged product in the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, ok := h.view.Get(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not in catalog")
		return
	}

	h.store.Add(product)
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

// UpdateQuantity sets a line's quantity, clamped to [1, stock].
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.store.SetQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// RemoveItem deletes a line. Removing an absent line is fine.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	h.store.Remove(productID)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// Clear empties the cart and resets the payment selection.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// SetPayment records the payment method and paid amount.
func (h *CartHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var req SetPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaidAmount.Sign() < 0 {
		respondError(w, http.StatusBadRequest, "negative_payment", "paid amount cannot be negative")
		return
	}
	if err := h.store.SetPaymentMethod(req.PaymentMethod); err != nil {
		if errors.Is(err, cart.ErrInvalidPaymentMethod) {
			respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment_method must be cash or card")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to set payment")
		return
	}
	h.store.SetPaidAmount(req.PaidAmount)

	respondJSON(w, http.StatusOK, h.cartResponse())
}

func productIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "product_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid product_id")
	}
	return id, nil
}
