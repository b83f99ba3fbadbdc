package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/retailpos/terminal/internal/checkout"
)

type CheckoutHandler struct {
	coordinator *checkout.Coordinator
	timeout     time.Duration
}

func NewCheckoutHandler(coordinator *checkout.Coordinator, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{coordinator: coordinator, timeout: timeout}
}

type CheckoutStateResponse struct {
	State     checkout.State `json:"state"`
	LastError string         `json:"last_error,omitempty"`
}

// Submit finalizes the cart. Validation failures are reported synchronously
// and never reach the ledger; ledger rejections come back verbatim.
// The submission is detached from the request lifetime: a dropped panel
// connection must not cancel an in-flight sale, which would leave the
// operator unsure whether the ledger recorded it.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.timeout)
	defer cancel()

	sale, err := h.coordinator.Checkout(ctx)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.Is(err, checkout.ErrNegativePayment):
			respondError(w, http.StatusBadRequest, "negative_payment", "paid amount cannot be negative")
		case errors.Is(err, checkout.ErrCheckoutInProgress):
			respondError(w, http.StatusConflict, "checkout_in_progress", "a checkout is already in progress")
		default:
			respondBackendError(w, err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, sale)
}

// State reports the checkout state machine for the UI.
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	resp := CheckoutStateResponse{State: h.coordinator.State()}
	if err := h.coordinator.LastError(); err != nil {
		resp.LastError = err.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

// Acknowledge clears a terminal state after the UI has displayed it.
func (h *CheckoutHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	h.coordinator.Acknowledge()
	respondJSON(w, http.StatusOK, CheckoutStateResponse{State: h.coordinator.State()})
}
