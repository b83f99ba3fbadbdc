package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/retailpos/terminal/internal/client"
)

type SaleHandler struct {
	ledger  *client.Ledger
	timeout time.Duration
}

func NewSaleHandler(ledger *client.Ledger, timeout time.Duration) *SaleHandler {
	return &SaleHandler{ledger: ledger, timeout: timeout}
}

// Get proxies a sale record for receipt display.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_sale_id", "sale id must be a positive integer")
		return
	}

	sale, err := h.ledger.GetSale(ctx, id)
	if err != nil {
		respondBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}
