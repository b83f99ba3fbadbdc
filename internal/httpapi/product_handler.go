package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/retailpos/terminal/internal/catalog"
	"github.com/retailpos/terminal/internal/client"
	"github.com/retailpos/terminal/internal/domain"
)

type ProductHandler struct {
	view    *catalog.View
	timeout time.Duration
}

func NewProductHandler(view *catalog.View, timeout time.Duration) *ProductHandler {
	return &ProductHandler{view: view, timeout: timeout}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

// List serves the cached catalog filtered by ?query=. A catalog that has
// never loaded is fetched first; if that fetch fails the panel still gets
// an empty list — a broken catalog must not break the page.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if !h.view.Loaded() {
		if _, err := h.view.Load(ctx); err != nil {
			if errors.Is(err, client.ErrUnauthenticated) {
				respondBackendError(w, err)
				return
			}
			log.Printf("catalog load failed, serving empty catalog: %v", err)
		}
	}

	products := h.view.Search(r.URL.Query().Get("query"))
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products})
}

// Refresh forces a catalog refetch and returns the new snapshot.
func (h *ProductHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.view.Load(ctx)
	if err != nil {
		respondBackendError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products})
}

// LowStock serves the dashboard's low-stock listing. Manager-gated in the
// router.
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	threshold := int64(5)
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid_threshold", "threshold must be a non-negative integer")
			return
		}
		threshold = parsed
	}

	products, err := h.view.LowStock(ctx, threshold)
	if err != nil {
		respondBackendError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products})
}
