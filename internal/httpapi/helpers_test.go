package httpapi

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/terminal/internal/cart"
	"github.com/retailpos/terminal/internal/catalog"
	"github.com/retailpos/terminal/internal/checkout"
	"github.com/retailpos/terminal/internal/domain"
	"github.com/retailpos/terminal/internal/engine"
)

// --- Mocks ---

type stubFetcher struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
}

func (s *stubFetcher) Products(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubFetcher) LowStock(ctx context.Context, threshold int64) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Product
	for _, p := range s.products {
		if p.Stock <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubLedger struct {
	mu    sync.Mutex
	sale  *domain.SaleResult
	err   error
	calls int
}

func (s *stubLedger) CreateSale(ctx context.Context, req domain.SaleRequest, idempotencyKey string) (*domain.SaleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.sale, nil
}

// --- Helpers ---

func stubProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Coffee", SKU: "CF-01", Price: decimal.NewFromFloat(10.00), Stock: 5},
		{ID: 2, Name: "Tea", SKU: "TB-77", Price: decimal.NewFromFloat(5.50), Stock: 2},
	}
}

func loadedView(fetcher catalog.Fetcher) *catalog.View {
	view := catalog.NewView(fetcher)
	view.Load(context.Background())
	return view
}

func testEngine(ledger checkout.Ledger) *engine.Engine {
	view := loadedView(&stubFetcher{products: stubProducts()})
	return engine.New(view, cart.NewStore(), ledger)
}

func withProductID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("product_id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withSaleID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

const testTimeout = 5 * time.Second

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
