package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/retailpos/terminal/internal/domain"
)

// ErrCatalogFetch marks a failed catalog load. The previous snapshot (if
// any) stays in place; callers should render an empty or stale catalog, not
// crash.
var ErrCatalogFetch = errors.New("catalog fetch failed")

// Fetcher retrieves product lists from the Catalog Service.
type Fetcher interface {
	Products(ctx context.Context) ([]domain.Product, error)
	LowStock(ctx context.Context, threshold int64) ([]domain.Product, error)
}

// View holds the last-fetched product snapshot. The snapshot is replaced
// wholesale on each successful load, never mutated field by field, so a
// search render and a concurrent add never see a half-updated list.
type View struct {
	fetcher Fetcher
	sfg     singleflight.Group // collapses concurrent refreshes into one fetch

	mu       sync.RWMutex
	loaded   bool
	products []domain.Product
}

func NewView(fetcher Fetcher) *View {
	return &View{fetcher: fetcher}
}

// Load fetches the catalog and swaps in the new snapshot. Concurrent calls
// share a single in-flight fetch.
func (v *View) Load(ctx context.Context) ([]domain.Product, error) {
	result, err, _ := v.sfg.Do("load", func() (any, error) {
		// The flight is shared: the first caller's cancellation must not
		// fail the late joiners riding on it.
		products, err := v.fetcher.Products(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCatalogFetch, err)
		}

		v.mu.Lock()
		v.loaded = true
		v.products = products
		v.mu.Unlock()
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Product), nil
}

// Loaded reports whether a catalog snapshot has ever been fetched.
func (v *View) Loaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded
}

// Snapshot returns a copy of the cached product list.
func (v *View) Snapshot() []domain.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]domain.Product(nil), v.products...)
}

// Get looks up a cached product by id.
func (v *View) Get(id int64) (domain.Product, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, p := range v.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Search filters the cached list by a case-insensitive substring match
// against name, SKU, or the decimal form of the id. An empty query returns
// the full cached list.
func (v *View) Search(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return v.Snapshot()
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	var matched []domain.Product
	for _, p := range v.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) ||
			strings.Contains(strconv.FormatInt(p.ID, 10), q) {
			matched = append(matched, p)
		}
	}
	return matched
}

// LowStock fetches products at or below the given stock threshold. Display
// only; the result is not cached and never feeds cart logic.
func (v *View) LowStock(ctx context.Context, threshold int64) ([]domain.Product, error) {
	products, err := v.fetcher.LowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogFetch, err)
	}
	return products, nil
}
