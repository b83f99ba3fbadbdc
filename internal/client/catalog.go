package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/retailpos/terminal/internal/domain"
)

// Catalog reads the product list from the Catalog Service. The main fetch
// path sits behind a circuit breaker so a flapping backend fails fast
// instead of stalling the terminal on every refresh.
type Catalog struct {
	client  *Client
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
}

func NewCatalog(c *Client) *Catalog {
	settings := gobreaker.Settings{
		Name:    "catalog",
		Timeout: 15 * time.Second,
	}
	return &Catalog{
		client:  c,
		breaker: gobreaker.NewCircuitBreaker[[]domain.Product](settings),
	}
}

// Products fetches the full product list.
func (cc *Catalog) Products(ctx context.Context) ([]domain.Product, error) {
	return cc.breaker.Execute(func() ([]domain.Product, error) {
		var products []domain.Product
		if err := cc.client.do(ctx, http.MethodGet, "/catalog/products", nil, &products); err != nil {
			return nil, err
		}
		return products, nil
	})
}

// LowStock fetches products whose stock is at or below threshold. Dashboard
// display only; cart logic never consults it.
func (cc *Catalog) LowStock(ctx context.Context, threshold int64) ([]domain.Product, error) {
	var products []domain.Product
	path := fmt.Sprintf("/catalog/products?lowStockThreshold=%d", threshold)
	if err := cc.client.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
