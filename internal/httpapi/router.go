package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/retailpos/terminal/internal/client"
	"github.com/retailpos/terminal/internal/domain"
	"github.com/retailpos/terminal/internal/engine"
	"github.com/retailpos/terminal/internal/session"
)

// NewRouter assembles the local panel API the terminal UI talks to.
func NewRouter(e *engine.Engine, api *client.Client, ledger *client.Ledger, sessions *session.Store, timeout time.Duration) http.Handler {
	products := NewProductHandler(e.Catalog(), timeout)
	carts := NewCartHandler(e.Catalog(), e.Cart())
	checkouts := NewCheckoutHandler(e.Checkout(), timeout)
	sales := NewSaleHandler(ledger, timeout)
	sess := NewSessionHandler(api, sessions, timeout)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", sess.SignIn)
		r.Delete("/session", sess.SignOut)
		r.Get("/session", sess.Current)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(sessions))

			r.Get("/products", products.List)
			r.Post("/products/refresh", products.Refresh)
			r.With(RequireRole(sessions, domain.RoleManager)).
				Get("/products/low-stock", products.LowStock)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", carts.Get)
				r.Delete("/", carts.Clear)
				r.Post("/items", carts.AddItem)
				r.Put("/items/{product_id}", carts.UpdateQuantity)
				r.Delete("/items/{product_id}", carts.RemoveItem)
				r.Put("/payment", carts.SetPayment)
			})

			r.Post("/checkout", checkouts.Submit)
			r.Get("/checkout/state", checkouts.State)
			r.Post("/checkout/ack", checkouts.Acknowledge)

			r.Get("/sales/{id}", sales.Get)
		})
	})

	return r
}
