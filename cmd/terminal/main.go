package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/retailpos/terminal/internal/cart"
	"github.com/retailpos/terminal/internal/catalog"
	"github.com/retailpos/terminal/internal/client"
	"github.com/retailpos/terminal/internal/config"
	"github.com/retailpos/terminal/internal/engine"
	"github.com/retailpos/terminal/internal/httpapi"
	"github.com/retailpos/terminal/internal/session"
)

func main() {
	cfg := config.Load()

	sessions := session.NewStore()
	api := client.New(cfg.BackendBaseURL, sessions, cfg.RequestTimeout)
	ledger := client.NewLedger(api)

	view := catalog.NewView(client.NewCatalog(api))
	e := engine.New(view, cart.NewStore(), ledger)

	if cfg.OperatorEmail != "" {
		signIn(api, sessions, cfg)
		if sessions.Authenticated() {
			warmCatalog(view, cfg.RequestTimeout)
		}
	}

	router := httpapi.NewRouter(e, api, ledger, sessions, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("POS terminal panel starting on :%s (backend %s)", cfg.HTTPPort, cfg.BackendBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down terminal...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("terminal exited")
}

// signIn performs the unattended boot sign-in. Failures leave the terminal
// running unauthenticated; the panel will ask the operator to sign in.
func signIn(api *client.Client, sessions *session.Store, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	resp, err := api.Login(ctx, cfg.OperatorEmail, cfg.OperatorPassword)
	if err != nil {
		log.Printf("boot sign-in failed: %v", err)
		return
	}
	sessions.SignIn(resp.Token, resp.User)
	log.Printf("signed in as %s (%s)", resp.User.Name, resp.User.Role)
}

func warmCatalog(view *catalog.View, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := view.Load(ctx); err != nil {
		log.Printf("initial catalog load failed: %v", err)
	}
}
