package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mytheresa/go-storefront/app/api"
	"github.com/mytheresa/go-storefront/app/cart"
	"github.com/mytheresa/go-storefront/app/catalog"
	"github.com/mytheresa/go-storefront/app/checkout"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// newRouter registers every handler of the storefront.
func newRouter(sf *storefront) http.Handler {
	mux := http.NewServeMux()

	catalog.NewCatalogHandler(sf.catalog).RegisterRoutes(mux)
	cart.NewCartHandler(sf.cart).RegisterRoutes(mux)
	checkout.NewCheckoutHandler(sf.checkout).RegisterRoutes(mux)

	if sf.cfg.StaticDir != "" {
		mux.Handle("GET /data/", http.FileServer(http.Dir(sf.cfg.StaticDir)))
	}

	return api.WithRequestLogging(sf.log, mux)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog, cart and checkout over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sf, err := openStorefront(ctx)
	if err != nil {
		return err
	}
	defer sf.Close()

	srv := &http.Server{
		Addr:              sf.cfg.HTTPAddr,
		Handler:           newRouter(sf),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sf.log.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sf.log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
