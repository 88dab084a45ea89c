package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mytheresa/go-storefront/app/cart"
	"github.com/mytheresa/go-storefront/app/catalog"
	"github.com/mytheresa/go-storefront/app/checkout"
	"github.com/mytheresa/go-storefront/app/config"
	"github.com/mytheresa/go-storefront/app/database"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// storefront is everything one invocation works with.
type storefront struct {
	cfg      *config.Config
	log      *logrus.Logger
	catalog  *catalog.Catalog
	cart     *cart.Cart
	checkout *checkout.Service
	close    func() error
}

// openStorefront loads configuration, opens the store, then populates the
// catalog and the cart from it.
func openStorefront(ctx context.Context) (*storefront, error) {
	cfg, err := config.Load(config.NewLogger(os.Getenv("LOG_LEVEL")))
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(cfg.LogLevel)

	store, closeStore, err := database.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var sources []catalog.Source
	if cfg.CatalogURL != "" {
		sources = append(sources, catalog.NewRemoteSource(cfg.CatalogURL, cfg.FetchTimeout))
	}
	sources = append(sources, &catalog.SnapshotSource{Store: store})

	products := catalog.New(store, logger, sources...)
	products.Load(ctx)

	c := cart.New(products, store, logger)
	c.Load(ctx)

	return &storefront{
		cfg:      cfg,
		log:      logger,
		catalog:  products,
		cart:     c,
		checkout: checkout.NewService(c, logger),
		close:    closeStore,
	}, nil
}

func (s *storefront) Close() error {
	return s.close()
}

// withStorefront adapts fn into a cobra RunE that opens and closes the
// storefront around it.
func withStorefront(fn func(cmd *cobra.Command, sf *storefront, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sf, err := openStorefront(cmd.Context())
		if err != nil {
			return err
		}
		defer sf.Close()
		return fn(cmd, sf, args)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Product catalog and shopping cart",
		Long: `storefront keeps a product catalog and a shopping cart in a local store.

The catalog is loaded from CATALOG_BASE_URL/data/productos.json when set,
otherwise from the last saved catalog, otherwise from the built-in list.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newProductsCmd(),
		newCartCmd(),
		newCheckoutCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
