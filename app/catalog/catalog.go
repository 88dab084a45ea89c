// Package catalog keeps the ordered list of products on sale and serves it
// over HTTP.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Catalog is the in-memory product list, mirrored to a Store after every
// change.
type Catalog struct {
	mu       sync.Mutex
	products []models.Product
	store    models.Store
	sources  []Source
	log      *logrus.Logger
}

// New returns an empty catalog. Load fills it from sources, tried in order.
// A SeedSource is always tried last, so Load cannot end empty.
func New(store models.Store, logger *logrus.Logger, sources ...Source) *Catalog {
	return &Catalog{
		store:   store,
		sources: sources,
		log:     logger,
	}
}

// Load replaces the catalog with the first valid list and persists it.
// It returns the name of the source that supplied the list.
func (c *Catalog) Load(ctx context.Context) string {
	chain := append(append([]Source(nil), c.sources...), SeedSource{})

	var (
		products []models.Product
		origin   string
	)
	for _, src := range chain {
		list, err := src.Fetch(ctx)
		if err == nil {
			err = validate(list)
		}
		if err != nil {
			c.log.WithFields(logrus.Fields{
				"source": src.Name(),
				"error":  err,
			}).Warn("Catalog source unavailable, trying next")
			continue
		}
		products, origin = list, src.Name()
		break
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = products
	if err := models.SaveSnapshot(ctx, c.store, models.ProductsKey, c.products); err != nil {
		c.log.WithError(err).Warn("Failed to persist catalog snapshot")
	}

	c.log.WithFields(logrus.Fields{
		"source":   origin,
		"products": len(products),
	}).Info("Catalog loaded")
	return origin
}

// Products returns a copy of the catalog in display order.
func (c *Catalog) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]models.Product(nil), c.products...)
}

// FindByCode looks a product up ignoring case. A blank code never matches.
func (c *Catalog) FindByCode(code string) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.find(code)
}

func (c *Catalog) find(code string) (*models.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, models.ErrProductNotFound
	}
	for _, p := range c.products {
		if p.SameCode(code) {
			product := p
			return &product, nil
		}
	}
	return nil, models.ErrProductNotFound
}

// Add appends a product. It fails with models.ErrDuplicateOrInvalidProduct
// when the code is blank or taken, the name is blank, or the price is not
// positive. The catalog is unchanged when the store rejects the save.
func (c *Catalog) Add(ctx context.Context, code, name string, price decimal.Decimal) (*models.Product, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case code == "":
		return nil, fmt.Errorf("%w: code is required", models.ErrDuplicateOrInvalidProduct)
	case name == "":
		return nil, fmt.Errorf("%w: name is required", models.ErrDuplicateOrInvalidProduct)
	case !price.IsPositive():
		return nil, fmt.Errorf("%w: price must be positive", models.ErrDuplicateOrInvalidProduct)
	}
	if _, err := c.find(code); err == nil {
		return nil, fmt.Errorf("%w: code %q already exists", models.ErrDuplicateOrInvalidProduct, code)
	}

	product := models.Product{Code: code, Name: name, Price: price}
	next := append(append([]models.Product(nil), c.products...), product)
	if err := models.SaveSnapshot(ctx, c.store, models.ProductsKey, next); err != nil {
		c.log.WithError(err).Errorf("Failed to persist product '%s'", code)
		return nil, err
	}
	c.products = next

	c.log.WithFields(logrus.Fields{
		"code":  code,
		"price": price.String(),
	}).Info("Product added to catalog")
	return &product, nil
}
