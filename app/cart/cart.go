// Package cart holds the shopping cart: product codes with quantities,
// merged on add and persisted after every change.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ProductFinder resolves a product code to a catalog product.
type ProductFinder interface {
	FindByCode(code string) (*models.Product, error)
}

// Item is a cart line resolved against the catalog.
type Item struct {
	Product  models.Product
	Quantity int
	Subtotal decimal.Decimal
}

// View is a consistent read of the cart for presentation.
type View struct {
	Items     []Item
	Total     decimal.Decimal
	ItemCount int
}

// Summary is what the cart held at the moment it was settled.
type Summary struct {
	Total     decimal.Decimal
	ItemCount int
}

// MaxLineQuantity bounds the units a single cart line can hold.
const MaxLineQuantity = 1_000_000

// Cart is the current user's cart. Lines are unique by product code and
// always have a positive quantity.
type Cart struct {
	mu      sync.Mutex
	lines   []models.CartLine
	catalog ProductFinder
	store   models.Store
	log     *logrus.Logger
}

func New(catalog ProductFinder, store models.Store, logger *logrus.Logger) *Cart {
	return &Cart{
		catalog: catalog,
		store:   store,
		log:     logger,
	}
}

// Load restores the cart from the store. A missing or corrupt snapshot
// leaves the cart empty.
func (c *Cart) Load(ctx context.Context) {
	var lines []models.CartLine
	if err := models.LoadSnapshot(ctx, c.store, models.CartKey, &lines); err != nil {
		if !errors.Is(err, models.ErrKeyNotFound) {
			c.log.WithError(err).Warn("Discarding unreadable cart snapshot")
		}
		lines = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = normalize(lines)
	c.log.WithField("lines", len(c.lines)).Debug("Cart loaded")
}

// normalize merges lines sharing a code, caps quantities at
// MaxLineQuantity and drops non-positive ones.
func normalize(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, 0, len(lines))
	for _, l := range lines {
		l.Quantity = clamp(l.Quantity)
		if i := indexOf(out, l.ProductCode); i >= 0 {
			out[i].Quantity = clamp(out[i].Quantity + l.Quantity)
			continue
		}
		out = append(out, l)
	}
	return prune(out)
}

func clamp(q int) int {
	return max(-MaxLineQuantity, min(q, MaxLineQuantity))
}

func indexOf(lines []models.CartLine, code string) int {
	for i, l := range lines {
		if strings.EqualFold(l.ProductCode, code) {
			return i
		}
	}
	return -1
}

func prune(lines []models.CartLine) []models.CartLine {
	out := lines[:0]
	for _, l := range lines {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}

// commit persists next and, once the store accepted it, makes it current.
// The caller holds c.mu.
func (c *Cart) commit(ctx context.Context, next []models.CartLine) error {
	if next == nil {
		next = []models.CartLine{}
	}
	if err := models.SaveSnapshot(ctx, c.store, models.CartKey, next); err != nil {
		c.log.WithError(err).Error("Failed to persist cart")
		return err
	}
	c.lines = next
	return nil
}

func (c *Cart) copyLines() []models.CartLine {
	lines := make([]models.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// AddQuantity adds delta units of the product with the given code, creating
// the line when needed. Lines that end at zero or below are removed.
// An unknown code returns models.ErrProductNotFound and a line pushed past
// MaxLineQuantity returns models.ErrInvalidQuantity; neither changes anything.
func (c *Cart) AddQuantity(ctx context.Context, code string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, err := c.catalog.FindByCode(code)
	if err != nil {
		c.log.WithField("code", code).Warn("Attempted to add unknown product to cart")
		return fmt.Errorf("add %q to cart: %w", code, err)
	}

	next := c.copyLines()
	i := indexOf(next, product.Code)
	current := 0
	if i >= 0 {
		current = next[i].Quantity
	}
	// current is in [0, MaxLineQuantity].
	if delta > MaxLineQuantity-current {
		c.log.WithFields(logrus.Fields{
			"code":  product.Code,
			"delta": delta,
		}).Warn("Rejected cart quantity above line limit")
		return fmt.Errorf("add %d of %q to cart: %w", delta, product.Code, models.ErrInvalidQuantity)
	}
	if i >= 0 {
		next[i].Quantity += delta
	} else {
		next = append(next, models.CartLine{ProductCode: product.Code, Quantity: delta})
	}

	if err := c.commit(ctx, prune(next)); err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{
		"code":  product.Code,
		"delta": delta,
	}).Info("Cart quantity adjusted")
	return nil
}

// SetQuantity replaces the quantity of an existing line; zero or below
// removes it. A code with no line is ignored. A quantity above
// MaxLineQuantity returns models.ErrInvalidQuantity.
func (c *Cart) SetQuantity(ctx context.Context, code string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.lines, code)
	if i < 0 {
		return nil
	}
	if quantity > MaxLineQuantity {
		return fmt.Errorf("set %q to %d: %w", code, quantity, models.ErrInvalidQuantity)
	}

	next := c.copyLines()
	if quantity <= 0 {
		next = append(next[:i], next[i+1:]...)
	} else {
		next[i].Quantity = quantity
	}

	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{
		"code":     code,
		"quantity": quantity,
	}).Info("Cart quantity set")
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.commit(ctx, nil); err != nil {
		return err
	}
	c.log.Info("Cart cleared")
	return nil
}

// currentLines returns a copy of the raw cart lines, dangling codes included.
func (c *Cart) currentLines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.copyLines()
}

// Items returns the lines whose product is still in the catalog, in cart
// order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.items()
}

// View reads items, total and item count under one lock.
func (c *Cart) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		Items:     c.items(),
		Total:     c.total(),
		ItemCount: c.itemCount(),
	}
}

func (c *Cart) items() []Item {
	items := make([]Item, 0, len(c.lines))
	for _, l := range c.lines {
		p, err := c.catalog.FindByCode(l.ProductCode)
		if err != nil {
			continue
		}
		items = append(items, Item{
			Product:  *p,
			Quantity: l.Quantity,
			Subtotal: p.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}
	return items
}

// Total is the sum of price times quantity. Lines whose product is no
// longer in the catalog count as zero.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.total()
}

func (c *Cart) total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		p, err := c.catalog.FindByCode(l.ProductCode)
		if err != nil {
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.itemCount()
}

func (c *Cart) itemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Settle captures the total and item count and clears the cart in one step.
// An empty cart returns models.ErrEmptyCart and is left as it is.
func (c *Cart) Settle(ctx context.Context) (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return Summary{}, models.ErrEmptyCart
	}

	summary := Summary{
		Total:     c.total(),
		ItemCount: c.itemCount(),
	}
	if err := c.commit(ctx, nil); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
