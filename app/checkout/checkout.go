// Package checkout turns a non-empty cart into a receipt and empties it.
package checkout

import (
	"context"

	"github.com/mytheresa/go-storefront/app/cart"
	"github.com/mytheresa/go-storefront/app/money"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Settler empties a cart, reporting what it held.
type Settler interface {
	Settle(ctx context.Context) (cart.Summary, error)
}

// Receipt describes a completed checkout. Orders are not stored anywhere.
type Receipt struct {
	Total          decimal.Decimal
	FormattedTotal string
	ItemCount      int
	Message        string
}

type Service struct {
	cart Settler
	log  *logrus.Logger
}

func NewService(c Settler, logger *logrus.Logger) *Service {
	return &Service{
		cart: c,
		log:  logger,
	}
}

// Checkout returns models.ErrEmptyCart, leaving the cart alone, when there is
// nothing to buy.
func (s *Service) Checkout(ctx context.Context) (*Receipt, error) {
	summary, err := s.cart.Settle(ctx)
	if err != nil {
		s.log.WithError(err).Warn("Checkout rejected")
		return nil, err
	}

	formatted := money.Format(summary.Total)
	s.log.WithFields(logrus.Fields{
		"total": summary.Total.String(),
		"items": summary.ItemCount,
	}).Info("Checkout completed")

	return &Receipt{
		Total:          summary.Total,
		FormattedTotal: formatted,
		ItemCount:      summary.ItemCount,
		Message:        "Compra realizada con éxito. Total: " + formatted,
	}, nil
}
