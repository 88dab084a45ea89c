package catalog

import (
	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
)

// DefaultProducts is the list the catalog falls back to when neither the
// remote document nor a persisted snapshot is usable.
func DefaultProducts() []models.Product {
	return []models.Product{
		{Code: "T1", Name: "Teclado", Price: decimal.NewFromInt(55000)},
		{Code: "M1", Name: "Monitor", Price: decimal.NewFromInt(350000)},
		{Code: "MO1", Name: "Mouse", Price: decimal.NewFromInt(40000)},
		{Code: "L1", Name: "Impresora", Price: decimal.NewFromInt(150000)},
		{Code: "H1", Name: "Headsets", Price: decimal.NewFromInt(90000)},
	}
}
