package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It includes a unique code, a display name and a price.
// The JSON field names match the documents the storefront has always
// persisted and served, so existing snapshots keep loading.
type Product struct {
	Code  string          `json:"codigo"`
	Name  string          `json:"nombre"`
	Price decimal.Decimal `json:"precio"`
}

// SameCode reports whether code refers to this product, ignoring case.
func (p Product) SameCode(code string) bool {
	return strings.EqualFold(p.Code, code)
}
