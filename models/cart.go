package models

// CartLine is one entry of the cart: a product code and how many units of it.
// The code is a weak reference; the product may no longer be in the catalog.
type CartLine struct {
	ProductCode string `json:"codigo"`
	Quantity    int    `json:"qty"`
}
