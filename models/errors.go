package models

import "errors"

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

var (
	// ErrDuplicateOrInvalidProduct is returned when a product cannot be added
	// because its code is taken or one of its fields is invalid.
	ErrDuplicateOrInvalidProduct = errors.New("invalid or duplicate product")

	// ErrInvalidQuantity is returned when a cart line would exceed the
	// per-line quantity limit.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrEmptyCart is returned when checking out a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrRemoteFetchFailed is returned when the remote product list is
	// unreachable, malformed or empty.
	ErrRemoteFetchFailed = errors.New("remote product fetch failed")

	// ErrCorruptState is returned when a persisted value cannot be decoded.
	ErrCorruptState = errors.New("corrupt persisted state")

	// ErrKeyNotFound is returned by a Store when the key has no value.
	ErrKeyNotFound = errors.New("key not found")
)
