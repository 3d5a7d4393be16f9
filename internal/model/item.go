package model

import (
	"fmt"
	"strings"
)

// Item is the shared surface of a catalog node. Exactly two variants exist:
// *Category (owns an ordered child list, quantity/price derived from it) and
// *Product (leaf carrying its own quantity, price, location and optional
// alert threshold). The unexported methods seal the interface to this
// package.
type Item interface {
	Name() string
	// Rename trims and validates the new name before applying it.
	Rename(name string) error
	// Quantity is the product's own quantity, or the recursive sum over a
	// category's children. Recomputed on every read, never cached.
	Quantity() int
	// Price is the product's own price, or the recursive sum over a
	// category's children (the subtree's total value).
	Price() float64
	// Parent is a back-reference maintained by Category.Add/Remove; nil for
	// the root and for detached nodes. It is a relation only, ownership is
	// defined by the child list.
	Parent() *Category

	setParent(*Category)
}

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("name cannot be empty: %w", ErrValidation)
	}
	return trimmed, nil
}
