package model

import "errors"

// Sentinel error kinds. Concrete errors wrap one of these so callers can
// classify with errors.Is without matching message text.
var (
	// ErrValidation marks rejected input values (empty name, out-of-range
	// quantity/price/threshold). The target object is never mutated.
	ErrValidation = errors.New("validation error")

	// ErrStructural marks operations that are invalid for the node kind
	// (child mutation on a product, rename/remove of the root).
	ErrStructural = errors.New("structural error")
)
