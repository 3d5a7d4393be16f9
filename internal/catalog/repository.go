package catalog

import (
	"context"
	"errors"

	"github.com/fekuna/inventory-catalog/internal/model"
)

// ErrPersistence marks storage failures. Load-side failures are recovered by
// falling back to a fresh root; save-side failures are surfaced to the
// caller.
var ErrPersistence = errors.New("persistence error")

// Repository maps the in-memory tree to and from the relational store.
type Repository interface {
	// InitSchema creates the tables if absent and applies additive column
	// migrations. Safe to call on every startup.
	InitSchema(ctx context.Context) error
	// Save replaces the entire stored tree with root's subtree inside one
	// transaction. No partial writes survive a failure.
	Save(ctx context.Context, root *model.Category) error
	// Load reconstructs the stored tree. An empty store yields (nil, nil),
	// not an error; rows referencing a missing parent are dropped.
	Load(ctx context.Context) (*model.Category, error)
}
