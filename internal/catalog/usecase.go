package catalog

import (
	"context"

	"github.com/fekuna/inventory-catalog/internal/alert"
	"github.com/fekuna/inventory-catalog/internal/catalog/dto"
	"github.com/fekuna/inventory-catalog/internal/model"
	"github.com/fekuna/inventory-catalog/internal/notify"
)

// UseCase is the single live catalog of the process. It owns the root
// category, the active alert strategy, the listener registry and the storage
// handle; collaborators (CLI, UI, tests) receive one shared instance by
// injection and consume the tree only through this surface.
//
// The mutation surface is not safe for concurrent use; callers in a
// concurrent environment must serialize access externally.
type UseCase interface {
	// Root exposes the live tree for traversal. The root itself cannot be
	// renamed or removed.
	Root() *model.Category

	CreateCategory(parent *model.Category, name string) (*model.Category, error)
	CreateProduct(input *dto.CreateProductInput) (*model.Product, error)
	// UpdateProduct replaces every editable field at once. Because the
	// replacement always writes the quantity, a successful update publishes
	// on the change bus even when the new quantity equals the old one —
	// same contract as SetQuantity with an unchanged value.
	UpdateProduct(p *model.Product, input *dto.UpdateProductInput) error
	// CopyProduct clones p under its parent as "<name> - Copy", carrying
	// quantity, price, location and threshold override.
	CopyProduct(p *model.Product) (*model.Product, error)

	// AddChild, RemoveChild, Rename and Remove operate on either variant and
	// fail with model.ErrStructural when handed the wrong one (child ops on
	// a product, rename/remove of the root).
	AddChild(parent, child model.Item) error
	RemoveChild(parent, child model.Item) error
	Rename(node model.Item, name string) error
	Remove(node model.Item) error

	// SetQuantity is the one mutation that publishes on the change bus.
	SetQuantity(p *model.Product, quantity int) error
	SetPrice(p *model.Product, price float64) error
	SetLocation(p *model.Product, location string) error
	SetAlertThresholdOverride(p *model.Product, threshold *int) error

	ActiveStrategy() alert.Strategy
	SetActiveStrategy(s alert.Strategy)
	SetActiveStrategyByName(name string) error
	StrategyNames() []string
	// Evaluate runs the active strategy against one product.
	Evaluate(p *model.Product) (string, bool)
	// ScanForWarnings runs the active strategy against every product
	// reachable from the root.
	ScanForWarnings() []alert.Warning

	Subscribe(l notify.Listener) notify.Handle
	Unsubscribe(h notify.Handle)

	// ProductRows lists c's direct product children; CategorySummaries lists
	// c's immediate subcategories with their aggregate totals. Both are
	// read-only projections for export surfaces.
	ProductRows(c *model.Category) []dto.ProductRow
	CategorySummaries(c *model.Category) []dto.CategorySummary

	// Save writes the whole tree back to storage. Failures are returned,
	// never swallowed.
	Save(ctx context.Context) error
}
