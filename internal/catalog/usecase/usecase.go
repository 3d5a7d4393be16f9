package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fekuna/inventory-catalog/internal/alert"
	"github.com/fekuna/inventory-catalog/internal/catalog"
	"github.com/fekuna/inventory-catalog/internal/catalog/dto"
	"github.com/fekuna/inventory-catalog/internal/model"
	"github.com/fekuna/inventory-catalog/internal/notify"
	"github.com/fekuna/inventory-catalog/pkg/logger"
)

type catalogUseCase struct {
	repo       catalog.Repository
	bus        *notify.Bus
	strategies *alert.Catalog
	logger     logger.ZapLogger

	root   *model.Category
	active alert.Strategy
}

// NewCatalogUseCase initializes the schema, loads the stored tree and wires
// the facade. A missing or unreadable store is not fatal: the catalog starts
// from a fresh root named rootName and the failure is logged. The returned
// value is meant to be constructed once per process and injected into every
// collaborator.
func NewCatalogUseCase(
	ctx context.Context,
	repo catalog.Repository,
	bus *notify.Bus,
	strategies *alert.Catalog,
	defaultStrategy alert.Strategy,
	rootName string,
	log logger.ZapLogger,
) (catalog.UseCase, error) {
	if err := repo.InitSchema(ctx); err != nil {
		return nil, err
	}

	root, err := repo.Load(ctx)
	if err != nil {
		log.Warn("could not load stored catalog, starting fresh", zap.Error(err))
		root = nil
	}
	if root == nil {
		root, err = model.NewCategory(rootName)
		if err != nil {
			return nil, err
		}
	}

	return &catalogUseCase{
		repo:       repo,
		bus:        bus,
		strategies: strategies,
		logger:     log,
		root:       root,
		active:     defaultStrategy,
	}, nil
}

func (uc *catalogUseCase) Root() *model.Category { return uc.root }

func (uc *catalogUseCase) CreateCategory(parent *model.Category, name string) (*model.Category, error) {
	if parent == nil {
		parent = uc.root
	}
	c, err := model.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := parent.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *catalogUseCase) CreateProduct(input *dto.CreateProductInput) (*model.Product, error) {
	parent := input.Parent
	if parent == nil {
		parent = uc.root
	}
	p, err := model.NewProduct(input.Name, input.Quantity, input.Price, input.Location)
	if err != nil {
		return nil, err
	}
	if err := p.SetAlertThresholdOverride(input.AlertThresholdOverride); err != nil {
		return nil, err
	}
	if err := parent.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *catalogUseCase) UpdateProduct(p *model.Product, input *dto.UpdateProductInput) error {
	if err := p.Update(input.Name, input.Quantity, input.Price, input.Location, input.AlertThresholdOverride); err != nil {
		return err
	}
	// The update always rewrites the quantity, so it publishes like
	// SetQuantity does — even when the value did not change.
	uc.bus.Publish(p)
	return nil
}

func (uc *catalogUseCase) CopyProduct(p *model.Product) (*model.Product, error) {
	parent := p.Parent()
	if parent == nil {
		return nil, fmt.Errorf("product %q is not attached to a category: %w", p.Name(), model.ErrStructural)
	}
	clone, err := model.NewProduct(p.Name()+" - Copy", p.Quantity(), p.Price(), p.Location())
	if err != nil {
		return nil, err
	}
	if err := clone.SetAlertThresholdOverride(p.AlertThresholdOverride()); err != nil {
		return nil, err
	}
	if err := parent.Add(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

func (uc *catalogUseCase) AddChild(parent, child model.Item) error {
	cat, ok := parent.(*model.Category)
	if !ok {
		return fmt.Errorf("leaf has no children: %w", model.ErrStructural)
	}
	return cat.Add(child)
}

func (uc *catalogUseCase) RemoveChild(parent, child model.Item) error {
	cat, ok := parent.(*model.Category)
	if !ok {
		return fmt.Errorf("leaf has no children: %w", model.ErrStructural)
	}
	cat.Remove(child)
	return nil
}

func (uc *catalogUseCase) Rename(node model.Item, name string) error {
	if node == model.Item(uc.root) {
		return fmt.Errorf("root is unrenameable: %w", model.ErrStructural)
	}
	return node.Rename(name)
}

// Remove detaches node from its parent, cascading to the whole subtree. The
// root cannot be removed.
func (uc *catalogUseCase) Remove(node model.Item) error {
	if node == model.Item(uc.root) {
		return fmt.Errorf("root cannot be removed: %w", model.ErrStructural)
	}
	parent := node.Parent()
	if parent == nil {
		return nil // already detached
	}
	parent.Remove(node)
	return nil
}

func (uc *catalogUseCase) SetQuantity(p *model.Product, quantity int) error {
	if err := p.SetQuantity(quantity); err != nil {
		return err
	}
	// Quantity is the only field edit that notifies listeners.
	uc.bus.Publish(p)
	return nil
}

func (uc *catalogUseCase) SetPrice(p *model.Product, price float64) error {
	return p.SetPrice(price)
}

func (uc *catalogUseCase) SetLocation(p *model.Product, location string) error {
	p.SetLocation(location)
	return nil
}

func (uc *catalogUseCase) SetAlertThresholdOverride(p *model.Product, threshold *int) error {
	return p.SetAlertThresholdOverride(threshold)
}

func (uc *catalogUseCase) ActiveStrategy() alert.Strategy { return uc.active }

func (uc *catalogUseCase) SetActiveStrategy(s alert.Strategy) {
	uc.active = s
}

func (uc *catalogUseCase) SetActiveStrategyByName(name string) error {
	s, err := uc.strategies.ByName(name)
	if err != nil {
		return err
	}
	uc.active = s
	return nil
}

func (uc *catalogUseCase) StrategyNames() []string { return uc.strategies.Names() }

func (uc *catalogUseCase) Evaluate(p *model.Product) (string, bool) {
	if uc.active == nil {
		return "", false
	}
	return uc.active.Evaluate(p)
}

func (uc *catalogUseCase) ScanForWarnings() []alert.Warning {
	return alert.Scan(uc.root, uc.active)
}

func (uc *catalogUseCase) Subscribe(l notify.Listener) notify.Handle { return uc.bus.Subscribe(l) }

func (uc *catalogUseCase) Unsubscribe(h notify.Handle) { uc.bus.Unsubscribe(h) }

func (uc *catalogUseCase) ProductRows(c *model.Category) []dto.ProductRow {
	var rows []dto.ProductRow
	for _, child := range c.Children() {
		if p, ok := child.(*model.Product); ok {
			rows = append(rows, dto.ProductRow{
				Name:     p.Name(),
				Quantity: p.Quantity(),
				Price:    p.Price(),
				Location: p.Location(),
			})
		}
	}
	return rows
}

func (uc *catalogUseCase) CategorySummaries(c *model.Category) []dto.CategorySummary {
	var summaries []dto.CategorySummary
	for _, child := range c.Children() {
		if sub, ok := child.(*model.Category); ok {
			summaries = append(summaries, dto.CategorySummary{
				Name:          sub.Name(),
				TotalQuantity: sub.Quantity(),
				TotalValue:    sub.Price(),
			})
		}
	}
	return summaries
}

func (uc *catalogUseCase) Save(ctx context.Context) error {
	if err := uc.repo.Save(ctx, uc.root); err != nil {
		uc.logger.Error("failed to save catalog", zap.Error(err))
		return err
	}
	uc.logger.Info("catalog saved")
	return nil
}
