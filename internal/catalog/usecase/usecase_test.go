package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/inventory-catalog/internal/alert"
	"github.com/fekuna/inventory-catalog/internal/catalog"
	"github.com/fekuna/inventory-catalog/internal/catalog/dto"
	"github.com/fekuna/inventory-catalog/internal/catalog/repository"
	"github.com/fekuna/inventory-catalog/internal/model"
	"github.com/fekuna/inventory-catalog/internal/notify"
	"github.com/fekuna/inventory-catalog/pkg/database/sqlite"
	"github.com/fekuna/inventory-catalog/pkg/logger"
)

func newTestCatalog(t *testing.T, path string) catalog.UseCase {
	t.Helper()
	db, err := sqlite.NewSQLite(&sqlite.Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	strategies := alert.NewCatalog(
		alert.NewFixedThreshold(5),
		alert.NewReorderPoint(10, 3),
		alert.NewPerProductThreshold(5),
	)

	uc, err := NewCatalogUseCase(
		context.Background(),
		repository.NewSQLiteRepository(db),
		notify.NewBus(logger.NewNop()),
		strategies,
		alert.NewFixedThreshold(5),
		"All Products",
		logger.NewNop(),
	)
	require.NoError(t, err)
	return uc
}

func tempCatalog(t *testing.T) catalog.UseCase {
	t.Helper()
	return newTestCatalog(t, filepath.Join(t.TempDir(), "catalog.db"))
}

func addProduct(t *testing.T, uc catalog.UseCase, parent *model.Category, name string, qty int) *model.Product {
	t.Helper()
	p, err := uc.CreateProduct(&dto.CreateProductInput{
		Parent:   parent,
		Name:     name,
		Quantity: qty,
		Price:    10,
		Location: "A1",
	})
	require.NoError(t, err)
	return p
}

func TestStartupWithEmptyStoreFallsBackToFreshRoot(t *testing.T) {
	uc := tempCatalog(t)
	require.NotNil(t, uc.Root())
	assert.Equal(t, "All Products", uc.Root().Name())
	assert.Equal(t, 0, uc.Root().ChildCount())
}

func TestStartupWithCorruptStoreFallsBackToFreshRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.db")
	db, err := sqlite.NewSQLite(&sqlite.Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// A categories table without the name column: create-if-absent cannot
	// repair it, so the load fails with a persistence error and the catalog
	// must start from a fresh root instead of dying.
	_, err = db.Exec(`CREATE TABLE categories (id INTEGER PRIMARY KEY AUTOINCREMENT, parent_id INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO categories(parent_id) VALUES(NULL)`)
	require.NoError(t, err)

	uc, err := NewCatalogUseCase(
		context.Background(),
		repository.NewSQLiteRepository(db),
		notify.NewBus(logger.NewNop()),
		alert.NewCatalog(alert.NewFixedThreshold(5)),
		alert.NewFixedThreshold(5),
		"All Products",
		logger.NewNop(),
	)
	require.NoError(t, err)
	require.NotNil(t, uc.Root())
	assert.Equal(t, "All Products", uc.Root().Name())
	assert.Equal(t, 0, uc.Root().ChildCount())
}

func TestRootIsProtected(t *testing.T) {
	uc := tempCatalog(t)

	err := uc.Rename(uc.Root(), "Else")
	assert.ErrorIs(t, err, model.ErrStructural)
	assert.Equal(t, "All Products", uc.Root().Name())

	assert.ErrorIs(t, uc.Remove(uc.Root()), model.ErrStructural)

	// Non-root categories rename fine.
	sub, err := uc.CreateCategory(nil, "Tools")
	require.NoError(t, err)
	require.NoError(t, uc.Rename(sub, "Hand Tools"))
	assert.Equal(t, "Hand Tools", sub.Name())
}

func TestLeafRejectsChildOperations(t *testing.T) {
	uc := tempCatalog(t)
	p := addProduct(t, uc, nil, "Widget", 3)
	other := addProduct(t, uc, nil, "Other", 1)

	assert.ErrorIs(t, uc.AddChild(p, other), model.ErrStructural)
	assert.ErrorIs(t, uc.RemoveChild(p, other), model.ErrStructural)
}

func TestQuantityChangeNotifies(t *testing.T) {
	uc := tempCatalog(t)
	p := addProduct(t, uc, nil, "Widget", 3)

	var notified []string
	h := uc.Subscribe(notify.ListenerFunc(func(changed *model.Product) {
		notified = append(notified, changed.Name())
	}))

	require.NoError(t, uc.SetQuantity(p, 7))
	require.Len(t, notified, 1)
	assert.Equal(t, "Widget", notified[0])

	// Price, location and threshold edits stay silent.
	require.NoError(t, uc.SetPrice(p, 99))
	require.NoError(t, uc.SetLocation(p, "B7"))
	threshold := 2
	require.NoError(t, uc.SetAlertThresholdOverride(p, &threshold))
	assert.Len(t, notified, 1)

	// A failed quantity change mutates nothing and notifies nobody.
	assert.ErrorIs(t, uc.SetQuantity(p, -1), model.ErrValidation)
	assert.Equal(t, 7, p.Quantity())
	assert.Len(t, notified, 1)

	uc.Unsubscribe(h)
	require.NoError(t, uc.SetQuantity(p, 8))
	assert.Len(t, notified, 1)
}

func TestUpdateProductNotifies(t *testing.T) {
	uc := tempCatalog(t)
	p := addProduct(t, uc, nil, "Widget", 3)

	count := 0
	uc.Subscribe(notify.ListenerFunc(func(*model.Product) { count++ }))

	require.NoError(t, uc.UpdateProduct(p, &dto.UpdateProductInput{
		Name:     "Widget Pro",
		Quantity: 4,
		Price:    12,
		Location: "C3",
	}))
	assert.Equal(t, 1, count)
	assert.Equal(t, "Widget Pro", p.Name())

	// Even an update that leaves the quantity value unchanged publishes,
	// because the quantity is still written.
	require.NoError(t, uc.UpdateProduct(p, &dto.UpdateProductInput{
		Name:     "Widget Pro",
		Quantity: 4,
		Price:    15,
		Location: "C3",
	}))
	assert.Equal(t, 2, count)

	// Rejected updates do not notify.
	err := uc.UpdateProduct(p, &dto.UpdateProductInput{Name: "", Quantity: 4, Price: 12})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, 2, count)
}

func TestCopyProduct(t *testing.T) {
	uc := tempCatalog(t)
	cat, err := uc.CreateCategory(nil, "Electronics")
	require.NoError(t, err)

	threshold := 4
	original, err := uc.CreateProduct(&dto.CreateProductInput{
		Parent:                 cat,
		Name:                   "Laptop",
		Quantity:               8,
		Price:                  1200,
		Location:               "A1",
		AlertThresholdOverride: &threshold,
	})
	require.NoError(t, err)

	clone, err := uc.CopyProduct(original)
	require.NoError(t, err)
	assert.Equal(t, "Laptop - Copy", clone.Name())
	assert.Equal(t, 8, clone.Quantity())
	assert.InDelta(t, 1200, clone.Price(), 1e-9)
	assert.Equal(t, "A1", clone.Location())
	require.NotNil(t, clone.AlertThresholdOverride())
	assert.Equal(t, 4, *clone.AlertThresholdOverride())
	assert.Same(t, cat, clone.Parent())
	assert.Equal(t, 2, cat.ChildCount())
}

func TestStrategySwapAndScan(t *testing.T) {
	uc := tempCatalog(t)
	addProduct(t, uc, nil, "Scarce", 2)
	addProduct(t, uc, nil, "Mid", 7)
	addProduct(t, uc, nil, "Plenty", 50)

	// Default fixed(5): only the scarce product warns.
	warnings := uc.ScanForWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Scarce", warnings[0].Product.Name())

	// Swapping to reorder(10,3) and rescanning picks up the mid one too.
	require.NoError(t, uc.SetActiveStrategyByName("Reorder point (R:10, S:3)"))
	warnings = uc.ScanForWarnings()
	assert.Len(t, warnings, 2)

	assert.Error(t, uc.SetActiveStrategyByName("bogus"))
	assert.Equal(t, "Reorder point (R:10, S:3)", uc.ActiveStrategy().DisplayName())

	msg, ok := uc.Evaluate(warnings[0].Product)
	assert.True(t, ok)
	assert.NotEmpty(t, msg)

	assert.Len(t, uc.StrategyNames(), 3)
}

func TestProjections(t *testing.T) {
	uc := tempCatalog(t)
	cat, err := uc.CreateCategory(nil, "Electronics")
	require.NoError(t, err)
	sub, err := uc.CreateCategory(cat, "Audio")
	require.NoError(t, err)
	addProduct(t, uc, cat, "Laptop", 8)
	addProduct(t, uc, sub, "Headphones", 14)

	rows := uc.ProductRows(cat)
	require.Len(t, rows, 1) // direct children only
	assert.Equal(t, "Laptop", rows[0].Name)
	assert.Equal(t, 8, rows[0].Quantity)
	assert.Equal(t, "A1", rows[0].Location)

	summaries := uc.CategorySummaries(uc.Root())
	require.Len(t, summaries, 1)
	assert.Equal(t, "Electronics", summaries[0].Name)
	assert.Equal(t, 22, summaries[0].TotalQuantity)
	assert.InDelta(t, 20, summaries[0].TotalValue, 1e-9)
}

func TestSaveAndReloadAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	first := newTestCatalog(t, path)
	cat, err := first.CreateCategory(nil, "Hardware")
	require.NoError(t, err)
	addProduct(t, first, cat, "Hammer", 9)
	require.NoError(t, first.Save(context.Background()))

	second := newTestCatalog(t, path)
	require.Equal(t, 1, second.Root().ChildCount())
	assert.Equal(t, 9, second.Root().Quantity())
}
