package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/inventory-catalog/internal/alert"
	"github.com/fekuna/inventory-catalog/internal/catalog"
	"github.com/fekuna/inventory-catalog/internal/catalog/repository"
	"github.com/fekuna/inventory-catalog/internal/catalog/usecase"
	"github.com/fekuna/inventory-catalog/internal/model"
	"github.com/fekuna/inventory-catalog/internal/notify"
	"github.com/fekuna/inventory-catalog/pkg/database/sqlite"
	"github.com/fekuna/inventory-catalog/pkg/logger"
)

func testCatalog(t *testing.T) catalog.UseCase {
	t.Helper()
	db, err := sqlite.NewSQLite(&sqlite.Config{Path: filepath.Join(t.TempDir(), "catalog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uc, err := usecase.NewCatalogUseCase(
		context.Background(),
		repository.NewSQLiteRepository(db),
		notify.NewBus(logger.NewNop()),
		alert.NewCatalog(alert.NewFixedThreshold(5)),
		alert.NewFixedThreshold(5),
		"All Products",
		logger.NewNop(),
	)
	require.NoError(t, err)
	return uc
}

func TestLoadPopulatesSampleInventory(t *testing.T) {
	uc := testCatalog(t)
	require.NoError(t, Load(uc))

	root := uc.Root()
	assert.Equal(t, Categories(), root.ChildCount())

	products := 0
	for _, child := range root.Children() {
		cat, ok := child.(*model.Category)
		require.True(t, ok)
		for _, leaf := range cat.Children() {
			p, ok := leaf.(*model.Product)
			require.True(t, ok)
			products++
			if threshold := p.AlertThresholdOverride(); threshold != nil {
				assert.GreaterOrEqual(t, *threshold, 3)
				assert.LessOrEqual(t, *threshold, 7)
			}
		}
	}
	assert.Equal(t, Products(), products)
	assert.Positive(t, root.Quantity())
}

func TestLoadReplacesExistingContents(t *testing.T) {
	uc := testCatalog(t)
	_, err := uc.CreateCategory(nil, "Stale")
	require.NoError(t, err)

	require.NoError(t, Load(uc))

	for _, child := range uc.Root().Children() {
		assert.NotEqual(t, "Stale", child.Name())
	}
	assert.Equal(t, Categories(), uc.Root().ChildCount())
}
