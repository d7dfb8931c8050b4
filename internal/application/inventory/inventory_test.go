package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartshelf-api/internal/application/inventory"
	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
	"github.com/jhoicas/smartshelf-api/internal/infrastructure/memory"
)

func addProduct(t *testing.T, store *memory.Store, id, name string, qty int) {
	t.Helper()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID: id, Name: name, Price: decimal.NewFromInt(1), Quantity: qty,
	}))
}

func addSale(t *testing.T, store *memory.Store, productID string, qty int, at time.Time) {
	t.Helper()
	require.NoError(t, store.Sales().Create(context.Background(), &entity.Sale{
		ID: productID + at.String(), ProductID: productID, QuantitySold: qty, UnitPrice: decimal.NewFromInt(1), SaleDate: at,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjuster
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjuster_AplicaDeltaDentroDeTx(t *testing.T) {
	store := memory.NewStore()
	addProduct(t, store, "p1", "Sal", 3)
	adj := inventory.NewAdjuster()
	ctx := context.Background()

	err := store.Run(ctx, func(products repository.ProductRepository, _ repository.PurchaseOrderRepository, _ repository.SaleRepository) error {
		p, err := adj.Adjust(ctx, products, "p1", 7)
		require.NoError(t, err)
		assert.Equal(t, 10, p.Quantity)

		_, err = adj.Adjust(ctx, products, "p1", -11)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		_, err = adj.Adjust(ctx, products, "nope", 1)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		return nil
	})
	require.NoError(t, err)

	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Forecast
// ──────────────────────────────────────────────────────────────────────────────

func TestForecast_DemandaYEstado(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	addProduct(t, store, "a", "Alta rotación", 10)
	addProduct(t, store, "b", "Sin ventas", 0)
	addProduct(t, store, "c", "Media", 3)

	addSale(t, store, "a", 40, now.AddDate(0, 0, -2))
	addSale(t, store, "a", 20, now.AddDate(0, 0, -29))
	addSale(t, store, "a", 500, now.AddDate(0, 0, -40)) // fuera de la ventana
	addSale(t, store, "c", 10, now.AddDate(0, 0, -1))

	uc := inventory.NewForecastUseCase(store.Products(), store.Sales(), 30, 7).
		WithClock(func() time.Time { return now })

	items, err := uc.Forecast(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	byID := map[string]int{}
	for i, it := range items {
		byID[it.ProductID] = i
	}

	a := items[byID["a"]]
	assert.Equal(t, "14", a.PredictedDemand.String())
	assert.Equal(t, inventory.ForecastRestockNeeded, a.Status)
	assert.Equal(t, 10, a.CurrentStock)

	b := items[byID["b"]]
	assert.True(t, b.PredictedDemand.IsZero())
	assert.Equal(t, inventory.ForecastOK, b.Status)

	c := items[byID["c"]]
	assert.Equal(t, "2.33", c.PredictedDemand.String())
	assert.Equal(t, inventory.ForecastOK, c.Status)
}

func TestForecast_SinProductos(t *testing.T) {
	store := memory.NewStore()
	items, err := inventory.NewForecastUseCase(store.Products(), store.Sales(), 30, 7).Forecast(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
