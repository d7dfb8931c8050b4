package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/application/inventory"
	"github.com/jhoicas/smartshelf-api/internal/application/purchasing"
	"github.com/jhoicas/smartshelf-api/internal/application/sales"
	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
	"github.com/jhoicas/smartshelf-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type invalidations struct{ n int }

func (i *invalidations) Invalidate(context.Context) { i.n++ }

// brokenStatusRunner envuelve el store y hace fallar UpdateStatus dentro de la transacción.
type brokenStatusRunner struct{ store *memory.Store }

func (r brokenStatusRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.store.Run(ctx, func(p repository.ProductRepository, o repository.PurchaseOrderRepository, s repository.SaleRepository) error {
		return fn(p, brokenStatusOrders{o}, s)
	})
}

type brokenStatusOrders struct{ repository.PurchaseOrderRepository }

func (brokenStatusOrders) UpdateStatus(context.Context, string, entity.OrderStatus, time.Time) error {
	return errors.New("conexión perdida")
}

func seed(t *testing.T, store *memory.Store, qty int) *entity.Product {
	t.Helper()
	p := &entity.Product{ID: "p1", Name: "Leche", Price: decimal.RequireFromString("3.20"), Quantity: qty, Supplier: "Lácteos SA"}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func newUseCase(runner inventory.TxRunner, store *memory.Store, inv inventory.ReportInvalidator) *purchasing.UseCase {
	return purchasing.NewUseCase(runner, inventory.NewAdjuster(), store.PurchaseOrders(), store.Products(), inv)
}

func stock(t *testing.T, store *memory.Store) int {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	return p.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Stock 10 → vender 5 y 3 → 2 → orden de 10 aprobada y recibida → 12.
func TestCicloCompleto_VentaYReposicion(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, 10)
	ctx := context.Background()
	inv := &invalidations{}
	adjuster := inventory.NewAdjuster()
	salesUC := sales.NewUseCase(store, adjuster, store.Sales(), nil, nil)
	uc := purchasing.NewUseCase(store, adjuster, store.PurchaseOrders(), store.Products(), inv)

	for _, q := range []int{5, 3} {
		_, err := salesUC.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "p1", QuantitySold: q})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, stock(t, store))

	po, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{ProductID: "p1", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", po.Status)
	require.NotNil(t, po.Product)
	assert.Equal(t, "Leche", po.Product.ProductName)

	approved, err := uc.Approve(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)
	assert.Equal(t, 2, stock(t, store), "aprobar no toca el inventario")

	received, err := uc.Receive(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", received.Status)
	assert.Equal(t, 12, received.Product.Quantity)
	assert.Equal(t, 12, stock(t, store))
	assert.Equal(t, 1, inv.n)
}

func TestTransicionesInvalidas(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, 1)
	ctx := context.Background()
	uc := newUseCase(store, store, nil)

	po, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{ProductID: "p1", Quantity: 4})
	require.NoError(t, err)

	_, err = uc.Receive(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "PENDING no se recibe")
	assert.Equal(t, 1, stock(t, store))

	_, err = uc.Approve(ctx, po.ID)
	require.NoError(t, err)
	_, err = uc.Approve(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se aprueba dos veces")

	_, err = uc.Receive(ctx, po.ID)
	require.NoError(t, err)
	_, err = uc.Receive(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "RECEIVED es terminal")
	_, err = uc.Approve(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 5, stock(t, store), "el stock se suma una sola vez")
}

func TestRecepcionAtomica(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, 2)
	ctx := context.Background()
	inv := &invalidations{}

	ok := newUseCase(store, store, inv)
	po, err := ok.Create(ctx, dto.CreatePurchaseOrderRequest{ProductID: "p1", Quantity: 10})
	require.NoError(t, err)
	_, err = ok.Approve(ctx, po.ID)
	require.NoError(t, err)

	broken := newUseCase(brokenStatusRunner{store: store}, store, inv)
	_, err = broken.Receive(ctx, po.ID)
	require.Error(t, err)

	assert.Equal(t, 2, stock(t, store), "el ajuste de stock se revierte si falla el cambio de estado")
	order, err := store.PurchaseOrders().GetByID(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusApproved, order.Status)
	assert.Zero(t, inv.n)
}

func TestCreate_Validaciones(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, 0)
	ctx := context.Background()
	uc := newUseCase(store, store, nil)

	_, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreatePurchaseOrderRequest{ProductID: "otro", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.Approve(ctx, "inexistente")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_MasRecientePrimero(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, 0)
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		uc := newUseCase(store, store, nil).WithClock(func() time.Time { return at })
		po, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{ProductID: "p1", Quantity: i + 1})
		require.NoError(t, err)
		ids = append(ids, po.ID)
	}

	list, err := newUseCase(store, store, nil).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
}
