package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartshelf-api/internal/application/analytics"
	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
	"github.com/jhoicas/smartshelf-api/internal/infrastructure/memory"
)

// memCache caché de prueba por generación que cuenta llamadas.
type memCache struct {
	gen               int64
	reports           map[int64]*dto.AnalyticsDTO
	gets, sets, drops int
}

func (c *memCache) Generation(context.Context) (int64, bool) { return c.gen, true }

func (c *memCache) Get(_ context.Context, gen int64) (*dto.AnalyticsDTO, bool) {
	c.gets++
	r, ok := c.reports[gen]
	return r, ok
}

func (c *memCache) Set(_ context.Context, gen int64, r *dto.AnalyticsDTO) {
	c.sets++
	if c.reports == nil {
		c.reports = make(map[int64]*dto.AnalyticsDTO)
	}
	c.reports[gen] = r
}

func (c *memCache) Invalidate(context.Context) {
	c.drops++
	c.gen++
}

// saleRepoWithHook ejecuta afterList justo después de leer las ventas.
type saleRepoWithHook struct {
	repository.SaleRepository
	afterList func()
}

func (r *saleRepoWithHook) List(ctx context.Context) ([]*entity.Sale, error) {
	out, err := r.SaleRepository.List(ctx)
	if r.afterList != nil {
		r.afterList()
		r.afterList = nil
	}
	return out, err
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBuild_MesesCronologicosYSoloRecibidas(t *testing.T) {
	cola := &entity.Product{ID: "p1", Name: "Cola", Price: dec("2"), Supplier: "Acme"}
	pan := &entity.Product{ID: "p2", Name: "Pan", Price: dec("1.5"), Supplier: "Panadería"}

	sales := []*entity.Sale{
		{ProductName: "Cola", QuantitySold: 3, UnitPrice: dec("2"), SaleDate: time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)},
		{ProductName: "Pan", QuantitySold: 10, UnitPrice: dec("1.5"), SaleDate: time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)},
		{ProductName: "Cola", QuantitySold: 1, UnitPrice: dec("2.5"), SaleDate: time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC)},
	}
	orders := []*entity.PurchaseOrder{
		{Product: cola, Quantity: 10, Status: entity.OrderStatusReceived, CreatedAt: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{Product: pan, Quantity: 4, Status: entity.OrderStatusReceived, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Product: pan, Quantity: 99, Status: entity.OrderStatusApproved, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	out := analytics.Build(sales, orders, 5, time.UTC)

	require.Len(t, out.MonthlySalesVsPurchases, 3)
	assert.Equal(t, "Dec 2024", out.MonthlySalesVsPurchases[0].Month)
	assert.Equal(t, "Jan 2025", out.MonthlySalesVsPurchases[1].Month)
	assert.Equal(t, "Feb 2025", out.MonthlySalesVsPurchases[2].Month)
	assert.Equal(t, "15", out.MonthlySalesVsPurchases[0].SalesRevenue.String())
	assert.Equal(t, "20", out.MonthlySalesVsPurchases[1].PurchaseCost.String())
	assert.Equal(t, "8.5", out.MonthlySalesVsPurchases[2].SalesRevenue.String())
	assert.Equal(t, "6", out.MonthlySalesVsPurchases[2].PurchaseCost.String())

	require.Len(t, out.TopProductsByRevenue, 2)
	assert.Equal(t, "Pan", out.TopProductsByRevenue[0].Name)
	assert.Equal(t, "Cola", out.TopProductsByRevenue[1].Name)

	assert.Equal(t, "20", out.SupplierPurchaseCosts["Acme"].String())
	assert.Equal(t, "6", out.SupplierPurchaseCosts["Panadería"].String())
}

func TestBuild_SinDatos(t *testing.T) {
	out := analytics.Build(nil, nil, 5, time.UTC)
	assert.NotNil(t, out.MonthlySalesVsPurchases)
	assert.NotNil(t, out.TopProductsByRevenue)
	assert.NotNil(t, out.SupplierPurchaseCosts)
	assert.Empty(t, out.SupplierPurchaseCosts)
}

func TestGetReport_UsaYRefrescaCache(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Cola", Price: dec("2"), Quantity: 5}))
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{ID: "s1", ProductID: "p1", QuantitySold: 2, UnitPrice: dec("2"), SaleDate: time.Now()}))

	cache := &memCache{}
	uc := analytics.NewReportUseCase(store.Sales(), store.PurchaseOrders(), cache, 0).WithLocation(time.UTC)

	first, err := uc.GetReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	require.Len(t, first.TopProductsByRevenue, 1)

	second, err := uc.GetReport(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second, "segunda lectura sale de caché")
	assert.Equal(t, 1, cache.sets)

	uc.Invalidate(ctx)
	assert.Equal(t, 1, cache.drops)
	_, err = uc.GetReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}

// Una venta que se confirma e invalida mientras se arma el reporte no queda tapada por él.
func TestGetReport_InvalidacionDuranteLecturaNoGuardaReporteViejo(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Cola", Price: dec("2"), Quantity: 5}))

	cache := &memCache{}
	var uc *analytics.ReportUseCase
	sales := &saleRepoWithHook{SaleRepository: store.Sales()}
	sales.afterList = func() {
		assert.NoError(t, store.Sales().Create(ctx, &entity.Sale{ID: "s1", ProductID: "p1", QuantitySold: 2, UnitPrice: dec("2"), SaleDate: time.Now()}))
		uc.Invalidate(ctx)
	}
	uc = analytics.NewReportUseCase(sales, store.PurchaseOrders(), cache, 0).WithLocation(time.UTC)

	stale, err := uc.GetReport(ctx)
	require.NoError(t, err)
	assert.Empty(t, stale.TopProductsByRevenue, "la lectura fue anterior a la venta")

	fresh, err := uc.GetReport(ctx)
	require.NoError(t, err)
	require.Len(t, fresh.TopProductsByRevenue, 1)
	assert.Equal(t, "4", fresh.TopProductsByRevenue[0].Value.String())
}

func TestGetReport_SinCache(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewReportUseCase(store.Sales(), store.PurchaseOrders(), nil, 3)
	out, err := uc.GetReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.MonthlySalesVsPurchases)
	uc.Invalidate(context.Background())
}
