// Package analytics contiene el caso de uso del reporte de analítica (ventas vs compras,
// top de productos y costo por proveedor) y su caché opcional.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	domainanalytics "github.com/jhoicas/smartshelf-api/internal/domain/analytics"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

// DefaultTopProducts número de productos del gráfico de torta.
const DefaultTopProducts = 5

// ReportCache guarda el reporte ya armado, versionado por generación. Invalidate avanza la
// generación, así un reporte leído antes de la invalidación y guardado después queda en una
// generación vieja y nunca se sirve. Las implementaciones no devuelven errores: un fallo de
// caché equivale a un miss (Generation devuelve ok=false y no se guarda nada).
type ReportCache interface {
	Generation(ctx context.Context) (gen int64, ok bool)
	Get(ctx context.Context, gen int64) (*dto.AnalyticsDTO, bool)
	Set(ctx context.Context, gen int64, report *dto.AnalyticsDTO)
	Invalidate(ctx context.Context)
}

// ReportUseCase arma el reporte de analítica a partir de todas las ventas y las órdenes RECEIVED.
type ReportUseCase struct {
	saleRepo  repository.SaleRepository
	orderRepo repository.PurchaseOrderRepository
	cache     ReportCache
	topN      int
	loc       *time.Location
}

// NewReportUseCase construye el caso de uso. cache puede ser nil; topN <= 0 usa DefaultTopProducts.
func NewReportUseCase(
	saleRepo repository.SaleRepository,
	orderRepo repository.PurchaseOrderRepository,
	cache ReportCache,
	topN int,
) *ReportUseCase {
	if topN <= 0 {
		topN = DefaultTopProducts
	}
	return &ReportUseCase{
		saleRepo:  saleRepo,
		orderRepo: orderRepo,
		cache:     cache,
		topN:      topN,
		loc:       time.Local,
	}
}

// WithLocation fija la zona horaria usada para agrupar por mes (tests).
func (uc *ReportUseCase) WithLocation(loc *time.Location) *ReportUseCase {
	if loc != nil {
		uc.loc = loc
	}
	return uc
}

// GetReport devuelve el reporte, desde caché si está disponible.
//
// Dos lecturas en paralelo:
//  1. todas las ventas          → serie mensual (ingresos) + top productos
//  2. órdenes en RECEIVED       → serie mensual (costos) + costo por proveedor
func (uc *ReportUseCase) GetReport(ctx context.Context) (*dto.AnalyticsDTO, error) {
	var (
		gen       int64
		cacheable bool
	)
	if uc.cache != nil {
		// La generación se lee antes que los datos.
		gen, cacheable = uc.cache.Generation(ctx)
		if cacheable {
			if cached, ok := uc.cache.Get(ctx, gen); ok {
				return cached, nil
			}
		}
	}

	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type ordersResult struct {
		orders []*entity.PurchaseOrder
		err    error
	}
	salesCh := make(chan salesResult, 1)
	ordersCh := make(chan ordersResult, 1)

	go func() {
		sales, err := uc.saleRepo.List(ctx)
		salesCh <- salesResult{sales, err}
	}()
	go func() {
		orders, err := uc.orderRepo.ListByStatus(ctx, entity.OrderStatusReceived)
		ordersCh <- ordersResult{orders, err}
	}()

	sr := <-salesCh
	or := <-ordersCh
	if sr.err != nil {
		return nil, fmt.Errorf("analytics: ventas: %w", sr.err)
	}
	if or.err != nil {
		return nil, fmt.Errorf("analytics: órdenes recibidas: %w", or.err)
	}

	report := Build(sr.sales, or.orders, uc.topN, uc.loc)
	if cacheable {
		uc.cache.Set(ctx, gen, report)
	}
	return report, nil
}

// Invalidate descarta el reporte en caché. Se llama tras cada venta, cada recepción y cada
// edición o borrado de producto.
func (uc *ReportUseCase) Invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}

// Build arma el DTO a partir de ventas y órdenes. Las órdenes que no estén RECEIVED se ignoran.
func Build(sales []*entity.Sale, orders []*entity.PurchaseOrder, topN int, loc *time.Location) *dto.AnalyticsDTO {
	received := domainanalytics.ReceivedOnly(orders)

	monthly := domainanalytics.MonthlySalesVsPurchases(sales, received, loc)
	monthlyDTO := make([]dto.MonthlySalesVsPurchaseDTO, 0, len(monthly))
	for _, m := range monthly {
		monthlyDTO = append(monthlyDTO, dto.MonthlySalesVsPurchaseDTO{
			Month:        m.Month,
			SalesRevenue: m.SalesRevenue,
			PurchaseCost: m.PurchaseCost,
		})
	}

	top := domainanalytics.TopProductsByRevenue(sales, topN)
	topDTO := make([]dto.TopProductDTO, 0, len(top))
	for _, t := range top {
		topDTO = append(topDTO, dto.TopProductDTO{Name: t.Name, Value: t.Value})
	}

	suppliers := domainanalytics.SupplierPurchaseCosts(received)
	if suppliers == nil {
		suppliers = map[string]decimal.Decimal{}
	}

	return &dto.AnalyticsDTO{
		MonthlySalesVsPurchases: monthlyDTO,
		TopProductsByRevenue:    topDTO,
		SupplierPurchaseCosts:   suppliers,
	}
}
