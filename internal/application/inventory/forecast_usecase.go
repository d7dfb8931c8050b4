package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/domain/analytics"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

// Estados del pronóstico.
const (
	ForecastRestockNeeded = "RESTOCK NEEDED"
	ForecastOK            = "OK"
)

// ForecastUseCase proyecta la demanda de cada producto a partir de su historial reciente de ventas.
type ForecastUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	windowDays  int
	horizonDays int
	now         func() time.Time
}

// NewForecastUseCase construye el caso de uso. windowDays: historial considerado; horizonDays: días proyectados.
func NewForecastUseCase(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, windowDays, horizonDays int) *ForecastUseCase {
	return &ForecastUseCase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		windowDays:  windowDays,
		horizonDays: horizonDays,
		now:         time.Now,
	}
}

// WithClock fija el reloj (tests).
func (uc *ForecastUseCase) WithClock(now func() time.Time) *ForecastUseCase {
	uc.now = now
	return uc
}

// Forecast devuelve, por producto, la demanda proyectada:
// (unidades vendidas en la ventana / días de la ventana) * días del horizonte, a 2 decimales.
// Status es RESTOCK NEEDED cuando el stock actual no cubre esa demanda.
func (uc *ForecastUseCase) Forecast(ctx context.Context) ([]dto.ForecastItemDTO, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("forecast: listar productos: %w", err)
	}
	if len(products) == 0 {
		return []dto.ForecastItemDTO{}, nil
	}

	to := uc.now()
	from := to.AddDate(0, 0, -uc.windowDays)
	sales, err := uc.saleRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("forecast: listar ventas: %w", err)
	}

	unitsByProduct := make(map[string]int64, len(products))
	for _, s := range sales {
		unitsByProduct[s.ProductID] += int64(s.QuantitySold)
	}

	window := decimal.NewFromInt(int64(uc.windowDays))
	horizon := decimal.NewFromInt(int64(uc.horizonDays))

	items := make([]dto.ForecastItemDTO, 0, len(products))
	for _, p := range products {
		demand := analytics.Round2(decimal.NewFromInt(unitsByProduct[p.ID]).Mul(horizon).Div(window))
		status := ForecastOK
		if decimal.NewFromInt(int64(p.Quantity)).LessThan(demand) {
			status = ForecastRestockNeeded
		}
		items = append(items, dto.ForecastItemDTO{
			ProductID:       p.ID,
			ProductName:     p.Name,
			CurrentStock:    p.Quantity,
			PredictedDemand: demand,
			Status:          status,
		})
	}
	return items, nil
}
