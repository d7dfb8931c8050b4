// Package sales registra ventas contra el inventario y arma los reportes de ventas.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/application/inventory"
	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

// DateLayout formato de startDate/endDate en el reporte.
const DateLayout = "2006-01-02"

// UseCase registra ventas (transaccional, con bloqueo de fila del producto) y genera reportes.
type UseCase struct {
	txRunner    inventory.TxRunner
	adjuster    *inventory.Adjuster
	saleRepo    repository.SaleRepository
	invalidator inventory.ReportInvalidator
	pdf         ReportPDFGenerator
	now         func() time.Time
	loc         *time.Location
}

// NewUseCase construye el caso de uso. invalidator y pdf pueden ser nil.
func NewUseCase(
	txRunner inventory.TxRunner,
	adjuster *inventory.Adjuster,
	saleRepo repository.SaleRepository,
	invalidator inventory.ReportInvalidator,
	pdf ReportPDFGenerator,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		adjuster:    adjuster,
		saleRepo:    saleRepo,
		invalidator: invalidator,
		pdf:         pdf,
		now:         time.Now,
		loc:         time.Local,
	}
}

// WithClock fija reloj y zona horaria de los días del reporte (tests).
func (uc *UseCase) WithClock(now func() time.Time, loc *time.Location) *UseCase {
	uc.now = now
	if loc != nil {
		uc.loc = loc
	}
	return uc
}

// RecordSale descuenta quantitySold del producto y registra la venta, todo en una transacción.
// El producto se bloquea primero: dos ventas concurrentes del mismo producto se serializan.
//
// Errores:
//   - domain.ErrInvalidInput      si quantitySold <= 0 o productId vacío (antes de cualquier escritura).
//   - domain.ErrProductNotFound   si el producto no existe.
//   - domain.ErrInsufficientStock si no hay unidades suficientes (no se escribe nada).
func (uc *UseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: productId es obligatorio", domain.ErrInvalidInput)
	}
	if in.QuantitySold <= 0 {
		return nil, fmt.Errorf("%w: quantitySold debe ser mayor que 0", domain.ErrInvalidInput)
	}

	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
		saleRepo repository.SaleRepository,
	) error {
		product, err := uc.adjuster.Adjust(ctx, productRepo, in.ProductID, -in.QuantitySold)
		if err != nil {
			return err
		}
		sale = &entity.Sale{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			ProductName:  product.Name,
			QuantitySold: in.QuantitySold,
			UnitPrice:    product.Price,
			SaleDate:     uc.now(),
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return fmt.Errorf("sales: registrar venta: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx)
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

// Report devuelve las ventas del rango [inicio del día start, fin del día end] en la zona local.
// Filtra solo si llegan ambas fechas; con una sola o ninguna devuelve todas.
// start > end devuelve lista vacía. Formato inválido → ErrInvalidInput.
func (uc *UseCase) Report(ctx context.Context, in dto.SalesReportRequest) ([]dto.SaleResponse, error) {
	sales, _, err := uc.load(ctx, in)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

// ReportPDF genera el mismo reporte que Report como documento PDF.
func (uc *UseCase) ReportPDF(ctx context.Context, in dto.SalesReportRequest) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("sales: generador PDF no configurado")
	}
	sales, period, err := uc.load(ctx, in)
	if err != nil {
		return nil, err
	}

	doc := ReportDocument{
		Title:        "Reporte de ventas",
		Period:       period,
		GeneratedAt:  uc.now().In(uc.loc),
		Rows:         toSaleResponses(sales),
		TotalRevenue: decimal.Zero,
	}
	for _, s := range sales {
		doc.TotalUnits += s.QuantitySold
		doc.TotalRevenue = doc.TotalRevenue.Add(s.Revenue())
	}
	doc.TotalRevenue = doc.TotalRevenue.Round(2)

	out, err := uc.pdf.GenerateSalesReport(doc)
	if err != nil {
		return nil, fmt.Errorf("sales: generar PDF: %w", err)
	}
	return out, nil
}

func (uc *UseCase) load(ctx context.Context, in dto.SalesReportRequest) ([]*entity.Sale, string, error) {
	from, to, filtered, err := ParseRange(in.StartDate, in.EndDate, uc.loc)
	if err != nil {
		return nil, "", err
	}
	if !filtered {
		sales, err := uc.saleRepo.List(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("sales: listar ventas: %w", err)
		}
		return sales, "Todas las ventas", nil
	}
	period := fmt.Sprintf("%s a %s", from.Format(DateLayout), to.Format(DateLayout))
	if from.After(to) {
		return []*entity.Sale{}, period, nil
	}
	sales, err := uc.saleRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("sales: listar ventas por rango: %w", err)
	}
	return sales, period, nil
}

// ParseRange convierte startDate/endDate (YYYY-MM-DD) al rango inclusivo
// [00:00 de start, 00:00 de end + 1 día - 1ns] en loc. filtered=false si falta alguna de las dos.
// Con start > end el rango queda vacío (from > to) y no es error.
func ParseRange(startDate, endDate string, loc *time.Location) (from, to time.Time, filtered bool, err error) {
	startDate, endDate = strings.TrimSpace(startDate), strings.TrimSpace(endDate)
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	if loc == nil {
		loc = time.Local
	}
	from, err = time.ParseInLocation(DateLayout, startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: startDate inválida, formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	end, err := time.ParseInLocation(DateLayout, endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: endDate inválida, formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	to = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, to, true, nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		QuantitySold: s.QuantitySold,
		Price:        s.UnitPrice,
		SaleDate:     s.SaleDate,
	}
}

func toSaleResponses(sales []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	return out
}
