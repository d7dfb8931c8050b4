package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
)

// ReportDocument datos que se imprimen en el PDF del reporte de ventas.
type ReportDocument struct {
	Title        string
	Period       string // "Todas las ventas" o "2025-11-01 a 2025-11-30"
	GeneratedAt  time.Time
	Rows         []dto.SaleResponse
	TotalUnits   int
	TotalRevenue decimal.Decimal
}

// ReportPDFGenerator puerto para generar el PDF del reporte (implementado con maroto).
type ReportPDFGenerator interface {
	GenerateSalesReport(doc ReportDocument) ([]byte, error)
}
