package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest body de POST /api/sales.
type RecordSaleRequest struct {
	ProductID    string `json:"productId"`
	QuantitySold int    `json:"quantitySold"`
}

// SalesReportRequest parámetros de GET /api/sales/report (YYYY-MM-DD, ambos o ninguno).
type SalesReportRequest struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// SaleResponse resumen de una venta; Price es el precio unitario cobrado.
type SaleResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	Price        decimal.Decimal `json:"price"`
	SaleDate     time.Time       `json:"saleDate"`
}
