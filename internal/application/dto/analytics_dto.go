package dto

import "github.com/shopspring/decimal"

// AnalyticsDTO respuesta de GET /api/reports/analytics.
type AnalyticsDTO struct {
	MonthlySalesVsPurchases []MonthlySalesVsPurchaseDTO `json:"monthlySalesVsPurchases"`
	TopProductsByRevenue    []TopProductDTO             `json:"topProductsByRevenue"`
	SupplierPurchaseCosts   map[string]decimal.Decimal  `json:"supplierPurchaseCosts"`
}

// MonthlySalesVsPurchaseDTO fila del gráfico mensual (claves tal como las consume el frontend).
type MonthlySalesVsPurchaseDTO struct {
	Month        string          `json:"month"` // ej. "Nov 2025"
	SalesRevenue decimal.Decimal `json:"SalesRevenue"`
	PurchaseCost decimal.Decimal `json:"PurchaseCost"`
}

// TopProductDTO porción del gráfico de torta de productos.
type TopProductDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// ForecastItemDTO demanda proyectada de un producto (GET /api/forecast).
type ForecastItemDTO struct {
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	CurrentStock    int             `json:"currentStock"`
	PredictedDemand decimal.Decimal `json:"predictedDemand"`
	Status          string          `json:"status"` // "RESTOCK NEEDED" | "OK"
}
