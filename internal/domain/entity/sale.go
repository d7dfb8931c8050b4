package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada. Inmutable una vez creada.
// UnitPrice es el precio del producto al momento de la venta.
type Sale struct {
	ID           string
	ProductID    string
	ProductName  string // se llena al leer (JOIN products)
	QuantitySold int
	UnitPrice    decimal.Decimal
	SaleDate     time.Time
}

// Revenue devuelve UnitPrice * QuantitySold.
func (s *Sale) Revenue() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.QuantitySold)))
}
