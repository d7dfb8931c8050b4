package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario (una sola bodega).
// Supplier guarda el nombre del proveedor, no una FK: la unicidad del nombre en suppliers es la única garantía.
type Product struct {
	ID        string
	Name      string
	Category  string
	Price     decimal.Decimal // precio de venta, nunca negativo
	Quantity  int             // unidades en stock, nunca negativo
	Supplier  string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
