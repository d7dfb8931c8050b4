package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Supplier    string          `json:"supplier"`
	ImageURL    string          `json:"imageUrl"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil no se modifican.
// Un cambio de Quantity se aplica como ajuste de inventario (delta) bajo bloqueo de fila.
type UpdateProductRequest struct {
	ProductName *string          `json:"productName"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Supplier    *string          `json:"supplier"`
	ImageURL    *string          `json:"imageUrl"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	Category string `query:"category"`
	Supplier string `query:"supplier"`
	MaxStock *int   `query:"maxStock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Supplier    string          `json:"supplier"`
	ImageURL    string          `json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
