package inventory

import (
	"context"

	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo lo escrito por los tres repositorios.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReportInvalidator descarta reportes derivados (caché de analítica) tras un cambio de ventas o compras.
// Un valor nil es válido: no hay caché.
type ReportInvalidator interface {
	Invalidate(ctx context.Context)
}
