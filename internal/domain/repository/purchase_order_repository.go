package repository

import (
	"context"
	"time"

	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
// Las lecturas cargan siempre el Product de la orden.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden (no la del producto).
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, updatedAt time.Time) error
	// ListNewestFirst lista todas las órdenes por CreatedAt descendente.
	ListNewestFirst(ctx context.Context) ([]*entity.PurchaseOrder, error)
	ListByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.PurchaseOrder, error)
}
