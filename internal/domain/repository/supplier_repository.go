package repository

import (
	"context"

	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
// Create y Update devuelven domain.ErrSupplierNameExists si el nombre ya está en uso.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}
