package repository

import (
	"context"
	"time"

	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado de productos. Vacío = sin filtro.
type ProductFilter struct {
	Category string
	Supplier string
	MaxStock *int // solo productos con Quantity <= MaxStock
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica los datos descriptivos; Quantity solo cambia vía UpdateQuantity.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int, updatedAt time.Time) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Delete devuelve domain.ErrConflict si hay órdenes o ventas que referencian el producto.
	Delete(ctx context.Context, id string) error
}
