package repository

import (
	"context"
	"time"

	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas (solo inserción y lectura).
// Las lecturas llenan ProductName con el nombre actual del producto.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context) ([]*entity.Sale, error)
	// ListBetween devuelve las ventas con from <= SaleDate <= to.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Sale, error)
}
