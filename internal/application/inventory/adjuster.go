package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	domaininv "github.com/jhoicas/smartshelf-api/internal/domain/inventory"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

// Adjuster es el único punto que cambia Product.Quantity.
// Siempre recibe el repositorio atado a la transacción del llamador.
type Adjuster struct {
	now func() time.Time
}

// NewAdjuster construye el mutador de inventario.
func NewAdjuster() *Adjuster {
	return &Adjuster{now: time.Now}
}

// Adjust bloquea la fila del producto (SELECT FOR UPDATE), aplica quantity += delta y persiste.
// Devuelve ErrProductNotFound si no existe y ErrInsufficientStock si el resultado sería negativo;
// en ambos casos no escribe nada.
func (a *Adjuster) Adjust(ctx context.Context, productRepo repository.ProductRepository, productID string, delta int) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("inventory: bloquear producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	next, err := domaininv.ApplyDelta(product.Quantity, delta)
	if err != nil {
		return nil, err
	}
	now := a.now()
	if err := productRepo.UpdateQuantity(ctx, product.ID, next, now); err != nil {
		return nil, fmt.Errorf("inventory: actualizar cantidad: %w", err)
	}
	product.Quantity = next
	product.UpdatedAt = now
	return product, nil
}
