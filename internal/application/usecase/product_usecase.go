package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/application/inventory"
	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Los cambios de Quantity pasan por el Adjuster.
type ProductUseCase struct {
	repo        repository.ProductRepository
	txRunner    inventory.TxRunner
	adjuster    *inventory.Adjuster
	invalidator inventory.ReportInvalidator
}

// NewProductUseCase construye el caso de uso. invalidator puede ser nil.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	adjuster *inventory.Adjuster,
	invalidator inventory.ReportInvalidator,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, adjuster: adjuster, invalidator: invalidator}
}

// PriceScale decimales con los que se guarda el precio (NUMERIC(14,2)).
const PriceScale = 2

// Create crea un nuevo producto con su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.ProductName) == "" {
		return nil, fmt.Errorf("%w: productName es obligatorio", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.ProductName),
		Category:  in.Category,
		Price:     in.Price.Round(PriceScale),
		Quantity:  in.Quantity,
		Supplier:  in.Supplier,
		ImageURL:  in.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("product: crear: %w", err)
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID. ErrProductNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update modifica los campos enviados. Si Quantity cambia, la diferencia se aplica como ajuste
// de inventario dentro de la misma transacción que el resto de los campos.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.ProductName != nil && strings.TrimSpace(*in.ProductName) == "" {
		return nil, fmt.Errorf("%w: productName no puede quedar vacío", domain.ErrInvalidInput)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
	) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if in.ProductName != nil {
			product.Name = strings.TrimSpace(*in.ProductName)
		}
		if in.Category != nil {
			product.Category = *in.Category
		}
		if in.Price != nil {
			product.Price = in.Price.Round(PriceScale)
		}
		if in.Supplier != nil {
			product.Supplier = *in.Supplier
		}
		if in.ImageURL != nil {
			product.ImageURL = *in.ImageURL
		}
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		if in.Quantity != nil && *in.Quantity != product.Quantity {
			adjusted, err := uc.adjuster.Adjust(ctx, productRepo, product.ID, *in.Quantity-product.Quantity)
			if err != nil {
				return err
			}
			product.Quantity = adjusted.Quantity
			product.UpdatedAt = adjusted.UpdatedAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Precio, nombre y proveedor alimentan el reporte de analítica.
	uc.invalidate(ctx)
	resp := ToProductResponse(product)
	return &resp, nil
}

// List lista productos con filtros opcionales de categoría, proveedor y stock máximo.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Category: strings.TrimSpace(in.Category),
		Supplier: strings.TrimSpace(in.Supplier),
		MaxStock: in.MaxStock,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, ToProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto. ErrConflict si alguna orden o venta lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx)
	}
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		ProductName: p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Supplier:    p.Supplier,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
