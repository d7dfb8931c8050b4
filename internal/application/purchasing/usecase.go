// Package purchasing gestiona el ciclo de vida de las órdenes de compra y su efecto sobre el inventario.
package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/application/inventory"
	"github.com/jhoicas/smartshelf-api/internal/application/usecase"
	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

// UseCase crea, aprueba, recibe y lista órdenes de compra.
//
//	PENDING ──approve──▶ APPROVED ──receive──▶ RECEIVED
//	                     ORDERED  ──receive──▶ RECEIVED
type UseCase struct {
	txRunner    inventory.TxRunner
	adjuster    *inventory.Adjuster
	orderRepo   repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
	invalidator inventory.ReportInvalidator
	now         func() time.Time
}

// NewUseCase construye el caso de uso. invalidator puede ser nil.
func NewUseCase(
	txRunner inventory.TxRunner,
	adjuster *inventory.Adjuster,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	invalidator inventory.ReportInvalidator,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		adjuster:    adjuster,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// WithClock fija el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create registra una orden PENDING para un producto existente.
// Devuelve ErrInvalidInput si quantity <= 0 y ErrProductNotFound si el producto no existe.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: productId es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que 0", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("purchasing: obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	now := uc.now()
	order := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Product:   product,
		Quantity:  in.Quantity,
		Status:    entity.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("purchasing: crear orden: %w", err)
	}
	return toOrderResponse(order), nil
}

// Approve aplica PENDING → APPROVED. No toca el inventario.
func (uc *UseCase) Approve(ctx context.Context, orderID string) (*dto.PurchaseOrderResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
	) error {
		var err error
		order, err = lockOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if err := order.Approve(uc.now()); err != nil {
			return err
		}
		return orderRepo.UpdateStatus(ctx, order.ID, order.Status, order.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Receive aplica APPROVED|ORDERED → RECEIVED y suma la cantidad al producto en la misma transacción.
// Orden y producto quedan bloqueados hasta el commit; cualquier error deshace ambos cambios.
func (uc *UseCase) Receive(ctx context.Context, orderID string) (*dto.PurchaseOrderResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
	) error {
		var err error
		order, err = lockOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if err := order.MarkReceived(uc.now()); err != nil {
			return err
		}
		product, err := uc.adjuster.Adjust(ctx, productRepo, order.ProductID, order.Quantity)
		if err != nil {
			return err
		}
		order.Product = product
		return orderRepo.UpdateStatus(ctx, order.ID, order.Status, order.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}

	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx)
	}
	return toOrderResponse(order), nil
}

// List devuelve todas las órdenes, la más reciente primero.
func (uc *UseCase) List(ctx context.Context) ([]dto.PurchaseOrderResponse, error) {
	orders, err := uc.orderRepo.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("purchasing: listar órdenes: %w", err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

func lockOrder(ctx context.Context, orderRepo repository.PurchaseOrderRepository, orderID string) (*entity.PurchaseOrder, error) {
	order, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("purchasing: bloquear orden: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:        o.ID,
		Quantity:  o.Quantity,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
	if o.Product != nil {
		p := usecase.ToProductResponse(o.Product)
		resp.Product = &p
	}
	return resp
}
