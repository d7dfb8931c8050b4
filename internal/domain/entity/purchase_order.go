package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartshelf-api/internal/domain"
)

// OrderStatus estado de una orden de compra.
//
//	PENDING  → creada, esperando aprobación.
//	APPROVED → aprobada, lista para enviarse al proveedor.
//	ORDERED  → enviada al proveedor (ningún caso de uso la alcanza todavía).
//	RECEIVED → mercancía recibida y sumada al inventario (terminal).
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusApproved OrderStatus = "APPROVED"
	OrderStatusOrdered  OrderStatus = "ORDERED"
	OrderStatusReceived OrderStatus = "RECEIVED"
)

// Valid indica si el estado es uno de los cuatro conocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusOrdered, OrderStatusReceived:
		return true
	}
	return false
}

// PurchaseOrder solicitud de reposición de un producto.
// Product se carga siempre junto con la orden.
type PurchaseOrder struct {
	ID        string
	ProductID string
	Product   *Product
	Quantity  int
	Status    OrderStatus
	CreatedAt time.Time // se fija al crear, no cambia
	UpdatedAt time.Time
}

// Approve aplica PENDING → APPROVED.
func (po *PurchaseOrder) Approve(now time.Time) error {
	if po.Status != OrderStatusPending {
		return domain.ErrInvalidTransition
	}
	po.Status = OrderStatusApproved
	po.UpdatedAt = now
	return nil
}

// CanReceive indica si la orden puede pasar a RECEIVED (desde APPROVED u ORDERED).
func (po *PurchaseOrder) CanReceive() bool {
	return po.Status == OrderStatusApproved || po.Status == OrderStatusOrdered
}

// MarkReceived aplica APPROVED|ORDERED → RECEIVED. El ajuste de inventario lo hace el caso de uso.
func (po *PurchaseOrder) MarkReceived(now time.Time) error {
	if !po.CanReceive() {
		return domain.ErrInvalidTransition
	}
	po.Status = OrderStatusReceived
	po.UpdatedAt = now
	return nil
}

// Cost devuelve precio actual del producto * cantidad pedida (cero si el producto no está cargado).
func (po *PurchaseOrder) Cost() decimal.Decimal {
	if po.Product == nil {
		return decimal.Zero
	}
	return po.Product.Price.Mul(decimal.NewFromInt(int64(po.Quantity)))
}
