package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// selectOrders trae la orden con su producto (JOIN) en una sola consulta.
const selectOrders = `
	SELECT o.id, o.product_id, o.quantity, o.status, o.created_at, o.updated_at,
	       p.id, p.name, p.category, p.price, p.quantity, p.supplier, p.image_url, p.created_at, p.updated_at
	FROM purchase_orders o
	JOIN products p ON p.id = o.product_id`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste una nueva orden.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, product_id, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, o.ID, o.ProductID, o.Quantity, string(o.Status), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden con su producto.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, selectOrders+` WHERE o.id = $1`, id)
}

// GetForUpdate bloquea solo la fila de la orden (FOR UPDATE OF o); el producto se bloquea aparte al ajustar stock.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, selectOrders+` WHERE o.id = $1 FOR UPDATE OF o`, id)
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return o, nil
}

// UpdateStatus persiste el nuevo estado.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, updatedAt time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: estado de orden desconocido %q", domain.ErrInvalidInput, status)
	}
	tag, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ListNewestFirst lista todas las órdenes por created_at descendente.
func (r *PurchaseOrderRepo) ListNewestFirst(ctx context.Context) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, selectOrders+` ORDER BY o.created_at DESC, o.id`)
}

// ListByStatus lista las órdenes en el estado indicado, más antiguas primero.
func (r *PurchaseOrderRepo) ListByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, selectOrders+` WHERE o.status = $1 ORDER BY o.created_at, o.id`, string(status))
}

func (r *PurchaseOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var (
		o      entity.PurchaseOrder
		p      entity.Product
		status string
	)
	err := row.Scan(
		&o.ID, &o.ProductID, &o.Quantity, &status, &o.CreatedAt, &o.UpdatedAt,
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.Supplier, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	if !o.Status.Valid() {
		return nil, fmt.Errorf("purchase order %s: estado desconocido %q", o.ID, status)
	}
	o.Product = &p
	return &o, nil
}
