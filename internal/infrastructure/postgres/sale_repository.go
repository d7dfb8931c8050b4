package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const selectSales = `
	SELECT s.id, s.product_id, p.name, s.quantity_sold, s.unit_price, s.sale_date
	FROM sales s
	JOIN products p ON p.id = s.product_id`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL. Solo INSERT y SELECT.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta con el precio unitario cobrado.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, quantity_sold, unit_price, sale_date)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, s.ID, s.ProductID, s.QuantitySold, s.UnitPrice, s.SaleDate)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// List devuelve todas las ventas por fecha ascendente.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	return r.list(ctx, selectSales+` ORDER BY s.sale_date, s.id`)
}

// ListBetween devuelve las ventas con from <= sale_date <= to.
func (r *SaleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	return r.list(ctx, selectSales+` WHERE s.sale_date BETWEEN $1 AND $2 ORDER BY s.sale_date, s.id`, from, to)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	sales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Sale, error) {
		var s entity.Sale
		err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.QuantitySold, &s.UnitPrice, &s.SaleDate)
		return &s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan sales: %w", err)
	}
	return sales, nil
}
