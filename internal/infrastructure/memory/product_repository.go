package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

type productRepo struct {
	store *Store
	inTx  bool
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.store.lock(r.inTx)()
	if _, ok := r.store.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.store.lock(r.inTx)()
	return r.store.product(id), nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.store.lock(r.inTx)()
	cur, ok := r.store.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	upd := *p
	upd.Quantity = cur.Quantity
	upd.CreatedAt = cur.CreatedAt
	r.store.products[p.ID] = upd
	return nil
}

func (r *productRepo) UpdateQuantity(_ context.Context, id string, quantity int, updatedAt time.Time) error {
	defer r.store.lock(r.inTx)()
	cur, ok := r.store.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	cur.Quantity = quantity
	cur.UpdatedAt = updatedAt
	r.store.products[id] = cur
	return nil
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	defer r.store.lock(r.inTx)()
	list := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.Supplier != "" && !strings.EqualFold(p.Supplier, f.Supplier) {
			continue
		}
		if f.MaxStock != nil && p.Quantity > *f.MaxStock {
			continue
		}
		cp := p
		list = append(list, &cp)
	}
	sortProducts(list)
	return list, nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	defer r.store.lock(r.inTx)()
	for _, o := range r.store.orders {
		if o.ProductID == id {
			return domain.ErrConflict
		}
	}
	for _, s := range r.store.sales {
		if s.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.store.products, id)
	return nil
}

// product devuelve una copia del producto o nil. Requiere el mutex tomado.
func (s *Store) product(id string) *entity.Product {
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	return &p
}
