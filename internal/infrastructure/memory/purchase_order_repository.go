package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

type orderRepo struct {
	store *Store
	inTx  bool
}

func (r *orderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	defer r.store.lock(r.inTx)()
	if _, ok := r.store.products[o.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	if _, ok := r.store.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *o
	cp.Product = nil
	r.store.orders[o.ID] = cp
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	defer r.store.lock(r.inTx)()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return r.store.withProduct(o), nil
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus, updatedAt time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: estado de orden desconocido %q", domain.ErrInvalidInput, status)
	}
	defer r.store.lock(r.inTx)()
	o, ok := r.store.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.store.orders[id] = o
	return nil
}

func (r *orderRepo) ListNewestFirst(_ context.Context) ([]*entity.PurchaseOrder, error) {
	defer r.store.lock(r.inTx)()
	list := r.store.ordersWhere(func(entity.PurchaseOrder) bool { return true })
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *orderRepo) ListByStatus(_ context.Context, status entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	defer r.store.lock(r.inTx)()
	list := r.store.ordersWhere(func(o entity.PurchaseOrder) bool { return o.Status == status })
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (s *Store) ordersWhere(keep func(entity.PurchaseOrder) bool) []*entity.PurchaseOrder {
	list := make([]*entity.PurchaseOrder, 0, len(s.orders))
	for _, o := range s.orders {
		if keep(o) {
			list = append(list, s.withProduct(o))
		}
	}
	// orden base determinista antes del sort por fecha
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (s *Store) withProduct(o entity.PurchaseOrder) *entity.PurchaseOrder {
	o.Product = s.product(o.ProductID)
	return &o
}
