package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

type saleRepo struct {
	store *Store
	inTx  bool
}

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.store.lock(r.inTx)()
	if _, ok := r.store.products[sale.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	r.store.sales = append(r.store.sales, *sale)
	return nil
}

func (r *saleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	defer r.store.lock(r.inTx)()
	return r.store.salesWhere(func(entity.Sale) bool { return true }), nil
}

func (r *saleRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.Sale, error) {
	defer r.store.lock(r.inTx)()
	return r.store.salesWhere(func(s entity.Sale) bool {
		return !s.SaleDate.Before(from) && !s.SaleDate.After(to)
	}), nil
}

// salesWhere devuelve las ventas por SaleDate ascendente (empates en orden de inserción)
// con el nombre actual del producto.
func (s *Store) salesWhere(keep func(entity.Sale) bool) []*entity.Sale {
	list := make([]*entity.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		if !keep(sale) {
			continue
		}
		cp := sale
		if p, ok := s.products[cp.ProductID]; ok {
			cp.ProductName = p.Name
		}
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].SaleDate.Before(list[j].SaleDate) })
	return list
}
