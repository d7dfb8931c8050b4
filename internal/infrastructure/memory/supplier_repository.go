package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

type supplierRepo struct {
	store *Store
}

func (r *supplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	defer r.store.lock(false)()
	if r.store.supplierNameTaken(sup.Name, "") {
		return domain.ErrSupplierNameExists
	}
	r.store.suppliers[sup.ID] = *sup
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	defer r.store.lock(false)()
	sup, ok := r.store.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *supplierRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	defer r.store.lock(false)()
	return r.store.supplierNameTaken(name, ""), nil
}

func (r *supplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	defer r.store.lock(false)()
	cur, ok := r.store.suppliers[sup.ID]
	if !ok {
		return domain.ErrSupplierNotFound
	}
	if r.store.supplierNameTaken(sup.Name, sup.ID) {
		return domain.ErrSupplierNameExists
	}
	upd := *sup
	upd.CreatedAt = cur.CreatedAt
	r.store.suppliers[sup.ID] = upd
	return nil
}

func (r *supplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	defer r.store.lock(false)()
	list := make([]*entity.Supplier, 0, len(r.store.suppliers))
	for _, sup := range r.store.suppliers {
		cp := sup
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *supplierRepo) Delete(_ context.Context, id string) error {
	defer r.store.lock(false)()
	delete(r.store.suppliers, id)
	return nil
}

func (s *Store) supplierNameTaken(name, exceptID string) bool {
	for id, sup := range s.suppliers {
		if id != exceptID && sup.Name == name {
			return true
		}
	}
	return false
}
