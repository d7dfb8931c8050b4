// Package memory implementa los repositorios y el TxRunner en memoria de proceso.
// Se usa en tests y con DB_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
)

// Store guarda todas las entidades. Un único mutex serializa las transacciones completas
// y cada operación suelta, lo que equivale a bloquear todas las filas a la vez.
type Store struct {
	mu        sync.Mutex
	products  map[string]entity.Product
	suppliers map[string]entity.Supplier
	orders    map[string]entity.PurchaseOrder
	sales     []entity.Sale // orden de inserción
	users     map[string]entity.User
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]entity.Product),
		suppliers: make(map[string]entity.Supplier),
		orders:    make(map[string]entity.PurchaseOrder),
		users:     make(map[string]entity.User),
	}
}

// Products devuelve el repositorio de productos (fuera de transacción).
func (s *Store) Products() repository.ProductRepository { return &productRepo{store: s} }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{store: s} }

// PurchaseOrders devuelve el repositorio de órdenes de compra (fuera de transacción).
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return &orderRepo{store: s} }

// Sales devuelve el repositorio de ventas (fuera de transacción).
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{store: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{store: s} }

// Run ejecuta fn con el Store bloqueado. Si fn devuelve error (o entra en pánico)
// se restaura el estado previo, igual que un ROLLBACK.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	saleRepo repository.SaleRepository,
) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
	}()

	if err := fn(&productRepo{store: s, inTx: true}, &orderRepo{store: s, inTx: true}, &saleRepo{store: s, inTx: true}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	products map[string]entity.Product
	orders   map[string]entity.PurchaseOrder
	sales    []entity.Sale
}

// snapshot copia lo que una transacción puede modificar (productos, órdenes, ventas).
func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products: make(map[string]entity.Product, len(s.products)),
		orders:   make(map[string]entity.PurchaseOrder, len(s.orders)),
		sales:    append([]entity.Sale(nil), s.sales...),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.orders = snap.orders
	s.sales = snap.sales
}

// lock toma el mutex salvo que la operación ya corra dentro de Run.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func sortProducts(list []*entity.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}
