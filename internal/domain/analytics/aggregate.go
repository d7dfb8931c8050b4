// Package analytics agrupa y suma ventas y órdenes de compra por mes, producto y proveedor.
// Funciones puras: no leen de la base de datos ni del reloj.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

// MonthLayout formato de la etiqueta de mes, ej. "Nov 2025".
const MonthLayout = "Jan 2006"

// MonthlyPoint fila de la serie mensual ventas vs compras.
type MonthlyPoint struct {
	Month        string
	SalesRevenue decimal.Decimal
	PurchaseCost decimal.Decimal
}

// NamedValue par nombre → valor (top de productos).
type NamedValue struct {
	Name  string
	Value decimal.Decimal
}

type monthKey struct {
	year  int
	month time.Month
}

func keyOf(t time.Time, loc *time.Location) monthKey {
	lt := t.In(loc)
	return monthKey{year: lt.Year(), month: lt.Month()}
}

func (k monthKey) before(o monthKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}
	return k.month < o.month
}

func (k monthKey) label(loc *time.Location) string {
	return time.Date(k.year, k.month, 1, 0, 0, 0, 0, loc).Format(MonthLayout)
}

// Round2 redondea a 2 decimales (mitad hacia arriba para valores no negativos).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ReceivedOnly filtra las órdenes en estado RECEIVED; las demás no cuentan como costo.
func ReceivedOnly(orders []*entity.PurchaseOrder) []*entity.PurchaseOrder {
	out := make([]*entity.PurchaseOrder, 0, len(orders))
	for _, po := range orders {
		if po != nil && po.Status == entity.OrderStatusReceived {
			out = append(out, po)
		}
	}
	return out
}

// MonthlySalesVsPurchases agrupa ventas por mes de SaleDate y órdenes recibidas por mes de CreatedAt,
// ambos en la zona horaria loc. Devuelve la unión de meses en orden cronológico.
func MonthlySalesVsPurchases(sales []*entity.Sale, received []*entity.PurchaseOrder, loc *time.Location) []MonthlyPoint {
	if loc == nil {
		loc = time.Local
	}
	revenue := make(map[monthKey]decimal.Decimal)
	cost := make(map[monthKey]decimal.Decimal)
	var keys []monthKey
	seen := make(map[monthKey]bool)
	track := func(k monthKey) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for _, s := range sales {
		k := keyOf(s.SaleDate, loc)
		revenue[k] = revenue[k].Add(s.Revenue())
		track(k)
	}
	for _, po := range received {
		k := keyOf(po.CreatedAt, loc)
		cost[k] = cost[k].Add(po.Cost())
		track(k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	points := make([]MonthlyPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, MonthlyPoint{
			Month:        k.label(loc),
			SalesRevenue: Round2(revenue[k]),
			PurchaseCost: Round2(cost[k]),
		})
	}
	return points
}

// TopProductsByRevenue suma ingresos por nombre de producto y devuelve los limit mayores.
// Empates conservan el orden de primera aparición en sales.
func TopProductsByRevenue(sales []*entity.Sale, limit int) []NamedValue {
	if limit <= 0 {
		return []NamedValue{}
	}
	index := make(map[string]int)
	var groups []NamedValue
	for _, s := range sales {
		i, ok := index[s.ProductName]
		if !ok {
			i = len(groups)
			index[s.ProductName] = i
			groups = append(groups, NamedValue{Name: s.ProductName, Value: decimal.Zero})
		}
		groups[i].Value = groups[i].Value.Add(s.Revenue())
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value.GreaterThan(groups[j].Value)
	})
	if len(groups) > limit {
		groups = groups[:limit]
	}
	for i := range groups {
		groups[i].Value = Round2(groups[i].Value)
	}
	return groups
}

// SupplierPurchaseCosts suma precio * cantidad de las órdenes recibidas por nombre de proveedor del producto.
func SupplierPurchaseCosts(received []*entity.PurchaseOrder) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, po := range received {
		if po.Product == nil {
			continue
		}
		name := po.Product.Supplier
		totals[name] = totals[name].Add(po.Cost())
	}
	for name, v := range totals {
		totals[name] = Round2(v)
	}
	return totals
}
