package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartshelf-api/internal/domain/analytics"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

// Bogotá (UTC-5) fija para que los cortes de mes no dependan del entorno.
var testLoc = time.FixedZone("UTC-5", -5*60*60)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(name, price string, qty int, at time.Time) *entity.Sale {
	return &entity.Sale{ProductName: name, UnitPrice: dec(price), QuantitySold: qty, SaleDate: at}
}

func order(supplier, price string, qty int, status entity.OrderStatus, at time.Time) *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		Product:   &entity.Product{Name: "p-" + supplier, Price: dec(price), Supplier: supplier},
		Quantity:  qty,
		Status:    status,
		CreatedAt: at,
	}
}

func TestMonthlySalesVsPurchases_AgrupaPorMesLocal(t *testing.T) {
	sales := []*entity.Sale{
		sale("Leche", "10.00", 3, time.Date(2025, 1, 10, 12, 0, 0, 0, testLoc)),
		// 03:00 UTC del 1 de febrero = 22:00 del 31 de enero en UTC-5
		sale("Pan", "2.50", 4, time.Date(2025, 2, 1, 3, 0, 0, 0, time.UTC)),
		sale("Pan", "2.50", 2, time.Date(2025, 2, 15, 9, 0, 0, 0, testLoc)),
	}
	received := []*entity.PurchaseOrder{
		order("Acme", "4.00", 10, entity.OrderStatusReceived, time.Date(2025, 1, 5, 8, 0, 0, 0, testLoc)),
		order("Acme", "4.00", 5, entity.OrderStatusReceived, time.Date(2025, 3, 5, 8, 0, 0, 0, testLoc)),
	}

	points := analytics.MonthlySalesVsPurchases(sales, received, testLoc)

	require.Len(t, points, 3)
	assert.Equal(t, "Jan 2025", points[0].Month)
	assert.True(t, dec("40").Equal(points[0].SalesRevenue), "30 + 10 de la venta de las 22:00 locales")
	assert.True(t, dec("40").Equal(points[0].PurchaseCost))
	assert.Equal(t, "Feb 2025", points[1].Month)
	assert.True(t, dec("5").Equal(points[1].SalesRevenue))
	assert.True(t, points[1].PurchaseCost.IsZero())
	assert.Equal(t, "Mar 2025", points[2].Month)
	assert.True(t, points[2].SalesRevenue.IsZero())
	assert.True(t, dec("20").Equal(points[2].PurchaseCost))
}

func TestMonthlySalesVsPurchases_OrdenCronologico(t *testing.T) {
	// Orden lexicográfico pondría "Apr 2025" antes de "Jan 2024".
	sales := []*entity.Sale{
		sale("A", "1", 1, time.Date(2025, 4, 1, 12, 0, 0, 0, testLoc)),
		sale("A", "1", 1, time.Date(2024, 1, 1, 12, 0, 0, 0, testLoc)),
		sale("A", "1", 1, time.Date(2024, 12, 1, 12, 0, 0, 0, testLoc)),
	}
	points := analytics.MonthlySalesVsPurchases(sales, nil, testLoc)

	months := make([]string, 0, len(points))
	for _, p := range points {
		months = append(months, p.Month)
	}
	assert.Equal(t, []string{"Jan 2024", "Dec 2024", "Apr 2025"}, months)
}

func TestMonthlySalesVsPurchases_SumaTotalCoincide(t *testing.T) {
	var sales []*entity.Sale
	expected := decimal.Zero
	for i := 0; i < 40; i++ {
		price := dec(fmt.Sprintf("%d.%02d", i%7+1, (i*13)%100))
		qty := i%5 + 1
		sales = append(sales, sale("x", price.String(), qty, time.Date(2025, time.Month(i%12+1), i%27+1, 10, 0, 0, 0, testLoc)))
		expected = expected.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	points := analytics.MonthlySalesVsPurchases(sales, nil, testLoc)

	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.SalesRevenue)
	}
	tolerance := dec("0.01").Mul(decimal.NewFromInt(int64(len(points))))
	assert.True(t, total.Sub(expected).Abs().LessThanOrEqual(tolerance),
		"la suma mensual (%s) debe coincidir con la suma de ventas (%s)", total, expected)
}

func TestReceivedOnly_ExcluyeOtrosEstados(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, testLoc)
	orders := []*entity.PurchaseOrder{
		order("A", "1", 1, entity.OrderStatusPending, at),
		order("B", "1", 1, entity.OrderStatusApproved, at),
		order("C", "1", 1, entity.OrderStatusOrdered, at),
		order("D", "1", 1, entity.OrderStatusReceived, at),
	}
	got := analytics.ReceivedOnly(orders)
	require.Len(t, got, 1)
	assert.Equal(t, "D", got[0].Product.Supplier)
}

func TestTopProductsByRevenue_LimiteYOrden(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, testLoc)
	sales := []*entity.Sale{
		sale("A", "1.00", 10, at), // 10
		sale("B", "5.00", 1, at),  // 5
		sale("C", "3.00", 5, at),  // 15
		sale("D", "2.00", 1, at),  // 2
		sale("E", "1.00", 5, at),  // 5, empata con B
		sale("F", "0.50", 1, at),  // 0.5
		sale("G", "4.00", 1, at),  // 4
		sale("A", "1.00", 2, at),  // A = 12
	}

	top := analytics.TopProductsByRevenue(sales, 5)

	require.Len(t, top, 5)
	names := []string{top[0].Name, top[1].Name, top[2].Name, top[3].Name, top[4].Name}
	assert.Equal(t, []string{"C", "A", "B", "E", "G"}, names, "B precede a E por orden de aparición")
	for i := 1; i < len(top); i++ {
		assert.True(t, top[i-1].Value.GreaterThanOrEqual(top[i].Value))
	}
	assert.True(t, dec("12").Equal(top[1].Value))
}

func TestTopProductsByRevenue_Vacio(t *testing.T) {
	assert.Empty(t, analytics.TopProductsByRevenue(nil, 5))
	assert.Empty(t, analytics.TopProductsByRevenue([]*entity.Sale{sale("A", "1", 1, time.Now())}, 0))
}

func TestSupplierPurchaseCosts_RedondeaADosDecimales(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, testLoc)
	received := []*entity.PurchaseOrder{
		order("Acme", "0.335", 1, entity.OrderStatusReceived, at),
		order("Acme", "1.00", 2, entity.OrderStatusReceived, at),
		order("Globex", "2.125", 2, entity.OrderStatusReceived, at),
	}

	costs := analytics.SupplierPurchaseCosts(received)

	require.Len(t, costs, 2)
	assert.Equal(t, "2.34", costs["Acme"].StringFixed(2))
	assert.Equal(t, "4.25", costs["Globex"].StringFixed(2))
}

func TestRound2_MitadHaciaArriba(t *testing.T) {
	assert.Equal(t, "1.01", analytics.Round2(dec("1.005")).StringFixed(2))
	assert.Equal(t, "1.00", analytics.Round2(dec("1.004")).StringFixed(2))
	assert.Equal(t, "2.50", analytics.Round2(dec("2.4999")).StringFixed(2))
}
