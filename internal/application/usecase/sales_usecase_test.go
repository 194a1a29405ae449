package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del caso de uso de ventas con un repositorio en memoria. El resumen
// replica el comportamiento del panel de administración: serie diaria con
// días en cero, top de productos por ingresos y desglose por método de pago
// de mayor a menor.
// ──────────────────────────────────────────────────────────────────────────────

// fakeTransactionRepo repositorio en memoria; guarda en orden de inserción y
// lista en orden inverso (más reciente primero), igual que el repositorio SQL.
type fakeTransactionRepo struct {
	txs []*entity.Transaction
}

func (r *fakeTransactionRepo) Create(tx *entity.Transaction) error {
	r.txs = append(r.txs, tx)
	return nil
}

func (r *fakeTransactionRepo) List(limit int) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0, len(r.txs))
	for i := len(r.txs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.txs[i])
	}
	return out, nil
}

func (r *fakeTransactionRepo) ListByDateRange(start, end time.Time) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0, len(r.txs))
	for i := len(r.txs) - 1; i >= 0; i-- {
		ts := r.txs[i].Timestamp
		if !ts.Before(start) && !ts.After(end) {
			out = append(out, r.txs[i])
		}
	}
	return out, nil
}

var summaryNow = time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)

func seedTransaction(repo *fakeTransactionRepo, daysAgo int, method string, lines ...entity.TransactionProduct) {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	repo.txs = append(repo.txs, &entity.Transaction{
		ID:            fmt.Sprintf("tx-%d", len(repo.txs)+1),
		UserID:        "user-1",
		Products:      lines,
		TotalAmount:   total,
		Timestamp:     summaryNow.AddDate(0, 0, -daysAgo),
		PaymentMethod: method,
		Status:        entity.TransactionStatusCompleted,
	})
}

func line(id, name, price string, qty int) entity.TransactionProduct {
	return entity.TransactionProduct{
		ProductID:   id,
		ProductName: name,
		Price:       decimal.RequireFromString(price),
		Quantity:    qty,
	}
}

// ── CreateTransaction ─────────────────────────────────────────────────────────

func TestCreateTransaction_CalculaElTotalEnServidor(t *testing.T) {
	repo := &fakeTransactionRepo{}
	uc := usecase.NewSalesUseCase(repo)

	out, err := uc.CreateTransaction(dto.CreateTransactionRequest{
		UserID:        "user-1",
		PaymentMethod: "card",
		Products: []dto.TransactionProductRequest{
			{ID: "p1", Name: "Squishee", Price: decimal.RequireFromString("2.50"), Quantity: 2},
			{ID: "p2", Name: "Buzz Cola", Price: decimal.RequireFromString("1.99"), Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.NotEmpty(t, out.TransactionID)
	require.Len(t, repo.txs, 1)
	assert.True(t, repo.txs[0].TotalAmount.Equal(decimal.RequireFromString("6.99")),
		"el total debe calcularse de las líneas: %s", repo.txs[0].TotalAmount)
	assert.Equal(t, entity.TransactionStatusCompleted, repo.txs[0].Status)
}

func TestCreateTransaction_RechazaPayloadInvalido(t *testing.T) {
	uc := usecase.NewSalesUseCase(&fakeTransactionRepo{})

	valid := dto.CreateTransactionRequest{
		UserID:   "user-1",
		Products: []dto.TransactionProductRequest{{ID: "p1", Price: decimal.RequireFromString("1.00"), Quantity: 1}},
	}

	sinUsuario := valid
	sinUsuario.UserID = ""
	_, err := uc.CreateTransaction(sinUsuario)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sinProductos := valid
	sinProductos.Products = nil
	_, err = uc.CreateTransaction(sinProductos)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cantidadCero := valid
	cantidadCero.Products = []dto.TransactionProductRequest{{ID: "p1", Price: decimal.RequireFromString("1.00"), Quantity: 0}}
	_, err = uc.CreateTransaction(cantidadCero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	precioNegativo := valid
	precioNegativo.Products = []dto.TransactionProductRequest{{ID: "p1", Price: decimal.RequireFromString("-1.00"), Quantity: 1}}
	_, err = uc.CreateTransaction(precioNegativo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Summary ───────────────────────────────────────────────────────────────────

func TestSummary_SinTransacciones(t *testing.T) {
	uc := usecase.NewSalesUseCase(&fakeTransactionRepo{})

	out, err := uc.Summary(summaryNow, 7)

	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalSales)
	assert.True(t, out.TotalRevenue.IsZero())
	assert.True(t, out.AverageOrderValue.IsZero())
	assert.Empty(t, out.RecentTransactions)
	assert.Empty(t, out.TopProducts)
	assert.Empty(t, out.SalesByPaymentMethod)
	require.Len(t, out.DailySales, 7, "la serie diaria siempre trae los 7 días aunque estén en cero")
}

func TestSummary_TotalesYPromedio(t *testing.T) {
	repo := &fakeTransactionRepo{}
	seedTransaction(repo, 0, "card", line("p1", "Squishee", "10.00", 1))
	seedTransaction(repo, 1, "cash", line("p2", "Hot Dog", "5.00", 1))
	uc := usecase.NewSalesUseCase(repo)

	out, err := uc.Summary(summaryNow, 7)

	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalSales)
	assert.True(t, out.TotalRevenue.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, out.AverageOrderValue.Equal(decimal.RequireFromString("7.50")))
}

func TestSummary_SerieDiariaCronologicaConCeros(t *testing.T) {
	repo := &fakeTransactionRepo{}
	seedTransaction(repo, 6, "card", line("p1", "Squishee", "4.00", 1)) // primer día del rango
	seedTransaction(repo, 0, "card", line("p1", "Squishee", "4.00", 2)) // hoy
	uc := usecase.NewSalesUseCase(repo)

	out, err := uc.Summary(summaryNow, 7)

	require.NoError(t, err)
	require.Len(t, out.DailySales, 7)
	assert.Equal(t, "2026-03-04", out.DailySales[0].Date, "la serie empieza en el día más antiguo")
	assert.Equal(t, "2026-03-10", out.DailySales[6].Date)

	assert.Equal(t, 1, out.DailySales[0].Sales)
	assert.True(t, out.DailySales[0].Revenue.Equal(decimal.RequireFromString("4.00")))
	assert.Equal(t, 1, out.DailySales[6].Sales)
	assert.True(t, out.DailySales[6].Revenue.Equal(decimal.RequireFromString("8.00")))

	// Los días intermedios sin ventas quedan en cero, no se omiten
	for i := 1; i < 6; i++ {
		assert.Equal(t, 0, out.DailySales[i].Sales, "día %s", out.DailySales[i].Date)
		assert.True(t, out.DailySales[i].Revenue.IsZero())
	}
}

// Una venta justo después de la medianoche local del primer día del rango
// debe contarse aunque el despliegue no esté en UTC.
func TestSummary_RangoEnZonaHorariaLocal(t *testing.T) {
	springfield := time.FixedZone("UTC+10", 10*3600)
	now := time.Date(2026, time.March, 10, 18, 0, 0, 0, springfield)
	repo := &fakeTransactionRepo{}
	repo.txs = append(repo.txs, &entity.Transaction{
		ID:            "tx-1",
		UserID:        "user-1",
		Products:      []entity.TransactionProduct{line("p1", "Squishee", "4.00", 1)},
		TotalAmount:   decimal.RequireFromString("4.00"),
		Timestamp:     time.Date(2026, time.March, 4, 0, 30, 0, 0, springfield),
		PaymentMethod: "card",
		Status:        entity.TransactionStatusCompleted,
	})
	uc := usecase.NewSalesUseCase(repo)

	out, err := uc.Summary(now, 7)

	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalSales, "la venta de las 00:30 locales entra en el rango")
	require.Len(t, out.DailySales, 7)
	assert.Equal(t, "2026-03-04", out.DailySales[0].Date)
	assert.Equal(t, 1, out.DailySales[0].Sales)
}

func TestSummary_TopProductosPorIngresos(t *testing.T) {
	repo := &fakeTransactionRepo{}
	// p2 factura más (12.00) que p1 (10.00) aunque venda menos unidades
	seedTransaction(repo, 0, "card", line("p1", "Squishee", "2.50", 4))
	seedTransaction(repo, 1, "card", line("p2", "Krusty Burger", "6.00", 2))
	// Seis productos distintos para comprobar el corte en 5
	seedTransaction(repo, 2, "card",
		line("p3", "Buzz Cola", "1.00", 1),
		line("p4", "Hot Dog", "1.00", 1),
		line("p5", "Rosquilla Rosa", "1.00", 1),
		line("p6", "Cerveza Duff", "0.50", 1),
	)
	uc := usecase.NewSalesUseCase(repo)

	out, err := uc.Summary(summaryNow, 7)

	require.NoError(t, err)
	require.Len(t, out.TopProducts, 5, "el top se corta en 5 productos")
	assert.Equal(t, "p2", out.TopProducts[0].ProductID)
	assert.True(t, out.TopProducts[0].Revenue.Equal(decimal.RequireFromString("12.00")))
	assert.Equal(t, "p1", out.TopProducts[1].ProductID)
	assert.Equal(t, 4, out.TopProducts[1].Quantity)
	// p6 es el de menor ingreso y queda fuera
	for _, top := range out.TopProducts {
		assert.NotEqual(t, "p6", top.ProductID)
	}
}

func TestSummary_MetodosDePagoOrdenadosPorIngreso(t *testing.T) {
	repo := &fakeTransactionRepo{}
	seedTransaction(repo, 0, "cash", line("p1", "Squishee", "3.00", 1))
	seedTransaction(repo, 0, "card", line("p1", "Squishee", "10.00", 1))
	seedTransaction(repo, 1, "cash", line("p1", "Squishee", "4.00", 1))
	uc := usecase.NewSalesUseCase(repo)

	out, err := uc.Summary(summaryNow, 7)

	require.NoError(t, err)
	require.Len(t, out.SalesByPaymentMethod, 2)
	assert.Equal(t, "card", out.SalesByPaymentMethod[0].Method, "card factura 10.00 > cash 7.00")
	assert.Equal(t, 1, out.SalesByPaymentMethod[0].Count)
	assert.Equal(t, "cash", out.SalesByPaymentMethod[1].Method)
	assert.Equal(t, 2, out.SalesByPaymentMethod[1].Count)
	assert.True(t, out.SalesByPaymentMethod[1].Revenue.Equal(decimal.RequireFromString("7.00")))
}

func TestSummary_RecentesMaximoCinco(t *testing.T) {
	repo := &fakeTransactionRepo{}
	for i := 0; i < 7; i++ {
		seedTransaction(repo, 0, "card", line("p1", "Squishee", "1.00", 1))
	}
	uc := usecase.NewSalesUseCase(repo)

	out, err := uc.Summary(summaryNow, 7)

	require.NoError(t, err)
	assert.Equal(t, 7, out.TotalSales)
	assert.Len(t, out.RecentTransactions, 5)
}
