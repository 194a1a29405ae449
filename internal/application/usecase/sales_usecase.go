package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
)

// SalesUseCase registro de ventas y analítica del back office. El resumen se
// recalcula completo en cada petición a partir de las transacciones.
type SalesUseCase struct {
	transactions repository.TransactionRepository
}

// NewSalesUseCase construye el caso de uso de ventas.
func NewSalesUseCase(transactions repository.TransactionRepository) *SalesUseCase {
	return &SalesUseCase{transactions: transactions}
}

// CreateTransaction registra una venta por el endpoint público. El total lo
// calcula el servidor a partir de las líneas, ignorando el total del cliente.
func (uc *SalesUseCase) CreateTransaction(in dto.CreateTransactionRequest) (*dto.CreateTransactionResponse, error) {
	if in.UserID == "" || len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	products := make([]entity.TransactionProduct, 0, len(in.Products))
	for _, p := range in.Products {
		if p.ID == "" || p.Quantity <= 0 || p.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		products = append(products, entity.TransactionProduct{
			ProductID:   p.ID,
			ProductName: p.Name,
			Price:       p.Price,
			Quantity:    p.Quantity,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		UserID:        in.UserID,
		UserName:      in.UserName,
		UserEmail:     in.UserEmail,
		Products:      products,
		TotalAmount:   total.Round(2),
		Timestamp:     time.Now(),
		PaymentMethod: in.PaymentMethod,
		Status:        entity.TransactionStatusCompleted,
	}
	if err := uc.transactions.Create(tx); err != nil {
		return nil, err
	}
	return &dto.CreateTransactionResponse{
		Success:       true,
		TransactionID: tx.ID,
		Message:       "Transacción registrada correctamente",
	}, nil
}

// ListTransactions devuelve las transacciones más recientes primero.
func (uc *SalesUseCase) ListTransactions(limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	txs, err := uc.transactions.List(limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, toTransactionResponse(tx))
	}
	return items, nil
}

// ListTransactionsByDateRange devuelve las transacciones del rango, las más
// recientes primero.
func (uc *SalesUseCase) ListTransactionsByDateRange(start, end time.Time) ([]dto.TransactionResponse, error) {
	txs, err := uc.transactions.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, toTransactionResponse(tx))
	}
	return items, nil
}

// Summary genera el resumen de ventas de los últimos days días: totales,
// transacciones recientes, serie diaria con días en cero, top 5 de productos
// por ingresos y desglose por método de pago.
func (uc *SalesUseCase) Summary(now time.Time, days int) (*dto.SalesSummaryResponse, error) {
	if days <= 0 {
		days = 7
	}
	// Medianoche local del primer día del rango; los cortes diarios usan la
	// zona horaria de now, igual que las claves de la serie.
	first := now.AddDate(0, 0, -(days - 1))
	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, now.Location())
	txs, err := uc.transactions.ListByDateRange(start, now)
	if err != nil {
		return nil, err
	}

	summary := &dto.SalesSummaryResponse{
		TotalSales:           len(txs),
		TotalRevenue:         decimal.Zero,
		AverageOrderValue:    decimal.Zero,
		RecentTransactions:   []dto.TransactionResponse{},
		DailySales:           zeroFilledDays(now, days),
		TopProducts:          []dto.TopProductEntry{},
		SalesByPaymentMethod: []dto.PaymentMethodEntry{},
	}
	if len(txs) == 0 {
		return summary, nil
	}

	for _, tx := range txs {
		summary.TotalRevenue = summary.TotalRevenue.Add(tx.TotalAmount)
	}
	summary.AverageOrderValue = summary.TotalRevenue.
		Div(decimal.NewFromInt(int64(summary.TotalSales))).Round(2)

	recent := txs
	if len(recent) > 5 {
		recent = recent[:5]
	}
	for _, tx := range recent {
		summary.RecentTransactions = append(summary.RecentTransactions, toTransactionResponse(tx))
	}

	// Serie diaria: las transacciones fuera del rango ya vienen filtradas
	dailyIdx := make(map[string]int, len(summary.DailySales))
	for i, d := range summary.DailySales {
		dailyIdx[d.Date] = i
	}
	for _, tx := range txs {
		key := tx.Timestamp.Format("2006-01-02")
		if i, ok := dailyIdx[key]; ok {
			summary.DailySales[i].Sales++
			summary.DailySales[i].Revenue = summary.DailySales[i].Revenue.Add(tx.TotalAmount)
		}
	}

	// Top de productos por ingresos
	type productAgg struct {
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	productTotals := map[string]*productAgg{}
	for _, tx := range txs {
		for _, p := range tx.Products {
			agg, ok := productTotals[p.ProductID]
			if !ok {
				agg = &productAgg{name: p.ProductName, revenue: decimal.Zero}
				productTotals[p.ProductID] = agg
			}
			agg.quantity += p.Quantity
			agg.revenue = agg.revenue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		}
	}
	for id, agg := range productTotals {
		summary.TopProducts = append(summary.TopProducts, dto.TopProductEntry{
			ProductID:   id,
			ProductName: agg.name,
			Quantity:    agg.quantity,
			Revenue:     agg.revenue.Round(2),
		})
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		return summary.TopProducts[i].Revenue.GreaterThan(summary.TopProducts[j].Revenue)
	})
	if len(summary.TopProducts) > 5 {
		summary.TopProducts = summary.TopProducts[:5]
	}

	// Desglose por método de pago, de mayor a menor ingreso
	methodTotals := map[string]*dto.PaymentMethodEntry{}
	for _, tx := range txs {
		entry, ok := methodTotals[tx.PaymentMethod]
		if !ok {
			entry = &dto.PaymentMethodEntry{Method: tx.PaymentMethod, Revenue: decimal.Zero}
			methodTotals[tx.PaymentMethod] = entry
		}
		entry.Count++
		entry.Revenue = entry.Revenue.Add(tx.TotalAmount)
	}
	for _, entry := range methodTotals {
		summary.SalesByPaymentMethod = append(summary.SalesByPaymentMethod, *entry)
	}
	sort.Slice(summary.SalesByPaymentMethod, func(i, j int) bool {
		return summary.SalesByPaymentMethod[i].Revenue.GreaterThan(summary.SalesByPaymentMethod[j].Revenue)
	})

	summary.TotalRevenue = summary.TotalRevenue.Round(2)
	return summary, nil
}

// zeroFilledDays serie de days días hasta hoy, en orden cronológico y en cero.
func zeroFilledDays(now time.Time, days int) []dto.DailySalesEntry {
	entries := make([]dto.DailySalesEntry, 0, days)
	for i := days - 1; i >= 0; i-- {
		entries = append(entries, dto.DailySalesEntry{
			Date:    now.AddDate(0, 0, -i).Format("2006-01-02"),
			Sales:   0,
			Revenue: decimal.Zero,
		})
	}
	return entries
}

func toTransactionResponse(tx *entity.Transaction) dto.TransactionResponse {
	products := make([]dto.TransactionProductResponse, 0, len(tx.Products))
	for _, p := range tx.Products {
		products = append(products, dto.TransactionProductResponse{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Price:       p.Price,
			Quantity:    p.Quantity,
		})
	}
	return dto.TransactionResponse{
		ID:            tx.ID,
		UserID:        tx.UserID,
		UserName:      tx.UserName,
		UserEmail:     tx.UserEmail,
		Products:      products,
		TotalAmount:   tx.TotalAmount,
		Timestamp:     tx.Timestamp,
		PaymentMethod: tx.PaymentMethod,
		Status:        tx.Status,
	}
}
