package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest payload del endpoint público de transacciones.
// El total lo calcula el servidor a partir de las líneas.
type CreateTransactionRequest struct {
	UserID        string                      `json:"userId" validate:"required"`
	UserName      string                      `json:"userName"`
	UserEmail     string                      `json:"userEmail"`
	PaymentMethod string                      `json:"paymentMethod"`
	Products      []TransactionProductRequest `json:"products" validate:"required,min=1"`
}

// TransactionProductRequest línea del payload de transacción.
type TransactionProductRequest struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// CreateTransactionResponse confirmación del registro.
type CreateTransactionResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

// TransactionResponse transacción registrada.
type TransactionResponse struct {
	ID            string                       `json:"id"`
	UserID        string                       `json:"userId"`
	UserName      string                       `json:"userName"`
	UserEmail     string                       `json:"userEmail"`
	Products      []TransactionProductResponse `json:"productsList"`
	TotalAmount   decimal.Decimal              `json:"totalAmount"`
	Timestamp     time.Time                    `json:"timestamp"`
	PaymentMethod string                       `json:"paymentMethod"`
	Status        string                       `json:"status"`
}

// TransactionProductResponse línea de una transacción.
type TransactionProductResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// SalesSummaryResponse resumen de ventas del back office. Se recalcula
// completo en cada petición a partir de las transacciones.
type SalesSummaryResponse struct {
	TotalSales           int                   `json:"totalSales"`
	TotalRevenue         decimal.Decimal       `json:"totalRevenue"`
	AverageOrderValue    decimal.Decimal       `json:"averageOrderValue"`
	RecentTransactions   []TransactionResponse `json:"recentTransactions"`
	DailySales           []DailySalesEntry     `json:"dailySales"`
	TopProducts          []TopProductEntry     `json:"topProducts"`
	SalesByPaymentMethod []PaymentMethodEntry  `json:"salesByPaymentMethod"`
}

// DailySalesEntry ventas e ingresos de un día del rango pedido.
type DailySalesEntry struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductEntry producto del top 5 por ingresos.
type TopProductEntry struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// PaymentMethodEntry ventas agrupadas por método de pago.
type PaymentMethodEntry struct {
	Method  string          `json:"method"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}
