package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatusCompleted único estado que hoy registra la tienda.
const TransactionStatusCompleted = "completed"

// TransactionProduct línea de una transacción (snapshot del producto vendido).
type TransactionProduct struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Transaction registro de venta en la colección transactions. Alimenta el
// panel de analítica de ventas del back office.
type Transaction struct {
	ID            string
	UserID        string
	UserName      string
	UserEmail     string
	Products      []TransactionProduct
	TotalAmount   decimal.Decimal
	Timestamp     time.Time
	PaymentMethod string
	Status        string // completed
}
