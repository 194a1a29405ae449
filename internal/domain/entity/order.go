package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en el checkout.
const (
	PayMethodCard          = "card"
	PayMethodTransferencia = "transferencia"
	PayMethodContraentrega = "contraentrega"
	PayMethodMercadoPago   = "mercado_pago"
)

// ValidPayMethod indica si el método de pago es aceptado.
func ValidPayMethod(m string) bool {
	switch m {
	case PayMethodCard, PayMethodTransferencia, PayMethodContraentrega, PayMethodMercadoPago:
		return true
	}
	return false
}

// OrderItem snapshot de una línea del pedido al momento de la compra.
// UnitPrice es el precio efectivo cobrado (SalePrice si había oferta).
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order factura de una compra completada. Se construye una sola vez al
// confirmar el checkout y es inmutable desde entonces: se anexa al
// PurchaseHistory del usuario y se refleja en la colección de transacciones.
type Order struct {
	Date      time.Time       `json:"date"`
	Items     []OrderItem     `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	Customer  string          `json:"customer"`
	PayMethod string          `json:"pay_method"`
}
