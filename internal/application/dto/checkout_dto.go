package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
)

// ShippingRequest entrada del paso shipping.
type ShippingRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

// PaymentRequest entrada del paso payment. Los campos de tarjeta sólo se
// validan cuando Method es "card".
type PaymentRequest struct {
	Method     string `json:"method" validate:"required,oneof=card transferencia contraentrega mercado_pago"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	NameOnCard string `json:"nameOnCard"`
}

// CheckoutStateResponse estado actual de la sesión de checkout.
type CheckoutStateResponse struct {
	SessionID string                    `json:"sessionId"`
	Step      string                    `json:"step"`
	Shipping  *checkout.ShippingDetails `json:"shipping,omitempty"`
	Totals    checkout.Totals           `json:"totals"`
	Order     *OrderResponse            `json:"order,omitempty"`
}

// OrderItemResponse línea de un pedido completado.
type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido completado (factura).
type OrderResponse struct {
	Date      time.Time           `json:"date"`
	Items     []OrderItemResponse `json:"items"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	Shipping  decimal.Decimal     `json:"shipping"`
	Tax       decimal.Decimal     `json:"tax"`
	Total     decimal.Decimal     `json:"total"`
	Customer  string              `json:"customer"`
	PayMethod string              `json:"pay_method"`
}

// InvoiceHistoryResponse historial de compras del usuario autenticado.
type InvoiceHistoryResponse struct {
	Orders []OrderResponse `json:"orders"`
}
