package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/domain/cart"
)

// AddCartItemRequest entrada para añadir un producto al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"` // 0 => 1
}

// UpdateCartItemRequest entrada para cambiar la cantidad de una línea.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse línea del carrito en respuestas.
type CartItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unitPrice"` // precio efectivo
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Stock     int             `json:"stock"`
}

// CartResponse estado del carrito más los avisos de la última mutación.
type CartResponse struct {
	SessionID  string             `json:"sessionId"`
	Items      []CartItemResponse `json:"items"`
	IsOpen     bool               `json:"isOpen"`
	TotalItems int                `json:"totalItems"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Notices    []cart.Notice      `json:"notices,omitempty"`
}
