package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOfferRequest entrada para crear una oferta (admin).
type CreateOfferRequest struct {
	ProductID          string          `json:"productId" validate:"required"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	SalePrice          decimal.Decimal `json:"salePrice"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
	IsActive           bool            `json:"isActive"`
}

// UpdateOfferRequest entrada para actualizar una oferta (admin, parcial).
type UpdateOfferRequest struct {
	DiscountPercentage *decimal.Decimal `json:"discountPercentage"`
	SalePrice          *decimal.Decimal `json:"salePrice"`
	StartDate          *time.Time       `json:"startDate"`
	EndDate            *time.Time       `json:"endDate"`
	IsActive           *bool            `json:"isActive"`
}

// OfferResponse salida de una oferta.
type OfferResponse struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"productId"`
	ProductName        string          `json:"productName"`
	OriginalPrice      decimal.Decimal `json:"originalPrice"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	SalePrice          decimal.Decimal `json:"salePrice"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"created_at"`
}

// OfferListResponse lista de ofertas.
type OfferListResponse struct {
	Items []OfferResponse `json:"items"`
}

// DailyDealsResponse resultado de aplicar las ofertas del día.
type DailyDealsResponse struct {
	Applied int      `json:"applied"` // productos con descuento aplicado
	Reset   int      `json:"reset"`   // productos cuya oferta fue retirada
	Names   []string `json:"names"`   // nombres con descuento hoy
}
