package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto (admin).
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"required,oneof=beverages snacks essentials"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Stock       int             `json:"stock" validate:"min=0"`
	Featured    bool            `json:"featured"`
	OnSale      bool            `json:"onSale"`
	SalePrice   decimal.Decimal `json:"salePrice"`
	DailyDeal   bool            `json:"dailyDeal"`
}

// UpdateProductRequest entrada para actualizar un producto (admin, parcial).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category" validate:"omitempty,oneof=beverages snacks essentials"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
	Featured    *bool            `json:"featured"`
	OnSale      *bool            `json:"onSale"`
	SalePrice   *decimal.Decimal `json:"salePrice"`
	DailyDeal   *bool            `json:"dailyDeal"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
	Category       string          `json:"category"`
	Image          string          `json:"image"`
	Rating         decimal.Decimal `json:"rating"`
	Reviews        []entity.Review `json:"reviews"`
	Description    string          `json:"description"`
	Stock          int             `json:"stock"`
	LowStock       bool            `json:"lowStock"`
	Featured       bool            `json:"featured"`
	OnSale         bool            `json:"onSale"`
	SalePrice      decimal.Decimal `json:"salePrice,omitempty"`
	DailyDeal      bool            `json:"dailyDeal"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListRequest parámetros del listado del catálogo.
type ProductListRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Sort     string `query:"sort"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// InventoryStatsResponse resumen de inventario para el back office.
type InventoryStatsResponse struct {
	TotalProducts int                     `json:"totalProducts"`
	TotalStock    int                     `json:"totalStock"`
	OutOfStock    int                     `json:"outOfStock"`
	LowStock      int                     `json:"lowStock"`
	Categories    []CategoryDistribution  `json:"categories"`
}

// CategoryDistribution distribución de productos y stock por categoría.
type CategoryDistribution struct {
	Category string `json:"category"`
	Products int    `json:"products"`
	Stock    int    `json:"stock"`
}
