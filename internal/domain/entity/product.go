package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas para Product.
const (
	CategoryBeverages  = "beverages"
	CategorySnacks     = "snacks"
	CategoryEssentials = "essentials"
)

// ValidCategory indica si la categoría pertenece al catálogo de la tienda.
func ValidCategory(c string) bool {
	return c == CategoryBeverages || c == CategorySnacks || c == CategoryEssentials
}

// Review reseña de un usuario embebida en el producto (arreglo JSONB).
type Review struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Rating   int    `json:"rating"` // 1..5
	Comment  string `json:"comment"`
	Date     string `json:"date"` // ISO-8601
}

// Product representa un producto del catálogo Kwik-E-Mart.
// Invariante: si OnSale es true, SalePrice debe ser menor que Price
// (se garantiza en la escritura de ofertas y en la validación de admin).
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Category    string // beverages | snacks | essentials
	Image       string
	Rating      decimal.Decimal // promedio de las reseñas, 0 si no hay
	Reviews     []Review
	Description string
	Stock       int // unidades disponibles, nunca negativo
	Featured    bool
	OnSale      bool
	SalePrice   decimal.Decimal // sólo significativo cuando OnSale
	DailyDeal   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectivePrice devuelve el precio a cobrar: SalePrice si hay oferta vigente
// y es realmente menor que el precio de lista, si no Price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.OnSale && p.SalePrice.IsPositive() && p.SalePrice.LessThan(p.Price) {
		return p.SalePrice
	}
	return p.Price
}

// HasLowStock indica si el producto tiene pocas unidades según el umbral configurado.
func (p *Product) HasLowStock(threshold int) bool {
	return p.Stock > 0 && p.Stock <= threshold
}

// MaxPurchaseQuantity cantidad máxima que un usuario puede comprar:
// el mínimo entre el stock disponible y el límite global de compra.
func (p *Product) MaxPurchaseQuantity(maxPurchaseLimit int) int {
	if p.Stock < maxPurchaseLimit {
		return p.Stock
	}
	return maxPurchaseLimit
}

// RecalculateRating recalcula Rating como el promedio de las reseñas (2 decimales).
func (p *Product) RecalculateRating() {
	if len(p.Reviews) == 0 {
		p.Rating = decimal.Zero
		return
	}
	sum := decimal.Zero
	for _, r := range p.Reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	p.Rating = sum.Div(decimal.NewFromInt(int64(len(p.Reviews)))).Round(2)
}
