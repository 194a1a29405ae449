package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer descuento temporal sobre un producto. Cada escritura de una oferta se
// desnormaliza sobre el producto (OnSale/SalePrice) para que el catálogo no
// tenga que consultar esta colección.
type Offer struct {
	ID                 string
	ProductID          string
	ProductName        string
	OriginalPrice      decimal.Decimal
	DiscountPercentage decimal.Decimal // 0..100
	SalePrice          decimal.Decimal // debe ser < OriginalPrice cuando IsActive
	StartDate          time.Time
	EndDate            time.Time
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// InRange indica si la oferta está dentro de su rango de fechas.
func (o *Offer) InRange(now time.Time) bool {
	return !now.Before(o.StartDate) && !now.After(o.EndDate)
}
