// Package checkout contiene la lógica pura del flujo de compra: cálculo de
// totales, validaciones de envío y pago, y la máquina de estados lineal
// shipping -> payment -> confirmation.
package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/domain/cart"
	"github.com/jhoicas/KwikEMart-api/pkg/config"
)

// Totals desglose del costo de un pedido.
// Total = Subtotal + Shipping + Tax, cada uno redondeado a 2 decimales.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals calcula los totales del carrito usando el precio efectivo de
// cada producto (SalePrice si hay oferta). El costo de envío depende del modo
// configurado: porcentaje del subtotal o tarifa plana.
func ComputeTotals(items []cart.Item, store config.StoreConfig) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		unit := item.Product.EffectivePrice()
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	subtotal = subtotal.Round(2)

	var shipping decimal.Decimal
	switch store.ShippingMode {
	case config.ShippingModeFlat:
		shipping = store.ShippingFlatFee
	default:
		shipping = subtotal.Mul(store.ShippingRate)
	}
	shipping = shipping.Round(2)

	tax := subtotal.Mul(store.TaxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
