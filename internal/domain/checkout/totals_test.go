package checkout_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/KwikEMart-api/internal/domain/cart"
	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de ComputeTotals. La configuración de referencia es la de la tienda:
// impuesto 8% sobre el subtotal y envío como 30% del subtotal (modo
// percentage) o tarifa plana de 5.99 (modo flat).
// ──────────────────────────────────────────────────────────────────────────────

func storePercentage() config.StoreConfig {
	return config.StoreConfig{
		TaxRate:      decimal.RequireFromString("0.08"),
		ShippingMode: config.ShippingModePercentage,
		ShippingRate: decimal.RequireFromString("0.30"),
	}
}

func storeFlat() config.StoreConfig {
	cfg := storePercentage()
	cfg.ShippingMode = config.ShippingModeFlat
	cfg.ShippingFlatFee = decimal.RequireFromString("5.99")
	return cfg
}

func itemAt(price string, qty int) cart.Item {
	return cart.Item{
		Product:  entity.Product{ID: "p", Name: "Producto", Price: decimal.RequireFromString(price), Stock: 99},
		Quantity: qty,
	}
}

func TestComputeTotals_EnvioPorcentual(t *testing.T) {
	// 2 x 10.00 = 20.00; envío 30% = 6.00; impuesto 8% = 1.60; total 27.60
	totals := checkout.ComputeTotals([]cart.Item{itemAt("10.00", 2)}, storePercentage())

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("20.00")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.Shipping.Equal(decimal.RequireFromString("6.00")), "envío: %s", totals.Shipping)
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("1.60")), "impuesto: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("27.60")), "total: %s", totals.Total)
}

func TestComputeTotals_EnvioTarifaPlana(t *testing.T) {
	totals := checkout.ComputeTotals([]cart.Item{itemAt("10.00", 2)}, storeFlat())

	assert.True(t, totals.Shipping.Equal(decimal.RequireFromString("5.99")), "envío: %s", totals.Shipping)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("27.59")), "total: %s", totals.Total)
}

func TestComputeTotals_UsaPrecioDeOferta(t *testing.T) {
	item := cart.Item{
		Product: entity.Product{
			ID:        "p",
			Name:      "Rosquilla Rosa",
			Price:     decimal.RequireFromString("4.00"),
			OnSale:    true,
			SalePrice: decimal.RequireFromString("3.00"),
			Stock:     99,
		},
		Quantity: 2,
	}

	totals := checkout.ComputeTotals([]cart.Item{item}, storePercentage())

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("6.00")),
		"debe cobrarse el precio de oferta, no el de lista: %s", totals.Subtotal)
}

func TestComputeTotals_RedondeaADosDecimales(t *testing.T) {
	// 3 x 3.33 = 9.99; envío 30% = 2.997 -> 3.00; impuesto 8% = 0.7992 -> 0.80
	totals := checkout.ComputeTotals([]cart.Item{itemAt("3.33", 3)}, storePercentage())

	assert.True(t, totals.Shipping.Equal(decimal.RequireFromString("3.00")), "envío: %s", totals.Shipping)
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("0.80")), "impuesto: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("13.79")), "total: %s", totals.Total)
}

func TestComputeTotals_CarritoVacio(t *testing.T) {
	totals := checkout.ComputeTotals(nil, storePercentage())

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Shipping.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}
