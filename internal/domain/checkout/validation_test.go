package checkout_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
)

// Fecha de referencia fija para que los casos de expiración de tarjeta no
// dependan del reloj del sistema.
var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func validShipping() checkout.ShippingDetails {
	return checkout.ShippingDetails{
		Address: "Evergreen Terrace 742",
		City:    "Springfield",
		State:   "Springfield",
		ZipCode: "28013",
	}
}

func validCard() checkout.CardDetails {
	return checkout.CardDetails{
		CardNumber: "4111111111111111",
		ExpiryDate: "12/27",
		CVV:        "123",
		NameOnCard: "Homer Simpson",
	}
}

// ── Envío ─────────────────────────────────────────────────────────────────────

func TestValidateShipping_DatosValidos(t *testing.T) {
	assert.NoError(t, checkout.ValidateShipping(validShipping()))
}

func TestValidateShipping_CampoVacio(t *testing.T) {
	for _, mutate := range []func(*checkout.ShippingDetails){
		func(d *checkout.ShippingDetails) { d.Address = "" },
		func(d *checkout.ShippingDetails) { d.City = "   " },
		func(d *checkout.ShippingDetails) { d.State = "" },
		func(d *checkout.ShippingDetails) { d.ZipCode = "" },
	} {
		d := validShipping()
		mutate(&d)
		assert.ErrorIs(t, checkout.ValidateShipping(d), checkout.ErrShippingIncomplete)
	}
}

func TestValidateShipping_CodigoPostal(t *testing.T) {
	d := validShipping()

	d.ZipCode = "1234" // 4 dígitos: corto
	assert.ErrorIs(t, checkout.ValidateShipping(d), checkout.ErrInvalidZipCode)

	d.ZipCode = "1234567" // 7 dígitos: largo
	assert.ErrorIs(t, checkout.ValidateShipping(d), checkout.ErrInvalidZipCode)

	d.ZipCode = "2801A" // letras no
	assert.ErrorIs(t, checkout.ValidateShipping(d), checkout.ErrInvalidZipCode)

	d.ZipCode = "280130" // 6 dígitos sí
	assert.NoError(t, checkout.ValidateShipping(d))
}

// ── Tarjeta ───────────────────────────────────────────────────────────────────

func TestValidateCard_DatosValidos(t *testing.T) {
	assert.NoError(t, checkout.ValidateCard(validCard(), testNow))
}

func TestValidateCard_NumeroConEspacios(t *testing.T) {
	c := validCard()
	c.CardNumber = "4111 1111 1111 1111"
	assert.NoError(t, checkout.ValidateCard(c, testNow), "los espacios en el número deben ignorarse")
}

func TestValidateCard_NumeroInvalido(t *testing.T) {
	c := validCard()

	c.CardNumber = "411111111111" // 12 dígitos: corto
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrInvalidCardNumber)

	c.CardNumber = "4111-1111-1111-1111" // guiones no
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrInvalidCardNumber)
}

func TestValidateCard_FormatoExpiracion(t *testing.T) {
	c := validCard()

	c.ExpiryDate = "13/27" // mes inexistente
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrInvalidExpiry)

	c.ExpiryDate = "1/27" // sin cero inicial
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrInvalidExpiry)

	c.ExpiryDate = "12/2027" // año de 4 dígitos
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrInvalidExpiry)
}

func TestValidateCard_TarjetaExpirada(t *testing.T) {
	c := validCard()
	c.ExpiryDate = "05/26" // mayo 2026, testNow es junio 2026
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrCardExpired)
}

// La tarjeta es válida hasta el último instante de su mes de expiración.
func TestValidateCard_ValidaHastaFinDeMes(t *testing.T) {
	c := validCard()
	c.ExpiryDate = "06/26" // mismo mes que testNow
	assert.NoError(t, checkout.ValidateCard(c, testNow))
}

// El año de dos dígitos se interpreta con una ventana deslizante de 20 años:
// "12/99" queda fuera de la ventana y cuenta como 1999, o sea expirada.
func TestValidateCard_VentanaDeslizanteDeSiglo(t *testing.T) {
	c := validCard()

	c.ExpiryDate = "12/99"
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrCardExpired)

	c.ExpiryDate = "12/45" // 2045: dentro de now+20
	assert.NoError(t, checkout.ValidateCard(c, testNow))
}

func TestValidateCard_CVVInvalido(t *testing.T) {
	c := validCard()

	c.CVV = "12"
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrInvalidCVV)

	c.CVV = "12345"
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrInvalidCVV)

	c.CVV = "1234" // 4 dígitos (Amex) sí
	assert.NoError(t, checkout.ValidateCard(c, testNow))
}

func TestValidateCard_NombreVacio(t *testing.T) {
	c := validCard()
	c.NameOnCard = "   "
	assert.ErrorIs(t, checkout.ValidateCard(c, testNow), checkout.ErrEmptyCardName)
}
