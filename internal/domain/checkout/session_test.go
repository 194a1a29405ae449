package checkout_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/cart"
	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

func sessionWithItems() *checkout.Session {
	s := checkout.NewSession("sess-1")
	s.Cart = cart.State{Items: []cart.Item{{
		Product:  entity.Product{ID: "p1", Name: "Buzz Cola", Price: decimal.RequireFromString("1.99"), Stock: 10},
		Quantity: 2,
	}}}
	return s
}

func TestNewSession_EmpiezaEnShipping(t *testing.T) {
	s := checkout.NewSession("sess-1")
	assert.Equal(t, checkout.StepShipping, s.Step)
	assert.False(t, s.CanPay())
}

func TestSession_SubmitShipping_AvanzaAPayment(t *testing.T) {
	s := sessionWithItems()

	err := s.SubmitShipping(validShipping())

	require.NoError(t, err)
	assert.Equal(t, checkout.StepPayment, s.Step)
	require.NotNil(t, s.Shipping)
	assert.True(t, s.CanPay())
}

func TestSession_SubmitShipping_CarritoVacio(t *testing.T) {
	s := checkout.NewSession("sess-1")

	err := s.SubmitShipping(validShipping())

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, checkout.StepShipping, s.Step)
}

func TestSession_SubmitShipping_DatosInvalidosNoAvanza(t *testing.T) {
	s := sessionWithItems()
	d := validShipping()
	d.ZipCode = "12"

	err := s.SubmitShipping(d)

	assert.ErrorIs(t, err, checkout.ErrInvalidZipCode)
	assert.Equal(t, checkout.StepShipping, s.Step)
	assert.Nil(t, s.Shipping)
}

func TestSession_Confirm_EsTerminal(t *testing.T) {
	s := sessionWithItems()
	require.NoError(t, s.SubmitShipping(validShipping()))

	s.Confirm(&entity.Order{Customer: "Homer Simpson"})

	assert.Equal(t, checkout.StepConfirmation, s.Step)
	assert.Empty(t, s.Cart.Items, "confirmar vacía el carrito")
	require.NotNil(t, s.Order)
	assert.False(t, s.CanPay())

	// Un checkout confirmado no admite volver a shipping
	err := s.SubmitShipping(validShipping())
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}
