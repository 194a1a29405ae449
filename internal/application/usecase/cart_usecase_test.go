package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/pkg/config"
)

// fakeSessionRepo almacén de sesiones en memoria.
type fakeSessionRepo struct {
	sessions map[string]*checkout.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*checkout.Session{}}
}

func (r *fakeSessionRepo) Get(_ context.Context, id string) (*checkout.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Save(_ context.Context, s *checkout.Session) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func storeDefaults() config.StoreConfig {
	return config.StoreConfig{
		LowStockThreshold: 5,
		MaxPurchaseLimit:  10,
		TaxRate:           decimal.RequireFromString("0.08"),
		ShippingMode:      config.ShippingModePercentage,
		ShippingRate:      decimal.RequireFromString("0.30"),
		MinimumOrderValue: decimal.RequireFromString("10"),
	}
}

func TestCartUseCase_AddItem_CreaSesionSiNoHay(t *testing.T) {
	sessions := newFakeSessionRepo()
	products := newFakeProductRepo(catalogProduct("p1", "Squishee", "2.00"))
	uc := usecase.NewCartUseCase(sessions, products, storeDefaults())

	out, err := uc.AddItem(context.Background(), "", "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	require.NoError(t, err)
	assert.NotEmpty(t, out.SessionID, "sin X-Cart-Session debe crearse una sesión nueva")
	require.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.TotalItems)
	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("4.00")))
	require.NotNil(t, sessions.sessions[out.SessionID], "la sesión debe quedar persistida")
}

func TestCartUseCase_AddItem_ProductoInexistente(t *testing.T) {
	uc := usecase.NewCartUseCase(newFakeSessionRepo(), newFakeProductRepo(), storeDefaults())

	_, err := uc.AddItem(context.Background(), "", "", dto.AddCartItemRequest{ProductID: "no-existe"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartUseCase_ReusaSesionExistente(t *testing.T) {
	sessions := newFakeSessionRepo()
	products := newFakeProductRepo(
		catalogProduct("p1", "Squishee", "2.00"),
		catalogProduct("p2", "Buzz Cola", "1.50"),
	)
	uc := usecase.NewCartUseCase(sessions, products, storeDefaults())

	first, err := uc.AddItem(context.Background(), "", "", dto.AddCartItemRequest{ProductID: "p1"})
	require.NoError(t, err)

	second, err := uc.AddItem(context.Background(), first.SessionID, "", dto.AddCartItemRequest{ProductID: "p2"})
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Len(t, second.Items, 2)
}

// Un login posterior adopta la sesión anónima: el carrito del invitado pasa a
// pertenecer al usuario.
func TestCartUseCase_LoginAdoptaSesionAnonima(t *testing.T) {
	sessions := newFakeSessionRepo()
	products := newFakeProductRepo(catalogProduct("p1", "Squishee", "2.00"))
	uc := usecase.NewCartUseCase(sessions, products, storeDefaults())

	anon, err := uc.AddItem(context.Background(), "", "", dto.AddCartItemRequest{ProductID: "p1"})
	require.NoError(t, err)
	assert.Empty(t, sessions.sessions[anon.SessionID].UserID)

	_, err = uc.Get(context.Background(), anon.SessionID, "user-42")
	require.NoError(t, err)

	// La adopción se materializa en la siguiente mutación persistida
	_, err = uc.Toggle(context.Background(), anon.SessionID, "user-42")
	require.NoError(t, err)
	assert.Equal(t, "user-42", sessions.sessions[anon.SessionID].UserID)
}

func TestCartUseCase_UsaPrecioDeOferta(t *testing.T) {
	deal := catalogProduct("p1", "Rosquilla Rosa", "4.00")
	deal.OnSale = true
	deal.SalePrice = decimal.RequireFromString("3.00")

	uc := usecase.NewCartUseCase(newFakeSessionRepo(), newFakeProductRepo(deal), storeDefaults())

	out, err := uc.AddItem(context.Background(), "", "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	require.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("6.00")),
		"el subtotal debe usar el precio de oferta: %s", out.Subtotal)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.RequireFromString("3.00")))
}

// Un checkout confirmado ya no admite mutaciones de carrito.
func TestCartUseCase_SesionConfirmadaRechazaMutaciones(t *testing.T) {
	sessions := newFakeSessionRepo()
	products := newFakeProductRepo(catalogProduct("p1", "Squishee", "2.00"))
	uc := usecase.NewCartUseCase(sessions, products, storeDefaults())

	out, err := uc.AddItem(context.Background(), "", "", dto.AddCartItemRequest{ProductID: "p1"})
	require.NoError(t, err)

	s := sessions.sessions[out.SessionID]
	s.Confirm(&entity.Order{Customer: "Homer Simpson"})

	_, err = uc.AddItem(context.Background(), out.SessionID, "", dto.AddCartItemRequest{ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

func TestCartUseCase_ClearVaciaYCierra(t *testing.T) {
	sessions := newFakeSessionRepo()
	products := newFakeProductRepo(catalogProduct("p1", "Squishee", "2.00"))
	uc := usecase.NewCartUseCase(sessions, products, storeDefaults())

	out, err := uc.AddItem(context.Background(), "", "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	cleared, err := uc.Clear(context.Background(), out.SessionID, "")
	require.NoError(t, err)

	assert.Empty(t, cleared.Items)
	assert.Equal(t, 0, cleared.TotalItems)
	assert.False(t, cleared.IsOpen)
	require.Len(t, cleared.Notices, 1)
}
