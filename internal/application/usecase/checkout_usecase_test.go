package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del flujo de checkout con dobles en memoria. El fakeTxRunner ejecuta
// el callback directamente sobre los repos del test; la atomicidad real la
// cubre la implementación SQL, aquí se verifica la lógica del flujo.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateRole(userID, role string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) AppendPurchase(userID string, order *entity.Order) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PurchaseHistory = append(u.PurchaseHistory, *order)
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// flakySessionRepo falla en Save cuando failSaves está activo.
type flakySessionRepo struct {
	*fakeSessionRepo
	failSaves bool
}

func (r *flakySessionRepo) Save(ctx context.Context, s *checkout.Session) error {
	if r.failSaves {
		return errors.New("redis: connection refused")
	}
	return r.fakeSessionRepo.Save(ctx, s)
}

// fakeTxRunner ejecuta el callback sin transacción real.
type fakeTxRunner struct {
	repos usecase.CheckoutRepos
}

func (f *fakeTxRunner) RunCheckout(_ context.Context, fn func(usecase.CheckoutRepos) error) error {
	return fn(f.repos)
}

type checkoutFixture struct {
	uc       *usecase.CheckoutUseCase
	sessions *fakeSessionRepo
	products *fakeProductRepo
	users    *fakeUserRepo
	txs      *fakeTransactionRepo
}

func newCheckoutFixture(products ...*entity.Product) *checkoutFixture {
	f := &checkoutFixture{
		sessions: newFakeSessionRepo(),
		products: newFakeProductRepo(products...),
		users:    newFakeUserRepo(),
		txs:      &fakeTransactionRepo{},
	}
	runner := &fakeTxRunner{repos: usecase.CheckoutRepos{
		Products:     f.products,
		Users:        f.users,
		Transactions: f.txs,
	}}
	f.uc = usecase.NewCheckoutUseCase(f.sessions, runner, storeDefaults(), testLog)
	return f
}

// seedSession deja una sesión en el paso payment con los items dados.
func (f *checkoutFixture) seedSession(t *testing.T, userID string, items ...dto.AddCartItemRequest) string {
	t.Helper()
	cartUC := usecase.NewCartUseCase(f.sessions, f.products, storeDefaults())

	sessionID := ""
	for _, item := range items {
		out, err := cartUC.AddItem(context.Background(), sessionID, userID, item)
		require.NoError(t, err)
		sessionID = out.SessionID
	}
	_, err := f.uc.SubmitShipping(context.Background(), sessionID, dto.ShippingRequest{
		Address: "Evergreen Terrace 742",
		City:    "Springfield",
		State:   "Springfield",
		ZipCode: "28013",
	})
	require.NoError(t, err)
	return sessionID
}

func cashPayment() dto.PaymentRequest {
	return dto.PaymentRequest{Method: entity.PayMethodContraentrega}
}

func TestCheckout_CompraCompletaDeInvitado(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Squishee", "10.00"))
	sessionID := f.seedSession(t, "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	out, err := f.uc.SubmitPayment(context.Background(), sessionID, cashPayment(), "")

	require.NoError(t, err)
	assert.Equal(t, checkout.StepConfirmation, out.Step)
	require.NotNil(t, out.Order)
	assert.Equal(t, "Invitado", out.Order.Customer, "sin usuario ni nombre el cliente es Invitado")

	// Totales: 20.00 + envío 6.00 (30%) + impuesto 1.60 (8%) = 27.60
	assert.True(t, out.Order.Total.Equal(decimal.RequireFromString("27.60")), "total: %s", out.Order.Total)

	// El stock se descuenta y la venta queda registrada
	p, _ := f.products.GetByID("p1")
	assert.Equal(t, 48, p.Stock)
	require.Len(t, f.txs.txs, 1)
	assert.True(t, f.txs.txs[0].TotalAmount.Equal(out.Order.Total))
}

func TestCheckout_UsuarioAcumulaHistorial(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Squishee", "10.00"))
	require.NoError(t, f.users.Create(&entity.User{ID: "user-1", Name: "Homer Simpson", Email: "homer@springfield.com"}))
	sessionID := f.seedSession(t, "user-1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	out, err := f.uc.SubmitPayment(context.Background(), sessionID, cashPayment(), "")

	require.NoError(t, err)
	assert.Equal(t, "Homer Simpson", out.Order.Customer)

	u, _ := f.users.GetByID("user-1")
	require.Len(t, u.PurchaseHistory, 1, "el pedido debe anexarse al historial")
	assert.True(t, u.PurchaseHistory[0].Total.Equal(out.Order.Total))
}

// El precio cobrado es el vigente al confirmar, no el snapshot del carrito.
func TestCheckout_CobraPrecioVigenteAlConfirmar(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Squishee", "10.00"))
	sessionID := f.seedSession(t, "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	// El precio baja entre el carrito y el pago
	p, _ := f.products.GetByID("p1")
	p.OnSale = true
	p.SalePrice = decimal.RequireFromString("8.00")
	require.NoError(t, f.products.Update(p))

	out, err := f.uc.SubmitPayment(context.Background(), sessionID, cashPayment(), "")

	require.NoError(t, err)
	assert.True(t, out.Order.Subtotal.Equal(decimal.RequireFromString("16.00")),
		"debe cobrarse el precio de oferta vigente: %s", out.Order.Subtotal)
}

func TestCheckout_StockInsuficienteAlConfirmar(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Squishee", "10.00"))
	sessionID := f.seedSession(t, "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 3})

	// Otra compra agota el stock entre el carrito y el pago
	require.NoError(t, f.products.UpdateStock("p1", 1))

	_, err := f.uc.SubmitPayment(context.Background(), sessionID, cashPayment(), "")

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := f.products.GetByID("p1")
	assert.Equal(t, 1, p.Stock, "el stock no debe cambiar si falla la confirmación")
	assert.Empty(t, f.txs.txs, "no debe registrarse la venta")
}

func TestCheckout_PedidoBajoElMinimo(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Chicle", "1.00"))
	sessionID := f.seedSession(t, "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	_, err := f.uc.SubmitPayment(context.Background(), sessionID, cashPayment(), "")

	assert.ErrorIs(t, err, domain.ErrBelowMinimumOrder, "subtotal 2.00 < mínimo 10")
}

func TestCheckout_MetodoDePagoInvalido(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Squishee", "10.00"))
	sessionID := f.seedSession(t, "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	_, err := f.uc.SubmitPayment(context.Background(), sessionID, dto.PaymentRequest{Method: "bitcoin"}, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_TarjetaInvalidaNoConfirma(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Squishee", "10.00"))
	sessionID := f.seedSession(t, "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	_, err := f.uc.SubmitPayment(context.Background(), sessionID, dto.PaymentRequest{
		Method:     entity.PayMethodCard,
		CardNumber: "1234",
		ExpiryDate: "12/27",
		CVV:        "123",
		NameOnCard: "Homer Simpson",
	}, "Homer Simpson")

	assert.ErrorIs(t, err, checkout.ErrInvalidCardNumber)
	assert.Empty(t, f.txs.txs)
}

func TestCheckout_NoSePuedePagarSinShipping(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Squishee", "10.00"))
	cartUC := usecase.NewCartUseCase(f.sessions, f.products, storeDefaults())
	out, err := cartUC.AddItem(context.Background(), "", "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	_, err = f.uc.SubmitPayment(context.Background(), out.SessionID, cashPayment(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

func TestCheckout_SegundoPagoRechazado(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Squishee", "10.00"))
	sessionID := f.seedSession(t, "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	_, err := f.uc.SubmitPayment(context.Background(), sessionID, cashPayment(), "")
	require.NoError(t, err)

	_, err = f.uc.SubmitPayment(context.Background(), sessionID, cashPayment(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidStep, "una sesión confirmada no admite otro pago")
}

// Con la venta ya registrada, un fallo al guardar la sesión confirmada
// no debe anular la compra ni invitar a un segundo pago.
func TestCheckout_FalloAlGuardarSesionNoAnulaLaCompra(t *testing.T) {
	f := newCheckoutFixture(catalogProduct("p1", "Squishee", "10.00"))
	flaky := &flakySessionRepo{fakeSessionRepo: f.sessions}
	runner := &fakeTxRunner{repos: usecase.CheckoutRepos{
		Products:     f.products,
		Users:        f.users,
		Transactions: f.txs,
	}}
	uc := usecase.NewCheckoutUseCase(flaky, runner, storeDefaults(), testLog)
	sessionID := f.seedSession(t, "", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})

	flaky.failSaves = true
	out, err := uc.SubmitPayment(context.Background(), sessionID, cashPayment(), "")

	require.NoError(t, err, "la compra ya está confirmada en la base")
	assert.Equal(t, checkout.StepConfirmation, out.Step)
	require.NotNil(t, out.Order)

	p, _ := f.products.GetByID("p1")
	assert.Equal(t, 48, p.Stock, "el stock descontado no se revierte")
	require.Len(t, f.txs.txs, 1, "la venta queda registrada")
}

func TestCheckout_GetState_SesionInexistente(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.uc.GetState(context.Background(), "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
