package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
	"github.com/jhoicas/KwikEMart-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la rotación de ofertas del día. Fechas fijas para controlar el día
// de la semana: 2026-03-09 es lunes (Squishee 50%, Rosquilla Rosa 25%).
// ──────────────────────────────────────────────────────────────────────────────

var (
	monday  = time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

// fakeProductRepo catálogo en memoria indexado por ID.
type fakeProductRepo struct {
	products map[string]*entity.Product
	order    []string
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock int) error {
	r.products[productID].Stock = stock
	return nil
}

func (r *fakeProductRepo) UpdateSale(productID string, onSale bool, salePrice decimal.Decimal) error {
	p := r.products[productID]
	p.OnSale = onSale
	p.SalePrice = salePrice
	return nil
}

func (r *fakeProductRepo) UpdateReviews(productID string, reviews []entity.Review, rating decimal.Decimal) error {
	p := r.products[productID]
	p.Reviews = reviews
	p.Rating = rating
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	return r.ListAll()
}

func (r *fakeProductRepo) ListAll() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.products[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

var testLog = logger.New(logger.Config{Env: "development", Level: "error"})

func catalogProduct(id, name, price string) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: entity.CategorySnacks,
		Stock:    50,
	}
}

func TestDailyDeals_AplicaDescuentosDelLunes(t *testing.T) {
	repo := newFakeProductRepo(
		catalogProduct("p1", "Squishee", "2.00"),
		catalogProduct("p2", "Rosquilla Rosa", "4.00"),
		catalogProduct("p3", "Buzz Cola", "1.99"), // sin oferta los lunes
	)
	uc := usecase.NewDailyDealsUseCase(repo, testLog)

	out, err := uc.Apply(monday)

	require.NoError(t, err)
	assert.Equal(t, 2, out.Applied)
	assert.Equal(t, 0, out.Reset)
	assert.ElementsMatch(t, []string{"Squishee", "Rosquilla Rosa"}, out.Names)

	squishee, _ := repo.GetByID("p1")
	assert.True(t, squishee.OnSale)
	assert.True(t, squishee.DailyDeal)
	assert.True(t, squishee.SalePrice.Equal(decimal.RequireFromString("1.00")),
		"50%% sobre 2.00: %s", squishee.SalePrice)

	rosquilla, _ := repo.GetByID("p2")
	assert.True(t, rosquilla.SalePrice.Equal(decimal.RequireFromString("3.00")),
		"25%% sobre 4.00: %s", rosquilla.SalePrice)

	cola, _ := repo.GetByID("p3")
	assert.False(t, cola.OnSale, "Buzz Cola no tiene oferta los lunes")
}

func TestDailyDeals_RetiraLaRotacionDeAyer(t *testing.T) {
	repo := newFakeProductRepo(
		catalogProduct("p1", "Squishee", "2.00"),
		catalogProduct("p2", "Rosquilla Rosa", "4.00"),
	)
	uc := usecase.NewDailyDealsUseCase(repo, testLog)

	_, err := uc.Apply(monday)
	require.NoError(t, err)

	// El martes sólo la Rosquilla Rosa sigue en oferta (30%)
	out, err := uc.Apply(tuesday)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Applied)
	assert.Equal(t, 1, out.Reset)

	squishee, _ := repo.GetByID("p1")
	assert.False(t, squishee.OnSale, "la oferta del lunes debe retirarse el martes")
	assert.False(t, squishee.DailyDeal)
	assert.True(t, squishee.SalePrice.IsZero())

	rosquilla, _ := repo.GetByID("p2")
	assert.True(t, rosquilla.OnSale)
	assert.True(t, rosquilla.SalePrice.Equal(decimal.RequireFromString("2.80")),
		"30%% sobre 4.00: %s", rosquilla.SalePrice)
}

// Las ofertas creadas por el admin (DailyDeal=false) no se tocan al rotar.
func TestDailyDeals_NoTocaOfertasDeAdmin(t *testing.T) {
	adminOffer := catalogProduct("p9", "Donut Gigante", "10.00")
	adminOffer.OnSale = true
	adminOffer.SalePrice = decimal.RequireFromString("7.50")

	repo := newFakeProductRepo(adminOffer)
	uc := usecase.NewDailyDealsUseCase(repo, testLog)

	out, err := uc.Apply(monday)

	require.NoError(t, err)
	assert.Equal(t, 0, out.Applied)
	assert.Equal(t, 0, out.Reset)

	p, _ := repo.GetByID("p9")
	assert.True(t, p.OnSale, "la oferta de admin debe sobrevivir a la rotación")
	assert.True(t, p.SalePrice.Equal(decimal.RequireFromString("7.50")))
}
