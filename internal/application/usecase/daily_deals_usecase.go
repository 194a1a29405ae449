package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
	"github.com/jhoicas/KwikEMart-api/pkg/logger"
)

// dailyDeal descuento fijo de la rotación semanal, identificado por nombre
// de producto.
type dailyDeal struct {
	Name     string
	Discount decimal.Decimal // fracción: 0.5 = 50%
}

// dailyDealsByWeekday rotación de ofertas por día de la semana.
var dailyDealsByWeekday = map[time.Weekday][]dailyDeal{
	time.Monday: {
		{Name: "Squishee", Discount: decimal.RequireFromString("0.5")},
		{Name: "Rosquilla Rosa", Discount: decimal.RequireFromString("0.25")},
	},
	time.Tuesday: {
		{Name: "Rosquilla Rosa", Discount: decimal.RequireFromString("0.3")},
	},
	time.Wednesday: {
		{Name: "Hot Dog", Discount: decimal.RequireFromString("0.25")},
		{Name: "Krusty Burger", Discount: decimal.RequireFromString("0.15")},
	},
	time.Thursday: {
		{Name: "Buzz Cola", Discount: decimal.RequireFromString("0.4")},
	},
	time.Friday: {
		{Name: "Cereal Krusty-O's", Discount: decimal.RequireFromString("0.2")},
	},
	time.Saturday: {
		{Name: "Flaming Moe", Discount: decimal.RequireFromString("0.35")},
		{Name: "Cerveza Duff", Discount: decimal.RequireFromString("0.3")},
	},
	time.Sunday: {
		{Name: "Caramelo de Radioactivo Man", Discount: decimal.RequireFromString("0.2")},
		{Name: "Comics de Radioactivo Man", Discount: decimal.RequireFromString("0.3")},
	},
}

// DailyDealsUseCase aplica la rotación de ofertas del día sobre el catálogo.
// Pensado para correr al arranque y una vez por día (scheduler externo o el
// ticker del proceso).
type DailyDealsUseCase struct {
	products repository.ProductRepository
	log      *logger.Logger
}

// NewDailyDealsUseCase construye el caso de uso de ofertas diarias.
func NewDailyDealsUseCase(products repository.ProductRepository, log *logger.Logger) *DailyDealsUseCase {
	return &DailyDealsUseCase{products: products, log: log}
}

// Apply recorre el catálogo: a los productos con oferta hoy les fija
// OnSale/SalePrice (si hay varias ofertas aplicables gana el mayor descuento)
// y a los marcados como oferta del día que ya no aplican les retira el
// descuento. Las ofertas de admin (DailyDeal=false) no se tocan.
func (uc *DailyDealsUseCase) Apply(now time.Time) (*dto.DailyDealsResponse, error) {
	dealsToday := dailyDealsByWeekday[now.Weekday()]
	products, err := uc.products.ListAll()
	if err != nil {
		return nil, err
	}

	resp := &dto.DailyDealsResponse{}
	for _, p := range products {
		maxDiscount := decimal.Zero
		for _, deal := range dealsToday {
			if deal.Name == p.Name && deal.Discount.GreaterThan(maxDiscount) {
				maxDiscount = deal.Discount
			}
		}

		if maxDiscount.IsPositive() {
			salePrice := p.Price.Mul(decimal.NewFromInt(1).Sub(maxDiscount)).Round(2)
			p.OnSale = true
			p.SalePrice = salePrice
			p.DailyDeal = true
			p.UpdatedAt = now
			if err := uc.products.Update(p); err != nil {
				return nil, err
			}
			resp.Applied++
			resp.Names = append(resp.Names, p.Name)
			uc.log.Info().
				Str("producto", p.Name).
				Str("descuento", maxDiscount.Mul(oneHundred).String()+"%").
				Str("precio_oferta", salePrice.String()).
				Msg("Oferta del día aplicada")
			continue
		}

		// La rotación de ayer ya no aplica
		if p.DailyDeal {
			p.OnSale = false
			p.SalePrice = decimal.Zero
			p.DailyDeal = false
			p.UpdatedAt = now
			if err := uc.products.Update(p); err != nil {
				return nil, err
			}
			resp.Reset++
		}
	}
	return resp, nil
}
