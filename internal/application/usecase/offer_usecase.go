package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
)

var oneHundred = decimal.NewFromInt(100)

// OfferUseCase gestiona las ofertas del back office. Cada escritura se
// desnormaliza sobre el producto (OnSale/SalePrice) para que el catálogo y el
// checkout nunca consulten la colección de ofertas.
type OfferUseCase struct {
	offers   repository.OfferRepository
	products repository.ProductRepository
}

// NewOfferUseCase construye el caso de uso de ofertas.
func NewOfferUseCase(offers repository.OfferRepository, products repository.ProductRepository) *OfferUseCase {
	return &OfferUseCase{offers: offers, products: products}
}

// Create crea una oferta y la refleja sobre el producto. Si no se indica
// SalePrice se deriva del porcentaje de descuento sobre el precio de lista.
func (uc *OfferUseCase) Create(in dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	salePrice, err := resolveSalePrice(product.Price, in.DiscountPercentage, in.SalePrice)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	offer := &entity.Offer{
		ID:                 uuid.New().String(),
		ProductID:          product.ID,
		ProductName:        product.Name,
		OriginalPrice:      product.Price,
		DiscountPercentage: in.DiscountPercentage,
		SalePrice:          salePrice,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		IsActive:           in.IsActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.offers.Create(offer); err != nil {
		return nil, err
	}
	if err := uc.products.UpdateSale(product.ID, offer.IsActive, salePrice); err != nil {
		return nil, err
	}
	return toOfferResponse(offer), nil
}

// Update actualiza una oferta (parcial) y re-desnormaliza el producto.
func (uc *OfferUseCase) Update(id string, in dto.UpdateOfferRequest) (*dto.OfferResponse, error) {
	offer, err := uc.offers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrNotFound
	}
	if in.DiscountPercentage != nil {
		offer.DiscountPercentage = *in.DiscountPercentage
	}
	if in.SalePrice != nil {
		offer.SalePrice = *in.SalePrice
	}
	if in.DiscountPercentage != nil || in.SalePrice != nil {
		salePrice, err := resolveSalePrice(offer.OriginalPrice, offer.DiscountPercentage, offer.SalePrice)
		if err != nil {
			return nil, err
		}
		offer.SalePrice = salePrice
	}
	if in.StartDate != nil {
		offer.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		offer.EndDate = *in.EndDate
	}
	if offer.EndDate.Before(offer.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if in.IsActive != nil {
		offer.IsActive = *in.IsActive
	}
	offer.UpdatedAt = time.Now()
	if err := uc.offers.Update(offer); err != nil {
		return nil, err
	}
	if err := uc.products.UpdateSale(offer.ProductID, offer.IsActive, offer.SalePrice); err != nil {
		return nil, err
	}
	return toOfferResponse(offer), nil
}

// Delete elimina la oferta y retira el descuento del producto.
func (uc *OfferUseCase) Delete(id string) error {
	offer, err := uc.offers.GetByID(id)
	if err != nil {
		return err
	}
	if offer == nil {
		return domain.ErrNotFound
	}
	if err := uc.products.UpdateSale(offer.ProductID, false, decimal.Zero); err != nil {
		return err
	}
	return uc.offers.Delete(id)
}

// List devuelve todas las ofertas.
func (uc *OfferUseCase) List() (*dto.OfferListResponse, error) {
	offers, err := uc.offers.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.OfferResponse, 0, len(offers))
	for _, o := range offers {
		items = append(items, *toOfferResponse(o))
	}
	return &dto.OfferListResponse{Items: items}, nil
}

// resolveSalePrice calcula el precio de oferta: el explícito si viene, si no
// el derivado del porcentaje. Siempre debe quedar en (0, originalPrice).
func resolveSalePrice(originalPrice, discountPct, salePrice decimal.Decimal) (decimal.Decimal, error) {
	resolved := salePrice
	if resolved.IsZero() {
		if discountPct.LessThanOrEqual(decimal.Zero) || discountPct.GreaterThanOrEqual(oneHundred) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		resolved = originalPrice.Mul(decimal.NewFromInt(1).Sub(discountPct.Div(oneHundred))).Round(2)
	}
	if !resolved.IsPositive() || !resolved.LessThan(originalPrice) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return resolved, nil
}

func toOfferResponse(o *entity.Offer) *dto.OfferResponse {
	return &dto.OfferResponse{
		ID:                 o.ID,
		ProductID:          o.ProductID,
		ProductName:        o.ProductName,
		OriginalPrice:      o.OriginalPrice,
		DiscountPercentage: o.DiscountPercentage,
		SalePrice:          o.SalePrice,
		StartDate:          o.StartDate,
		EndDate:            o.EndDate,
		IsActive:           o.IsActive,
		CreatedAt:          o.CreatedAt,
	}
}
