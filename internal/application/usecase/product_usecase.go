package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
	"github.com/jhoicas/KwikEMart-api/pkg/config"
)

// ProductUseCase catálogo y CRUD de productos. El stock sólo lo descuenta el
// checkout; aquí únicamente lo fija el admin.
type ProductUseCase struct {
	repo  repository.ProductRepository
	store config.StoreConfig
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, store config.StoreConfig) *ProductUseCase {
	return &ProductUseCase{repo: repo, store: store}
}

// Create crea un producto nuevo (admin).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThanOrEqual(decimal.Zero) || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	// onSale exige salePrice menor al precio de lista
	if in.OnSale && (!in.SalePrice.IsPositive() || !in.SalePrice.LessThan(in.Price)) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		Rating:      decimal.Zero,
		Reviews:     []entity.Review{},
		Description: in.Description,
		Stock:       in.Stock,
		Featured:    in.Featured,
		OnSale:      in.OnSale,
		SalePrice:   in.SalePrice,
		DailyDeal:   in.DailyDeal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(product), nil
}

// Update actualiza un producto (admin, parcial). Mantiene el invariante
// onSale => salePrice < price sobre los valores resultantes.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, domain.ErrInvalidInput
		}
		product.Category = *in.Category
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}
	if in.OnSale != nil {
		product.OnSale = *in.OnSale
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.DailyDeal != nil {
		product.DailyDeal = *in.DailyDeal
	}
	if product.OnSale && (!product.SalePrice.IsPositive() || !product.SalePrice.LessThan(product.Price)) {
		return nil, domain.ErrInvalidInput
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// List lista el catálogo con búsqueda, filtro por categoría y ordenamiento.
func (uc *ProductUseCase) List(in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	if in.Category != "" && !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	sort := in.Sort
	switch sort {
	case repository.SortDefault, repository.SortPriceAsc, repository.SortPriceDesc, repository.SortRating:
	case "":
		sort = repository.SortDefault
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(repository.ProductFilter{
		Search:   in.Search,
		Category: in.Category,
		Sort:     sort,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID (admin).
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// InventoryStats resumen de inventario y distribución por categoría (admin).
func (uc *ProductUseCase) InventoryStats() (*dto.InventoryStatsResponse, error) {
	products, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	stats := &dto.InventoryStatsResponse{}
	byCategory := map[string]*dto.CategoryDistribution{}
	for _, p := range products {
		stats.TotalProducts++
		stats.TotalStock += p.Stock
		if p.Stock == 0 {
			stats.OutOfStock++
		} else if p.HasLowStock(uc.store.LowStockThreshold) {
			stats.LowStock++
		}
		c, ok := byCategory[p.Category]
		if !ok {
			c = &dto.CategoryDistribution{Category: p.Category}
			byCategory[p.Category] = c
		}
		c.Products++
		c.Stock += p.Stock
	}
	for _, cat := range []string{entity.CategoryBeverages, entity.CategorySnacks, entity.CategoryEssentials} {
		if c, ok := byCategory[cat]; ok {
			stats.Categories = append(stats.Categories, *c)
		}
	}
	return stats, nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price,
		EffectivePrice: p.EffectivePrice(),
		Category:       p.Category,
		Image:          p.Image,
		Rating:         p.Rating,
		Reviews:        p.Reviews,
		Description:    p.Description,
		Stock:          p.Stock,
		LowStock:       p.HasLowStock(uc.store.LowStockThreshold),
		Featured:       p.Featured,
		OnSale:         p.OnSale,
		SalePrice:      p.SalePrice,
		DailyDeal:      p.DailyDeal,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
