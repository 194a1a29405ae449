package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

// Ordenamientos soportados por el listado del catálogo.
const (
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

// ProductFilter filtro del listado de catálogo.
type ProductFilter struct {
	Search   string // subcadena del nombre, case-insensitive
	Category string // beverages | snacks | essentials; vacío = todas
	Sort     string // SortDefault, SortPriceAsc, SortPriceDesc, SortRating
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); sólo tiene sentido
	// dentro de una transacción, para el descuento de stock del checkout.
	GetByIDForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el stock del producto (usado por el checkout en tx).
	UpdateStock(productID string, stock int) error
	// UpdateSale desnormaliza una oferta sobre el producto.
	UpdateSale(productID string, onSale bool, salePrice decimal.Decimal) error
	// UpdateReviews reemplaza las reseñas embebidas y el rating promedio.
	UpdateReviews(productID string, reviews []entity.Review, rating decimal.Decimal) error
	List(filter ProductFilter) ([]*entity.Product, error)
	ListAll() ([]*entity.Product, error)
	Delete(id string) error
}
