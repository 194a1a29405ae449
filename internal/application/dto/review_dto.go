package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

// AddReviewRequest entrada para reseñar un producto (usuario autenticado).
type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1,max=1000"`
}

// UpdateReviewRequest entrada para editar el comentario de una reseña (moderación).
type UpdateReviewRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=1000"`
}

// ModerationReviewResponse reseña aplanada para la pantalla de moderación:
// incluye el producto al que pertenece y su posición dentro del arreglo.
type ModerationReviewResponse struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	ReviewIndex int    `json:"reviewIndex"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	Date        string `json:"date"`
}

// ProductReviewsResponse reseñas de un producto tras una mutación, con el
// rating promedio recalculado.
type ProductReviewsResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Rating      decimal.Decimal `json:"rating"`
	Reviews     []entity.Review `json:"reviews"`
}

// ModerationReviewListResponse todas las reseñas de la tienda.
type ModerationReviewListResponse struct {
	Items []ModerationReviewResponse `json:"items"`
}
