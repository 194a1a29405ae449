package usecase

import (
	"time"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
)

// ReviewUseCase reseñas de productos: alta por usuarios autenticados y
// moderación (editar comentario, eliminar) desde el back office. Las reseñas
// viven embebidas en el producto; cada mutación recalcula el rating promedio.
type ReviewUseCase struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewReviewUseCase construye el caso de uso de reseñas.
func NewReviewUseCase(products repository.ProductRepository, users repository.UserRepository) *ReviewUseCase {
	return &ReviewUseCase{products: products, users: users}
}

// Add añade (o reemplaza, si el usuario ya reseñó) una reseña al producto.
func (uc *ReviewUseCase) Add(productID, userID string, in dto.AddReviewRequest) (*dto.ProductReviewsResponse, error) {
	if in.Rating < 1 || in.Rating > 5 || in.Comment == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	review := entity.Review{
		UserID:   userID,
		Username: user.Name,
		Rating:   in.Rating,
		Comment:  in.Comment,
		Date:     time.Now().Format(time.RFC3339),
	}
	replaced := false
	for i := range product.Reviews {
		if product.Reviews[i].UserID == userID {
			product.Reviews[i] = review
			replaced = true
			break
		}
	}
	if !replaced {
		product.Reviews = append(product.Reviews, review)
	}
	return uc.persist(product)
}

// ListAll aplana todas las reseñas de la tienda para la pantalla de
// moderación. ReviewIndex es la posición dentro del producto y es el
// identificador que usan Update y Delete.
func (uc *ReviewUseCase) ListAll() (*dto.ModerationReviewListResponse, error) {
	products, err := uc.products.ListAll()
	if err != nil {
		return nil, err
	}
	resp := &dto.ModerationReviewListResponse{Items: []dto.ModerationReviewResponse{}}
	for _, p := range products {
		for i, r := range p.Reviews {
			resp.Items = append(resp.Items, dto.ModerationReviewResponse{
				ProductID:   p.ID,
				ProductName: p.Name,
				ReviewIndex: i,
				UserID:      r.UserID,
				Username:    r.Username,
				Rating:      r.Rating,
				Comment:     r.Comment,
				Date:        r.Date,
			})
		}
	}
	return resp, nil
}

// UpdateComment edita el comentario de una reseña (moderación).
func (uc *ReviewUseCase) UpdateComment(productID string, reviewIndex int, in dto.UpdateReviewRequest) (*dto.ProductReviewsResponse, error) {
	if in.Comment == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.requireProductWithReview(productID, reviewIndex)
	if err != nil {
		return nil, err
	}
	product.Reviews[reviewIndex].Comment = in.Comment
	return uc.persist(product)
}

// Delete elimina una reseña (moderación).
func (uc *ReviewUseCase) Delete(productID string, reviewIndex int) (*dto.ProductReviewsResponse, error) {
	product, err := uc.requireProductWithReview(productID, reviewIndex)
	if err != nil {
		return nil, err
	}
	product.Reviews = append(product.Reviews[:reviewIndex], product.Reviews[reviewIndex+1:]...)
	return uc.persist(product)
}

func (uc *ReviewUseCase) requireProductWithReview(productID string, reviewIndex int) (*entity.Product, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if reviewIndex < 0 || reviewIndex >= len(product.Reviews) {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// persist recalcula el rating y guarda las reseñas del producto.
func (uc *ReviewUseCase) persist(product *entity.Product) (*dto.ProductReviewsResponse, error) {
	product.RecalculateRating()
	if err := uc.products.UpdateReviews(product.ID, product.Reviews, product.Rating); err != nil {
		return nil, err
	}
	return &dto.ProductReviewsResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		Rating:      product.Rating,
		Reviews:     product.Reviews,
	}, nil
}
