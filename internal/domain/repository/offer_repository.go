package repository

import "github.com/jhoicas/KwikEMart-api/internal/domain/entity"

// OfferRepository define el puerto de persistencia para Offer (DIP).
// La desnormalización sobre el producto la orquesta el caso de uso, no el repo.
type OfferRepository interface {
	Create(offer *entity.Offer) error
	GetByID(id string) (*entity.Offer, error)
	Update(offer *entity.Offer) error
	List() ([]*entity.Offer, error)
	Delete(id string) error
}
