package repository

import "github.com/jhoicas/KwikEMart-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	UpdateRole(userID, role string) error
	// AppendPurchase anexa un pedido inmutable al historial del usuario.
	AppendPurchase(userID string, order *entity.Order) error
	List(limit, offset int) ([]*entity.User, error)
}
