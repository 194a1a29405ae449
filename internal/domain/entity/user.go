package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole indica si el rol existe en el sistema.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// User representa un usuario de la tienda.
// PurchaseHistory es la lista inmutable de pedidos completados (arreglo JSONB,
// sólo se le añade al confirmar un checkout).
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string // bcrypt hash, nunca plano en dominio después de persistir
	Role            string // admin, user
	Status          string // active, inactive, suspended
	PhotoURL        string
	PurchaseHistory []Order
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
