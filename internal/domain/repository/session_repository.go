package repository

import (
	"context"

	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
)

// SessionRepository almacén efímero de sesiones de carrito/checkout
// (implementado sobre Redis con TTL). Get devuelve nil si la sesión no existe
// o expiró.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*checkout.Session, error)
	Save(ctx context.Context, s *checkout.Session) error
	Delete(ctx context.Context, id string) error
}
