package usecase

import (
	"context"

	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
)

// CheckoutRepos repositorios ligados a la transacción del checkout.
type CheckoutRepos struct {
	Products     repository.ProductRepository
	Users        repository.UserRepository
	Transactions repository.TransactionRepository
}

// TxRunner ejecuta la confirmación de compra de forma atómica: bloqueo de
// filas de producto, descuento de stock, historial del usuario y registro de
// la transacción, todo en la misma transacción de base de datos.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(repos CheckoutRepos) error) error
}
