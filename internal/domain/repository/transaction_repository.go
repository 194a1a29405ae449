package repository

import (
	"time"

	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para Transaction (DIP).
// Los listados devuelven las transacciones más recientes primero.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	List(limit int) ([]*entity.Transaction, error)
	ListByDateRange(start, end time.Time) ([]*entity.Transaction, error)
}
