package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, user_id, user_name, user_email, products, total_amount, ts, payment_method, status`

// TransactionRepo implementación del puerto TransactionRepository sobre
// PostgreSQL (usable con pool o tx). Las líneas vendidas viven en la columna
// products (jsonb).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de persistencia para transacciones.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción de venta.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.UserID, tx.UserName, tx.UserEmail, tx.Products, tx.TotalAmount,
		tx.Timestamp, tx.PaymentMethod, tx.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List devuelve las transacciones más recientes primero.
func (r *TransactionRepo) List(limit int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY ts DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return r.collect(rows)
}

// ListByDateRange devuelve las transacciones en [start, end], más recientes primero.
func (r *TransactionRepo) ListByDateRange(start, end time.Time) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ts >= $1 AND ts <= $2 ORDER BY ts DESC`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list transactions by range: %w", err)
	}
	return r.collect(rows)
}

func (r *TransactionRepo) collect(rows pgx.Rows) ([]*entity.Transaction, error) {
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.UserName, &t.UserEmail, &t.Products, &t.TotalAmount,
			&t.Timestamp, &t.PaymentMethod, &t.Status,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
