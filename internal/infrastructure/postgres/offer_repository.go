package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

const offerColumns = `id, product_id, product_name, original_price, discount_percentage, sale_price, start_date, end_date, is_active, created_at, updated_at`

// OfferRepo implementación del puerto OfferRepository sobre PostgreSQL.
type OfferRepo struct {
	q Querier
}

// NewOfferRepository construye el adaptador de persistencia para ofertas.
func NewOfferRepository(q Querier) *OfferRepo {
	return &OfferRepo{q: q}
}

// Create persiste una nueva oferta.
func (r *OfferRepo) Create(offer *entity.Offer) error {
	query := `
		INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		offer.ID, offer.ProductID, offer.ProductName, offer.OriginalPrice,
		offer.DiscountPercentage, offer.SalePrice, offer.StartDate, offer.EndDate,
		offer.IsActive, offer.CreatedAt, offer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// GetByID obtiene una oferta por ID.
func (r *OfferRepo) GetByID(id string) (*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	var o entity.Offer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ProductID, &o.ProductName, &o.OriginalPrice, &o.DiscountPercentage,
		&o.SalePrice, &o.StartDate, &o.EndDate, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return &o, nil
}

// Update actualiza una oferta existente.
func (r *OfferRepo) Update(offer *entity.Offer) error {
	query := `
		UPDATE offers SET product_name = $2, original_price = $3, discount_percentage = $4,
			sale_price = $5, start_date = $6, end_date = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		offer.ID, offer.ProductName, offer.OriginalPrice, offer.DiscountPercentage,
		offer.SalePrice, offer.StartDate, offer.EndDate, offer.IsActive, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las ofertas, las más recientes primero.
func (r *OfferRepo) List() ([]*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Offer
	for rows.Next() {
		var o entity.Offer
		if err := rows.Scan(
			&o.ID, &o.ProductID, &o.ProductName, &o.OriginalPrice, &o.DiscountPercentage,
			&o.SalePrice, &o.StartDate, &o.EndDate, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Delete elimina una oferta por ID.
func (r *OfferRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
