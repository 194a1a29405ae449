package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, price, category, image, rating, reviews, description, stock, featured, on_sale, sale_price, daily_deal, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Las reseñas viven embebidas en la columna reviews (jsonb).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Price, product.Category, product.Image,
		product.Rating, product.Reviews, product.Description, product.Stock,
		product.Featured, product.OnSale, product.SalePrice, product.DailyDeal,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByIDForUpdate obtiene un producto bloqueando la fila (SELECT FOR UPDATE).
// Sólo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// Update actualiza un producto completo (reseñas incluidas).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, category = $4, image = $5, rating = $6,
			reviews = $7, description = $8, stock = $9, featured = $10, on_sale = $11,
			sale_price = $12, daily_deal = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Price, product.Category, product.Image,
		product.Rating, product.Reviews, product.Description, product.Stock,
		product.Featured, product.OnSale, product.SalePrice, product.DailyDeal,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el stock del producto (lo usa el checkout dentro de la tx).
func (r *ProductRepo) UpdateStock(productID string, stock int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateSale desnormaliza una oferta sobre el producto.
func (r *ProductRepo) UpdateSale(productID string, onSale bool, salePrice decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET on_sale = $2, sale_price = $3, updated_at = now() WHERE id = $1`,
		productID, onSale, salePrice,
	)
	if err != nil {
		return fmt.Errorf("update product sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateReviews reemplaza las reseñas embebidas y el rating promedio.
func (r *ProductRepo) UpdateReviews(productID string, reviews []entity.Review, rating decimal.Decimal) error {
	if reviews == nil {
		reviews = []entity.Review{}
	}
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET reviews = $2, rating = $3, updated_at = now() WHERE id = $1`,
		productID, reviews, rating,
	)
	if err != nil {
		return fmt.Errorf("update product reviews: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo con búsqueda por nombre, filtro por categoría y
// ordenamiento. El orden por defecto pone primero los destacados.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}

	switch filter.Sort {
	case repository.SortPriceAsc:
		// Ordena por el precio efectivo, no el de lista
		query += ` ORDER BY CASE WHEN on_sale AND sale_price > 0 THEN sale_price ELSE price END ASC`
	case repository.SortPriceDesc:
		query += ` ORDER BY CASE WHEN on_sale AND sale_price > 0 THEN sale_price ELSE price END DESC`
	case repository.SortRating:
		query += ` ORDER BY rating DESC`
	default:
		query += ` ORDER BY featured DESC, name ASC`
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	return r.scanMany(query, args...)
}

// ListAll devuelve todo el catálogo (ofertas diarias, estadísticas, moderación).
func (r *ProductRepo) ListAll() ([]*entity.Product, error) {
	return r.scanMany(`SELECT ` + productColumns + ` FROM products ORDER BY name ASC`)
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &p.Rating, &p.Reviews,
		&p.Description, &p.Stock, &p.Featured, &p.OnSale, &p.SalePrice, &p.DailyDeal,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &p.Rating, &p.Reviews,
			&p.Description, &p.Stock, &p.Featured, &p.OnSale, &p.SalePrice, &p.DailyDeal,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
