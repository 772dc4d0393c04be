package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists products in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const productColumns = `id, name, category, price, cost, stock, image_url, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Cost, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repository) Get(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *Repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY LOWER(name) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) Insert(ctx context.Context, input ProductInput) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `INSERT INTO products (name, category, price, cost, stock, image_url)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING `+productColumns, input.Name, input.Category, input.Price, input.Cost, input.Stock, input.ImageURL))
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *Repository) Update(ctx context.Context, product Product) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `UPDATE products
SET name=$2, category=$3, price=$4, cost=$5, stock=$6, image_url=$7, updated_at=NOW()
WHERE id=$1
RETURNING `+productColumns, product.ID, product.Name, product.Category, product.Price, product.Cost, product.Stock, product.ImageURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// DecrementStock applies a guarded single-product decrement. The WHERE
// predicate keeps stock from ever going negative regardless of the caller.
func (r *Repository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET stock = stock - $2, updated_at = NOW()
WHERE id = $1 AND stock >= $2`, id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}
