package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easyeat-pos/easyeat/internal/catalog"
	"github.com/easyeat-pos/easyeat/internal/platform/db"
)

// Repository persists sales in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// WithTx runs fn inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(tx TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&txRepository{tx: tx})
	})
}

// ListSales returns all sales newest first, items included.
func (r *Repository) ListSales(ctx context.Context) ([]Sale, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, total, payment_method, sold_at
FROM sales ORDER BY sold_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []Sale{}
	index := map[string]int{}
	ids := []string{}
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.Total, &s.PaymentMethod, &s.SoldAt); err != nil {
			return nil, err
		}
		s.Items = []SaleItem{}
		index[s.ID] = len(sales)
		ids = append(ids, s.ID)
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	itemRows, err := r.pool.Query(ctx, `SELECT sale_id, product_id, name, category, price, cost, quantity
FROM sale_items WHERE sale_id = ANY($1) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var saleID string
		var item SaleItem
		if err := itemRows.Scan(&saleID, &item.ProductID, &item.Name, &item.Category, &item.Price, &item.Cost, &item.Quantity); err != nil {
			return nil, err
		}
		i, ok := index[saleID]
		if !ok {
			continue
		}
		sales[i].Items = append(sales[i].Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

// txRepository adapts a pgx transaction to TxRepository.
type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) GetProductForUpdate(ctx context.Context, id int64) (catalog.Product, error) {
	var p catalog.Product
	err := r.tx.QueryRow(ctx, `SELECT id, name, category, price, cost, stock, image_url, created_at, updated_at
FROM products WHERE id=$1 FOR UPDATE`, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Cost, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Product{}, catalog.ErrNotFound
		}
		return catalog.Product{}, err
	}
	return p, nil
}

func (r *txRepository) UpdateProductStock(ctx context.Context, id int64, stock int) error {
	if stock < 0 {
		return catalog.ErrInsufficientStock
	}
	tag, err := r.tx.Exec(ctx, `UPDATE products SET stock=$2, updated_at=NOW() WHERE id=$1`, id, stock)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *txRepository) InsertSale(ctx context.Context, sale Sale) error {
	if _, err := r.tx.Exec(ctx, `INSERT INTO sales (id, total, payment_method, sold_at)
VALUES ($1,$2,$3,$4)`, sale.ID, sale.Total, sale.PaymentMethod, sale.SoldAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("sales: duplicate sale id %s", sale.ID)
		}
		return err
	}
	for _, item := range sale.Items {
		if _, err := r.tx.Exec(ctx, `INSERT INTO sale_items (sale_id, product_id, name, category, price, cost, quantity)
VALUES ($1,$2,$3,$4,$5,$6,$7)`, sale.ID, item.ProductID, item.Name, item.Category, item.Price, item.Cost, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
