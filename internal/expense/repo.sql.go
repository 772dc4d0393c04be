package expense

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists expenses in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) List(ctx context.Context) ([]Expense, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, description, amount, category, spent_at
FROM expenses ORDER BY spent_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	expenses := []Expense{}
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.SpentAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *Repository) Insert(ctx context.Context, e Expense) (Expense, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO expenses (description, amount, category, spent_at)
VALUES ($1,$2,$3,$4)
RETURNING id`, e.Description, e.Amount, e.Category, e.SpentAt).Scan(&e.ID)
	if err != nil {
		return Expense{}, err
	}
	return e, nil
}
