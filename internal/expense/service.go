package expense

import (
	"context"
	"time"
)

// RepositoryPort abstracts expense storage for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Expense, error)
	Insert(ctx context.Context, e Expense) (Expense, error)
}

// Service coordinates the expense ledger.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns all expenses, newest first.
func (s *Service) List(ctx context.Context) ([]Expense, error) {
	return s.repo.List(ctx)
}

// Add records a cost stamped with the current time.
func (s *Service) Add(ctx context.Context, input ExpenseInput) (Expense, error) {
	if !input.Category.Valid() {
		return Expense{}, ErrInvalidCategory
	}
	return s.repo.Insert(ctx, Expense{
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		SpentAt:     s.now().UTC(),
	})
}
