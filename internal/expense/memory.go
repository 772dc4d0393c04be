package expense

import (
	"context"
	"sync"
)

// MemoryRepository is the in-memory fallback ledger.
type MemoryRepository struct {
	mu       sync.RWMutex
	expenses []Expense
	nextID   int64
}

// NewMemoryRepository builds a ledger seeded newest first.
func NewMemoryRepository(seed []Expense) *MemoryRepository {
	r := &MemoryRepository{expenses: make([]Expense, len(seed))}
	copy(r.expenses, seed)
	for _, e := range seed {
		if e.ID > r.nextID {
			r.nextID = e.ID
		}
	}
	return r
}

func (r *MemoryRepository) List(ctx context.Context) ([]Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Expense, len(r.expenses))
	copy(out, r.expenses)
	return out, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, e Expense) (Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.ID = r.nextID
	r.expenses = append([]Expense{e}, r.expenses...)
	return e, nil
}
