package catalog

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is the in-memory fallback store used when PostgreSQL is
// unreachable at startup. It is the sole owner of live stock numbers in that
// mode; the sales log cooperates through Tx.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewMemoryRepository builds a store seeded with the given products.
func NewMemoryRepository(seed []Product) *MemoryRepository {
	r := &MemoryRepository{products: make(map[int64]Product, len(seed))}
	for _, p := range seed {
		r.products[p.ID] = p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	return products, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, input ProductInput) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	p := Product{
		ID:        r.nextID,
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Cost:      input.Cost,
		Stock:     input.Stock,
		ImageURL:  input.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) Update(ctx context.Context, product Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[product.ID]
	if !ok {
		return Product{}, ErrNotFound
	}
	product.CreatedAt = stored.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	r.products[product.ID] = product
	return product, nil
}

func (r *MemoryRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	if p.Stock < quantity {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	return nil
}

// MemoryTx is a staged view over the store used by multi-product commits.
// Stock writes are buffered and only land when the Tx callback succeeds.
type MemoryTx struct {
	repo   *MemoryRepository
	staged map[int64]int
}

// Tx runs fn while holding the store lock. Staged stock changes are applied
// only when fn returns nil, giving the same all-or-nothing behaviour as a
// database transaction.
func (r *MemoryRepository) Tx(fn func(tx *MemoryTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := &MemoryTx{repo: r, staged: make(map[int64]int)}
	if err := fn(tx); err != nil {
		return err
	}
	now := time.Now().UTC()
	for id, stock := range tx.staged {
		p := r.products[id]
		p.Stock = stock
		p.UpdatedAt = now
		r.products[id] = p
	}
	return nil
}

// GetForUpdate returns the product with any staged stock change applied.
func (tx *MemoryTx) GetForUpdate(id int64) (Product, error) {
	p, ok := tx.repo.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	if stock, ok := tx.staged[id]; ok {
		p.Stock = stock
	}
	return p, nil
}

// SetStock stages a stock value for the product.
func (tx *MemoryTx) SetStock(id int64, stock int) error {
	if _, ok := tx.repo.products[id]; !ok {
		return ErrNotFound
	}
	if stock < 0 {
		return ErrInsufficientStock
	}
	tx.staged[id] = stock
	return nil
}
