package sales

import (
	"context"
	"sync"

	"github.com/easyeat-pos/easyeat/internal/catalog"
)

// MemoryRepository is the in-memory fallback sale log. Stock stays owned by
// the catalog store; checkout stages decrements through its transaction view
// so a failed line leaves both stores untouched.
type MemoryRepository struct {
	mu       sync.RWMutex
	products *catalog.MemoryRepository
	sales    []Sale
}

// NewMemoryRepository builds a sale log seeded newest first, sharing the
// given catalog store for stock.
func NewMemoryRepository(products *catalog.MemoryRepository, seed []Sale) *MemoryRepository {
	sales := make([]Sale, len(seed))
	copy(sales, seed)
	return &MemoryRepository{products: products, sales: sales}
}

// WithTx runs fn against a staged view. Stock writes and the inserted sale
// land only when fn returns nil.
func (r *MemoryRepository) WithTx(ctx context.Context, fn func(tx TxRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products.Tx(func(ptx *catalog.MemoryTx) error {
		tx := &memoryTx{products: ptx}
		if err := fn(tx); err != nil {
			return err
		}
		r.sales = append(tx.inserted, r.sales...)
		return nil
	})
}

// ListSales returns the log newest first.
func (r *MemoryRepository) ListSales(ctx context.Context) ([]Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Sale, len(r.sales))
	copy(out, r.sales)
	return out, nil
}

type memoryTx struct {
	products *catalog.MemoryTx
	inserted []Sale
}

func (tx *memoryTx) GetProductForUpdate(ctx context.Context, id int64) (catalog.Product, error) {
	return tx.products.GetForUpdate(id)
}

func (tx *memoryTx) UpdateProductStock(ctx context.Context, id int64, stock int) error {
	return tx.products.SetStock(id, stock)
}

func (tx *memoryTx) InsertSale(ctx context.Context, sale Sale) error {
	tx.inserted = append(tx.inserted, sale)
	return nil
}
