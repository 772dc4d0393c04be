package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easyeat-pos/easyeat/internal/catalog"
)

// TxRepository is the view a checkout transaction works through. Products
// read via GetProductForUpdate stay locked until the transaction ends.
type TxRepository interface {
	GetProductForUpdate(ctx context.Context, id int64) (catalog.Product, error)
	UpdateProductStock(ctx context.Context, id int64, stock int) error
	InsertSale(ctx context.Context, sale Sale) error
}

// RepositoryPort abstracts sale storage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(tx TxRepository) error) error
	ListSales(ctx context.Context) ([]Sale, error)
}

// Service settles carts into sales.
type Service struct {
	repo  RepositoryPort
	now   func() time.Time
	newID func(at time.Time) string
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: newSaleID,
	}
}

// newSaleID yields ids that sort by creation time and cannot collide across
// concurrent registers.
func newSaleID(at time.Time) string {
	return fmt.Sprintf("sale-%d-%s", at.UTC().UnixNano(), uuid.NewString()[:8])
}

// Checkout settles the cart in a single transaction. Every line is validated
// against live stock before any decrement is applied; one short line aborts
// the whole sale and no stock moves. Duplicate product lines are merged
// before validation so the combined quantity is checked, not each slice.
func (s *Service) Checkout(ctx context.Context, lines []CartLine, method PaymentMethod) (Sale, error) {
	if !method.Valid() {
		return Sale{}, ErrInvalidPayment
	}
	merged := mergeLines(lines)
	if len(merged) == 0 {
		return Sale{}, ErrEmptyCart
	}

	at := s.now().UTC()
	sale := Sale{
		ID:            s.newID(at),
		Items:         make([]SaleItem, 0, len(merged)),
		PaymentMethod: method,
		SoldAt:        at,
	}
	for _, line := range merged {
		sale.Items = append(sale.Items, SaleItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Category:  line.Product.Category,
			Price:     line.Product.Price,
			Cost:      line.Product.Cost,
			Quantity:  line.Quantity,
		})
		sale.Total += line.Subtotal()
	}

	err := s.repo.WithTx(ctx, func(tx TxRepository) error {
		live := make([]int, len(merged))
		for i, line := range merged {
			p, err := tx.GetProductForUpdate(ctx, line.Product.ID)
			if err != nil {
				return err
			}
			if p.Stock < line.Quantity {
				return fmt.Errorf("%s: %w", p.Name, catalog.ErrInsufficientStock)
			}
			live[i] = p.Stock
		}
		for i, line := range merged {
			if err := tx.UpdateProductStock(ctx, line.Product.ID, live[i]-line.Quantity); err != nil {
				return err
			}
		}
		return tx.InsertSale(ctx, sale)
	})
	if err != nil {
		return Sale{}, err
	}
	return sale, nil
}

// List returns the sales log, newest first.
func (s *Service) List(ctx context.Context) ([]Sale, error) {
	return s.repo.ListSales(ctx)
}

// mergeLines collapses lines sharing a product id, keeping the first snapshot
// and summing quantities. Lines with non-positive quantity are dropped.
func mergeLines(lines []CartLine) []CartLine {
	merged := make([]CartLine, 0, len(lines))
	index := make(map[int64]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if i, ok := index[line.Product.ID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.Product.ID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}
