package catalog

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RepositoryPort abstracts product storage for the service.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Insert(ctx context.Context, input ProductInput) (Product, error)
	Update(ctx context.Context, product Product) (Product, error)
	DecrementStock(ctx context.Context, id int64, quantity int) error
}

// Service coordinates catalog operations.
type Service struct {
	repo     RepositoryPort
	collator *collate.Collator
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{
		repo:     repo,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Get looks up a product by id.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns all products ordered by name ascending, case-insensitive.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return s.collator.CompareString(products[i].Name, products[j].Name) < 0
	})
	return products, nil
}

// Add inserts a new product and returns the stored record with its id.
func (s *Service) Add(ctx context.Context, input ProductInput) (Product, error) {
	return s.repo.Insert(ctx, input)
}

// Update replaces the full record matching the product id.
func (s *Service) Update(ctx context.Context, product Product) (Product, error) {
	return s.repo.Update(ctx, product)
}

// DecrementStock reduces stock by quantity. The store enforces the
// non-negative stock invariant even though checkout validates first.
func (s *Service) DecrementStock(ctx context.Context, id int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.DecrementStock(ctx, id, quantity)
}
