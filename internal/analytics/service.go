package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/easyeat-pos/easyeat/internal/catalog"
	"github.com/easyeat-pos/easyeat/internal/expense"
	"github.com/easyeat-pos/easyeat/internal/sales"
)

// ProductSource supplies the catalog.
type ProductSource interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

// SaleSource supplies the sales log, newest first.
type SaleSource interface {
	List(ctx context.Context) ([]sales.Sale, error)
}

// ExpenseSource supplies the expense ledger, newest first.
type ExpenseSource interface {
	List(ctx context.Context) ([]expense.Expense, error)
}

// Dashboard bundles everything the back-office landing page renders.
type Dashboard struct {
	Period          Period               `json:"period"`
	Summary         Summary              `json:"summary"`
	DailySales      []DailyTotal         `json:"dailySales"`
	ExpensesByGroup []CategoryTotal      `json:"expensesByCategory"`
	Profitability   []ProductPerformance `json:"productProfitability"`
}

// Snapshot is the condensed business state handed to the insight engine.
type Snapshot struct {
	TakenAt    time.Time            `json:"takenAt"`
	Summary    Summary              `json:"summary"`
	Products   []catalog.Product    `json:"products"`
	DailySales []DailyTotal         `json:"dailySales"`
	Top        []ProductPerformance `json:"topProducts"`
	Sales      []sales.Sale         `json:"recentSales"`
	Expenses   []expense.Expense    `json:"expenses"`
}

// Service assembles dashboard and snapshot views.
type Service struct {
	products ProductSource
	sales    SaleSource
	expenses ExpenseSource
	cache    *Cache
	now      func() time.Time
}

// NewService builds Service. cache may be nil.
func NewService(products ProductSource, saleLog SaleSource, expenses ExpenseSource, cache *Cache) *Service {
	return &Service{
		products: products,
		sales:    saleLog,
		expenses: expenses,
		cache:    cache,
		now:      time.Now,
	}
}

func (s *Service) fetch(ctx context.Context) ([]catalog.Product, []sales.Sale, []expense.Expense, error) {
	var (
		products []catalog.Product
		saleLog  []sales.Sale
		expenses []expense.Expense
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		saleLog, err = s.sales.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.expenses.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return products, saleLog, expenses, nil
}

// Dashboard computes the dashboard for the period, served from cache when a
// fresh copy exists.
func (s *Service) Dashboard(ctx context.Context, period Period) (Dashboard, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		products, saleLog, expenses, err := s.fetch(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		return Dashboard{
			Period:          period,
			Summary:         Summarize(saleLog, expenses, products),
			DailySales:      DailySales(saleLog, period, s.now()),
			ExpensesByGroup: ExpenseByCategory(expenses),
			Profitability:   ProductProfitability(saleLog, products),
		}, nil
	}

	key, err := s.cache.BuildKey(ctx, "analytics", "dashboard", string(period))
	if err != nil {
		return Dashboard{}, err
	}
	var dash Dashboard
	if err := s.cache.FetchJSON(ctx, key, &dash, loader); err != nil {
		return Dashboard{}, err
	}
	return dash, nil
}

// Snapshot captures the current business state, with the sales log capped at
// maxSales entries (newest first). maxSales <= 0 means no cap.
func (s *Service) Snapshot(ctx context.Context, maxSales int) (Snapshot, error) {
	products, saleLog, expenses, err := s.fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	capped := saleLog
	if maxSales > 0 && len(capped) > maxSales {
		capped = capped[:maxSales]
	}
	return Snapshot{
		TakenAt:    s.now().UTC(),
		Summary:    Summarize(saleLog, expenses, products),
		Products:   products,
		DailySales: DailySales(saleLog, PeriodAll, s.now()),
		Top:        ProductProfitability(saleLog, products),
		Sales:      capped,
		Expenses:   expenses,
	}, nil
}

// Invalidate drops every cached dashboard. Called after writes to products,
// sales, or expenses.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
