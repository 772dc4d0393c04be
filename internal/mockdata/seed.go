// Package mockdata seeds the in-memory fallback stores with a plausible
// restaurant so the API stays demonstrable when PostgreSQL is unreachable.
package mockdata

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/easyeat-pos/easyeat/internal/catalog"
	"github.com/easyeat-pos/easyeat/internal/expense"
	"github.com/easyeat-pos/easyeat/internal/sales"
)

// seed keeps the generated history identical across restarts.
const seed = 1721

// Products returns the demo menu.
func Products(now time.Time) []catalog.Product {
	items := []struct {
		name     string
		category string
		price    float64
		cost     float64
		stock    int
	}{
		{"Classic Burger", "Mains", 8.50, 3.20, 45},
		{"Cheeseburger", "Mains", 9.50, 3.80, 38},
		{"Grilled Chicken Wrap", "Mains", 7.90, 2.90, 24},
		{"Margherita Pizza", "Mains", 11.00, 4.10, 18},
		{"Caesar Salad", "Salads", 6.80, 2.40, 15},
		{"French Fries", "Sides", 3.50, 0.90, 60},
		{"Onion Rings", "Sides", 4.00, 1.20, 8},
		{"Chocolate Brownie", "Desserts", 4.50, 1.50, 12},
		{"Cheesecake Slice", "Desserts", 5.00, 1.80, 6},
		{"Fresh Lemonade", "Drinks", 3.00, 0.70, 50},
		{"Iced Coffee", "Drinks", 3.80, 1.00, 9},
	}
	products := make([]catalog.Product, 0, len(items))
	created := now.AddDate(0, -3, 0)
	for i, it := range items {
		products = append(products, catalog.Product{
			ID:        int64(i + 1),
			Name:      it.name,
			Category:  it.category,
			Price:     it.price,
			Cost:      it.cost,
			Stock:     it.stock,
			ImageURL:  fmt.Sprintf("https://picsum.photos/seed/easyeat-%d/300/200", i+1),
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return products
}

// Sales returns a generated 30 day sales history, newest first. Quantities
// come from a fixed-seed source so figures are stable demo to demo; product
// stock is not reduced because the history predates the snapshot.
func Sales(now time.Time) []sales.Sale {
	rng := rand.New(rand.NewSource(seed))
	products := Products(now)
	methods := sales.PaymentMethods()

	log := []sales.Sale{}
	for day := 0; day < 30; day++ {
		date := now.AddDate(0, 0, -day)
		perDay := 2 + rng.Intn(4)
		for n := 0; n < perDay; n++ {
			at := time.Date(date.Year(), date.Month(), date.Day(), 11+rng.Intn(10), rng.Intn(60), 0, 0, time.Local)
			lineCount := 1 + rng.Intn(3)
			sale := sales.Sale{
				ID:            fmt.Sprintf("sale-%d-seed%04d", at.UTC().UnixNano(), day*10+n),
				PaymentMethod: methods[rng.Intn(len(methods))],
				SoldAt:        at,
			}
			picked := map[int64]bool{}
			for l := 0; l < lineCount; l++ {
				p := products[rng.Intn(len(products))]
				if picked[p.ID] {
					continue
				}
				picked[p.ID] = true
				qty := 1 + rng.Intn(3)
				sale.Items = append(sale.Items, sales.SaleItem{
					ProductID: p.ID,
					Name:      p.Name,
					Category:  p.Category,
					Price:     p.Price,
					Cost:      p.Cost,
					Quantity:  qty,
				})
				sale.Total += p.Price * float64(qty)
			}
			log = append(log, sale)
		}
	}
	sort.Slice(log, func(i, j int) bool {
		return log[i].SoldAt.After(log[j].SoldAt)
	})
	return log
}

// Expenses returns one demo expense per category, newest first.
func Expenses(now time.Time) []expense.Expense {
	entries := []struct {
		description string
		amount      float64
		category    expense.Category
		daysAgo     int
	}{
		{"Weekly produce delivery", 420.75, expense.CategoryFoodBeverage, 2},
		{"Electricity bill", 185.30, expense.CategoryUtilities, 5},
		{"Monthly rent", 2200.00, expense.CategoryRent, 12},
		{"Kitchen staff wages", 3150.00, expense.CategorySalaries, 14},
		{"Social media promotion", 90.00, expense.CategoryMarketing, 20},
		{"Register paper rolls", 18.40, expense.CategoryOther, 25},
	}
	expenses := make([]expense.Expense, 0, len(entries))
	for i, e := range entries {
		expenses = append(expenses, expense.Expense{
			ID:          int64(i + 1),
			Description: e.description,
			Amount:      e.amount,
			Category:    e.category,
			SpentAt:     now.AddDate(0, 0, -e.daysAgo),
		})
	}
	return expenses
}
