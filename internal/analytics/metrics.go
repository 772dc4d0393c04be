// Package analytics derives dashboard figures from the sales log, the
// expense ledger, and the catalog. Every reducer here is a pure function of
// its inputs; fetching and caching live in Service.
package analytics

import (
	"sort"
	"time"

	"github.com/easyeat-pos/easyeat/internal/catalog"
	"github.com/easyeat-pos/easyeat/internal/expense"
	"github.com/easyeat-pos/easyeat/internal/sales"
)

// Period selects the dashboard time window.
type Period string

const (
	Period7D  Period = "7d"
	Period30D Period = "30d"
	PeriodAll Period = "all"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case Period7D, Period30D, PeriodAll:
		return true
	}
	return false
}

func (p Period) days() int {
	switch p {
	case Period7D:
		return 7
	case Period30D:
		return 30
	}
	return 0
}

// Summary holds the headline dashboard figures.
type Summary struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalCOGS     float64 `json:"totalCogs"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	SaleCount     int     `json:"saleCount"`
	LowStockCount int     `json:"lowStockCount"`
}

// Summarize reduces the full data set to the headline figures. Net profit is
// revenue minus recorded expenses; cost of goods sold is reported as its own
// card and not folded into net profit.
func Summarize(saleLog []sales.Sale, expenses []expense.Expense, products []catalog.Product) Summary {
	var s Summary
	for _, sale := range saleLog {
		s.TotalRevenue += sale.Total
		for _, item := range sale.Items {
			s.TotalCOGS += item.Cost * float64(item.Quantity)
		}
	}
	s.SaleCount = len(saleLog)
	for _, e := range expenses {
		s.TotalExpenses += e.Amount
	}
	for _, p := range products {
		if p.Stock < catalog.LowStockThreshold {
			s.LowStockCount++
		}
	}
	s.NetProfit = s.TotalRevenue - s.TotalExpenses
	return s
}

// DailyTotal is one bar on the sales chart.
type DailyTotal struct {
	Label string  `json:"date"`
	Total float64 `json:"total"`
}

// DailySales buckets sales by calendar day within the period and returns the
// buckets oldest first. The window opens at midnight of the boundary day, so
// every sale on that day counts. Day labels use the short "Jan 2" form the
// register chart shows. The log arrives newest first, so first-seen grouping
// reversed yields chronological order.
func DailySales(saleLog []sales.Sale, period Period, now time.Time) []DailyTotal {
	var cutoff time.Time
	if days := period.days(); days > 0 {
		start := now.AddDate(0, 0, -days)
		cutoff = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	}

	totals := []DailyTotal{}
	index := map[string]int{}
	for _, sale := range saleLog {
		if !cutoff.IsZero() && sale.SoldAt.Before(cutoff) {
			continue
		}
		label := sale.SoldAt.Format("Jan 2")
		i, ok := index[label]
		if !ok {
			i = len(totals)
			index[label] = i
			totals = append(totals, DailyTotal{Label: label})
		}
		totals[i].Total += sale.Total
	}
	for i, j := 0, len(totals)-1; i < j; i, j = i+1, j-1 {
		totals[i], totals[j] = totals[j], totals[i]
	}
	return totals
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category expense.Category `json:"category"`
	Total    float64          `json:"total"`
}

// ExpenseByCategory totals expenses per category, keeping report order and
// dropping empty categories.
func ExpenseByCategory(expenses []expense.Expense) []CategoryTotal {
	byCategory := map[expense.Category]float64{}
	for _, e := range expenses {
		byCategory[e.Category] += e.Amount
	}
	out := []CategoryTotal{}
	for _, c := range expense.Categories() {
		if total, ok := byCategory[c]; ok && total != 0 {
			out = append(out, CategoryTotal{Category: c, Total: total})
		}
	}
	return out
}

// ProductPerformance aggregates one product's sold lines.
type ProductPerformance struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
	COGS      float64 `json:"cogs"`
	Profit    float64 `json:"profit"`
	Margin    float64 `json:"margin"`
}

// ProductProfitability ranks sold products by profit, best first. Products
// that never sold are excluded; margin is a percentage and zero when a
// product earned no revenue. Cost and name come from the current catalog, so
// editing a product reprices its whole history in the report; revenue stays
// on the sale-frozen prices. Products no longer in the catalog fall back to
// their sale-frozen cost and name.
func ProductProfitability(saleLog []sales.Sale, products []catalog.Product) []ProductPerformance {
	live := map[int64]catalog.Product{}
	for _, p := range products {
		live[p.ID] = p
	}

	perf := []ProductPerformance{}
	index := map[int64]int{}
	for _, sale := range saleLog {
		for _, item := range sale.Items {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(perf)
				index[item.ProductID] = i
				perf = append(perf, ProductPerformance{ProductID: item.ProductID, Name: item.Name})
			}
			perf[i].UnitsSold += item.Quantity
			perf[i].Revenue += item.Price * float64(item.Quantity)
			perf[i].COGS += item.Cost * float64(item.Quantity)
		}
	}
	for i := range perf {
		if p, ok := live[perf[i].ProductID]; ok {
			perf[i].Name = p.Name
			perf[i].COGS = p.Cost * float64(perf[i].UnitsSold)
		}
		perf[i].Profit = perf[i].Revenue - perf[i].COGS
		if perf[i].Revenue != 0 {
			perf[i].Margin = perf[i].Profit / perf[i].Revenue * 100
		}
	}
	sort.SliceStable(perf, func(i, j int) bool {
		return perf[i].Profit > perf[j].Profit
	})
	return perf
}
