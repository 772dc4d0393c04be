package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/easyeat-pos/easyeat/internal/catalog"
	"github.com/easyeat-pos/easyeat/internal/expense"
	"github.com/easyeat-pos/easyeat/internal/sales"
)

func saleAt(day time.Time, total float64, items ...sales.SaleItem) sales.Sale {
	return sales.Sale{ID: "sale-" + day.Format("20060102"), Items: items, Total: total, PaymentMethod: sales.PaymentCash, SoldAt: day}
}

func TestSummarize(t *testing.T) {
	day := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	saleLog := []sales.Sale{
		saleAt(day, 20, sales.SaleItem{ProductID: 1, Price: 10, Cost: 4, Quantity: 2}),
		saleAt(day, 15, sales.SaleItem{ProductID: 2, Price: 5, Cost: 2, Quantity: 3}),
	}
	expenses := []expense.Expense{
		{Amount: 7, Category: expense.CategoryUtilities},
		{Amount: 3, Category: expense.CategoryOther},
	}
	products := []catalog.Product{
		{ID: 1, Stock: 3},
		{ID: 2, Stock: 10},
		{ID: 3, Stock: 9},
	}

	s := Summarize(saleLog, expenses, products)
	require.InDelta(t, 35, s.TotalRevenue, 1e-9)
	require.InDelta(t, 14, s.TotalCOGS, 1e-9)
	require.InDelta(t, 10, s.TotalExpenses, 1e-9)
	require.InDelta(t, 25, s.NetProfit, 1e-9, "net profit is revenue minus expenses; COGS stays a separate card")
	require.Equal(t, 2, s.SaleCount)
	require.Equal(t, 2, s.LowStockCount, "threshold is strictly below 10")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, nil)
	require.Zero(t, s)
}

func TestDailySalesGroupsOldestFirst(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2024, 3, 15+offset, hour, 0, 0, 0, time.UTC)
	}
	// Newest first, matching the sales log contract.
	saleLog := []sales.Sale{
		saleAt(day(0, 12), 30),
		saleAt(day(0, 9), 10),
		saleAt(day(-1, 20), 25),
		saleAt(day(-3, 11), 40),
		saleAt(day(-20, 10), 99),
	}

	got := DailySales(saleLog, Period7D, now)
	require.Equal(t, []DailyTotal{
		{Label: "Mar 12", Total: 40},
		{Label: "Mar 14", Total: 25},
		{Label: "Mar 15", Total: 40},
	}, got)

	all := DailySales(saleLog, PeriodAll, now)
	require.Len(t, all, 4)
	require.Equal(t, DailyTotal{Label: "Feb 24", Total: 99}, all[0])

	require.Empty(t, DailySales(nil, Period30D, now))
}

func TestDailySalesKeepsWholeBoundaryDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	saleLog := []sales.Sale{
		saleAt(time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC), 17),
		saleAt(time.Date(2024, 3, 7, 23, 0, 0, 0, time.UTC), 5),
	}

	// The window opens at midnight of Mar 8, not at now minus seven days.
	got := DailySales(saleLog, Period7D, now)
	require.Equal(t, []DailyTotal{{Label: "Mar 8", Total: 17}}, got)
}

func TestExpenseByCategoryKeepsReportOrder(t *testing.T) {
	expenses := []expense.Expense{
		{Amount: 5, Category: expense.CategoryMarketing},
		{Amount: 12, Category: expense.CategoryFoodBeverage},
		{Amount: 8, Category: expense.CategoryMarketing},
	}

	got := ExpenseByCategory(expenses)
	require.Equal(t, []CategoryTotal{
		{Category: expense.CategoryFoodBeverage, Total: 12},
		{Category: expense.CategoryMarketing, Total: 13},
	}, got)
}

func TestProductProfitabilityRanksByProfit(t *testing.T) {
	day := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	saleLog := []sales.Sale{
		saleAt(day, 0,
			sales.SaleItem{ProductID: 1, Name: "Burger", Price: 10, Cost: 4, Quantity: 3},
			sales.SaleItem{ProductID: 2, Name: "Water", Price: 1, Cost: 1, Quantity: 5},
		),
		saleAt(day, 0,
			sales.SaleItem{ProductID: 1, Name: "Burger", Price: 10, Cost: 4, Quantity: 1},
		),
	}

	products := []catalog.Product{
		{ID: 1, Name: "Burger", Cost: 4},
		{ID: 2, Name: "Water", Cost: 1},
	}

	got := ProductProfitability(saleLog, products)
	require.Len(t, got, 2)

	require.Equal(t, int64(1), got[0].ProductID)
	require.Equal(t, 4, got[0].UnitsSold)
	require.InDelta(t, 40, got[0].Revenue, 1e-9)
	require.InDelta(t, 24, got[0].Profit, 1e-9)
	require.InDelta(t, 60, got[0].Margin, 1e-9)

	require.Equal(t, "Water", got[1].Name)
	require.InDelta(t, 0, got[1].Profit, 1e-9)
	require.InDelta(t, 0, got[1].Margin, 1e-9)
}

func TestProductProfitabilityUsesCurrentCatalogCost(t *testing.T) {
	day := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	saleLog := []sales.Sale{
		saleAt(day, 0, sales.SaleItem{ProductID: 1, Name: "Burger", Price: 10, Cost: 4, Quantity: 3}),
		saleAt(day, 0, sales.SaleItem{ProductID: 9, Name: "Retired", Price: 6, Cost: 2, Quantity: 1}),
	}
	// The catalog cost was edited after the sales; the report reprices the
	// whole history with it. Product 9 left the catalog and keeps its frozen
	// line values.
	products := []catalog.Product{{ID: 1, Name: "Double Burger", Cost: 6}}

	got := ProductProfitability(saleLog, products)
	require.Len(t, got, 2)

	require.Equal(t, "Double Burger", got[0].Name)
	require.InDelta(t, 18, got[0].COGS, 1e-9)
	require.InDelta(t, 12, got[0].Profit, 1e-9)
	require.InDelta(t, 40, got[0].Margin, 1e-9)

	require.Equal(t, "Retired", got[1].Name)
	require.InDelta(t, 2, got[1].COGS, 1e-9)
	require.InDelta(t, 4, got[1].Profit, 1e-9)
}

func TestProductProfitabilityZeroRevenueMargin(t *testing.T) {
	day := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	saleLog := []sales.Sale{
		saleAt(day, 0, sales.SaleItem{ProductID: 1, Name: "Sample", Price: 0, Cost: 2, Quantity: 1}),
	}

	got := ProductProfitability(saleLog, []catalog.Product{{ID: 1, Name: "Sample", Cost: 2}})
	require.Len(t, got, 1)
	require.InDelta(t, -2, got[0].Profit, 1e-9)
	require.Zero(t, got[0].Margin, "margin is zero when revenue is zero")
}
