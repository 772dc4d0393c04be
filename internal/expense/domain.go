// Package expense tracks operating costs for the back office.
package expense

import (
	"errors"
	"time"
)

// Category buckets an expense for reporting.
type Category string

const (
	CategoryFoodBeverage Category = "Food & Beverage Cost"
	CategoryUtilities    Category = "Utilities"
	CategoryRent         Category = "Rent/Lease"
	CategorySalaries     Category = "Salaries & Wages"
	CategoryMarketing    Category = "Marketing"
	CategoryOther        Category = "Other"
)

// Categories lists every category in report order.
func Categories() []Category {
	return []Category{
		CategoryFoodBeverage,
		CategoryUtilities,
		CategoryRent,
		CategorySalaries,
		CategoryMarketing,
		CategoryOther,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryFoodBeverage, CategoryUtilities, CategoryRent, CategorySalaries, CategoryMarketing, CategoryOther:
		return true
	}
	return false
}

var (
	ErrNotFound        = errors.New("expense: record not found")
	ErrInvalidCategory = errors.New("expense: unknown category")
)

// Expense is a single recorded cost.
type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	SpentAt     time.Time `json:"date"`
}

// ExpenseInput carries the fields a caller supplies when recording a cost.
type ExpenseInput struct {
	Description string   `json:"description" validate:"required"`
	Amount      float64  `json:"amount" validate:"required,gt=0"`
	Category    Category `json:"category" validate:"required"`
}
