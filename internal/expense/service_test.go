package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddStampsAndPrepends(t *testing.T) {
	svc := NewService(NewMemoryRepository(nil))
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }
	ctx := context.Background()

	first, err := svc.Add(ctx, ExpenseInput{Description: "Vegetable delivery", Amount: 120.5, Category: CategoryFoodBeverage})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), first.SpentAt)

	second, err := svc.Add(ctx, ExpenseInput{Description: "Electricity", Amount: 80, Category: CategoryUtilities})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID, "newest expense comes first")
	require.Equal(t, first.ID, list[1].ID)
}

func TestAddRejectsUnknownCategory(t *testing.T) {
	svc := NewService(NewMemoryRepository(nil))

	_, err := svc.Add(context.Background(), ExpenseInput{Description: "Bribe", Amount: 10, Category: Category("Slush Fund")})
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCategoriesOrder(t *testing.T) {
	require.Equal(t, []Category{
		CategoryFoodBeverage,
		CategoryUtilities,
		CategoryRent,
		CategorySalaries,
		CategoryMarketing,
		CategoryOther,
	}, Categories())
	for _, c := range Categories() {
		require.True(t, c.Valid())
	}
}
