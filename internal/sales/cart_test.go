package sales

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easyeat-pos/easyeat/internal/catalog"
)

func line(id int64, stock int, price float64) CartLine {
	return CartLine{Product: catalog.Product{ID: id, Stock: stock, Price: price}, Quantity: 1}
}

func TestCartAddLineMergesAndCapsAtStock(t *testing.T) {
	c := NewCart()
	c.AddLine(line(1, 2, 5))
	c.AddLine(line(1, 2, 5))
	c.AddLine(line(1, 2, 5))

	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity, "third add must be a no-op at stock")
}

func TestCartAddLineSkipsSoldOut(t *testing.T) {
	c := NewCart()
	c.AddLine(line(1, 0, 5))
	require.True(t, c.Empty())
}

func TestCartSetQuantity(t *testing.T) {
	c := NewCart()
	c.AddLine(line(1, 10, 4))
	c.AddLine(line(2, 3, 2))

	c.SetQuantity(1, 7)
	require.Equal(t, 7, c.Lines()[0].Quantity)

	c.SetQuantity(2, 5)
	require.Equal(t, 1, c.Lines()[1].Quantity, "above stock leaves line unchanged")

	c.SetQuantity(1, 0)
	lines := c.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, int64(2), lines[0].Product.ID)

	c.SetQuantity(99, 1)
	require.Len(t, c.Lines(), 1)
}

func TestCartTotalAndClear(t *testing.T) {
	c := NewCart()
	c.AddLine(CartLine{Product: catalog.Product{ID: 1, Stock: 10, Price: 4.5}, Quantity: 2})
	c.AddLine(CartLine{Product: catalog.Product{ID: 2, Stock: 10, Price: 3}, Quantity: 3})

	require.InDelta(t, 18, c.Total(), 1e-9)

	c.Clear()
	require.True(t, c.Empty())
	require.Zero(t, c.Total())
}
