package sales

// Cart accumulates lines before checkout. Quantities are clamped against the
// stock captured on each product snapshot; a line never exceeds what was in
// stock when the product was added. Cart is not safe for concurrent use.
type Cart struct {
	lines []CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddLine adds one unit of the product, or bumps the quantity if the product
// is already in the cart. Adding past the snapshot stock is silently ignored,
// matching the register behaviour of greying out a sold-out button.
func (c *Cart) AddLine(p ...CartLine) {
	for _, line := range p {
		c.add(line)
	}
}

func (c *Cart) add(line CartLine) {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == line.Product.ID {
			next := c.lines[i].Quantity + line.Quantity
			if next > c.lines[i].Product.Stock {
				next = c.lines[i].Product.Stock
			}
			c.lines[i].Quantity = next
			return
		}
	}
	if line.Quantity > line.Product.Stock {
		line.Quantity = line.Product.Stock
	}
	if line.Quantity <= 0 {
		return
	}
	c.lines = append(c.lines, line)
}

// SetQuantity sets the line quantity for a product. Zero or negative removes
// the line; a value above the snapshot stock leaves the line unchanged.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
		if quantity > c.lines[i].Product.Stock {
			return
		}
		c.lines[i].Quantity = quantity
		return
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Total sums the line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
