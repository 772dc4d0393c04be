// Package sales implements the cart and the sale transaction engine.
package sales

import (
	"errors"
	"time"

	"github.com/easyeat-pos/easyeat/internal/catalog"
)

// PaymentMethod is the tender used to settle a sale.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Cash"
	PaymentCard         PaymentMethod = "Card"
	PaymentMobileWallet PaymentMethod = "Mobile Wallet"
)

// PaymentMethods lists every accepted tender.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCard, PaymentMobileWallet}
}

// Valid reports whether m is an accepted tender.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileWallet:
		return true
	}
	return false
}

var (
	ErrEmptyCart      = errors.New("sales: cart is empty")
	ErrInvalidPayment = errors.New("sales: unknown payment method")
)

// SaleItem is the point-in-time snapshot of a product line at checkout.
// Price and cost are frozen when the line enters the cart, so later catalog
// edits never rewrite history.
type SaleItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Cost      float64 `json:"cost"`
	Quantity  int     `json:"quantity"`
}

// Sale is a settled transaction.
type Sale struct {
	ID            string        `json:"id"`
	Items         []SaleItem    `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	SoldAt        time.Time     `json:"date"`
}

// CartLine pairs a product snapshot with the desired quantity.
type CartLine struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal is the line contribution to the sale total.
func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}
