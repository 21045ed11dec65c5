package entity

import (
	"time"
)

// Cart belongs to exactly one user. CreatedDate is set once at creation.
type Cart struct {
	ID          string
	UserID      string
	CreatedDate time.Time
}

// CartItem is a (cart, product) pair with a positive quantity. Product is
// the current product record loaded with the item: line totals follow the
// live price, not a snapshot taken at add-to-cart time. Duplicate items for
// the same product within one cart are permitted.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	Product   *Product
}

// TotalPrice is the line-item total: current product price times quantity.
func (i CartItem) TotalPrice() int64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * int64(i.Quantity)
}

// StatusDiscounts maps a loyalty tier to its discount fraction. New tiers
// are additive here; any status missing from the table gets no discount.
var StatusDiscounts = map[Status]float64{
	StatusGold:   0.75,
	StatusSilver: 0.50,
	StatusBronze: 0.25,
	StatusSimple: 0,
}

// DiscountFor returns the discount fraction for a loyalty tier.
// Unrecognized values silently map to 0.
func DiscountFor(s Status) float64 {
	return StatusDiscounts[s]
}

// CartTotals sums the line-item totals and applies the owner's loyalty
// discount: final = total × (1 − discount). An empty cart yields 0.
func CartTotals(items []CartItem, status Status) (totalPrice int64, finalPrice float64) {
	for _, it := range items {
		totalPrice += it.TotalPrice()
	}
	finalPrice = float64(totalPrice) * (1 - DiscountFor(status))
	return totalPrice, finalPrice
}
