package repository

import "github.com/nurmatov/onlineshop-api/internal/domain/entity"

// CartRepository defines database operations for carts and cart items.
// Items returns each item joined with the current product record so that
// totals always follow the live price.
type CartRepository interface {
	Create(c *entity.Cart) error
	GetByUser(userID string) (*entity.Cart, error)

	AddItem(it *entity.CartItem) error
	GetItem(id string) (*entity.CartItem, error)
	Items(cartID string) ([]entity.CartItem, error)
	UpdateItemQuantity(id string, quantity int) error
	RemoveItem(id string) error
}
