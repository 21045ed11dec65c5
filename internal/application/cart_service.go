package application

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	repo "github.com/nurmatov/onlineshop-api/internal/domain/repository"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartService struct {
	Carts    repo.CartRepository
	Products repo.ProductRepository
	Ratings  repo.RatingRepository
	Users    repo.UserRepository
	Logger   *logrus.Logger
}

func NewCartService(carts repo.CartRepository, products repo.ProductRepository, ratings repo.RatingRepository, users repo.UserRepository, logger *logrus.Logger) *CartService {
	return &CartService{Carts: carts, Products: products, Ratings: ratings, Users: users, Logger: logger}
}

// cartFor returns the user's cart, provisioning it on first use for
// accounts that predate registration-time carts.
func (s *CartService) cartFor(userID string) (*entity.Cart, error) {
	cart, err := s.Carts.GetByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	cart = &entity.Cart{UserID: userID}
	if err := s.Carts.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart assembles the cart view. Totals use the current product prices
// and the owner's loyalty status; nothing is cached.
func (s *CartService) GetCart(userID string) (CartView, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return CartView{}, ErrUserNotFound
	}
	cart, err := s.cartFor(userID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(cart.ID)
	if err != nil {
		return CartView{}, err
	}
	ratings, err := s.ratingsByProduct(items)
	if err != nil {
		return CartView{}, err
	}
	return NewCartView(*cart, items, ratings, u.Status), nil
}

// AddItem appends a row to the cart. Rows are never merged: adding the same
// product twice yields two rows.
func (s *CartService) AddItem(userID, productID string, quantity int) (CartItemView, error) {
	product, err := s.Products.GetByID(productID)
	if err != nil {
		return CartItemView{}, ErrProductNotFound
	}
	cart, err := s.cartFor(userID)
	if err != nil {
		return CartItemView{}, err
	}
	if quantity <= 0 {
		quantity = 1
	}
	it := &entity.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity, Product: product}
	if err := s.Carts.AddItem(it); err != nil {
		return CartItemView{}, err
	}
	ratings, err := s.Ratings.ByProduct(productID)
	if err != nil {
		return CartItemView{}, err
	}
	return NewCartItemView(*it, ratings), nil
}

func (s *CartService) UpdateItem(userID, itemID string, quantity int) (CartItemView, error) {
	it, err := s.ownedItem(userID, itemID)
	if err != nil {
		return CartItemView{}, err
	}
	if err := s.Carts.UpdateItemQuantity(itemID, quantity); err != nil {
		return CartItemView{}, err
	}
	it.Quantity = quantity
	ratings, err := s.Ratings.ByProduct(it.ProductID)
	if err != nil {
		return CartItemView{}, err
	}
	return NewCartItemView(*it, ratings), nil
}

func (s *CartService) RemoveItem(userID, itemID string) error {
	if _, err := s.ownedItem(userID, itemID); err != nil {
		return err
	}
	return s.Carts.RemoveItem(itemID)
}

// ownedItem fetches the item and checks it belongs to the user's cart.
func (s *CartService) ownedItem(userID, itemID string) (*entity.CartItem, error) {
	it, err := s.Carts.GetItem(itemID)
	if err != nil {
		return nil, ErrCartItemNotFound
	}
	cart, err := s.Carts.GetByUser(userID)
	if err != nil || cart.ID != it.CartID {
		return nil, ErrCartItemNotFound
	}
	return it, nil
}

func (s *CartService) ratingsByProduct(items []entity.CartItem) (map[string][]entity.Rating, error) {
	out := make(map[string][]entity.Rating)
	for _, it := range items {
		if _, ok := out[it.ProductID]; ok {
			continue
		}
		ratings, err := s.Ratings.ByProduct(it.ProductID)
		if err != nil {
			return nil, err
		}
		out[it.ProductID] = ratings
	}
	return out, nil
}
