package repository

import "github.com/nurmatov/onlineshop-api/internal/domain/entity"

// CategoryRepository defines database operations for categories.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]entity.Category, error)
}

// ProductRepository defines database operations for products and their
// photos. Deleting a product cascades to photos, ratings, reviews and cart
// items at the schema level.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List() ([]entity.Product, error)
	ListByCategory(categoryID string) ([]entity.Product, error)
	Update(p *entity.Product) error
	Delete(id string) error

	AddPhoto(ph *entity.ProductPhoto) error
	PhotosByProduct(productID string) ([]entity.ProductPhoto, error)
}

// RatingRepository defines database operations for ratings.
type RatingRepository interface {
	Create(r *entity.Rating) error
	ByProduct(productID string) ([]entity.Rating, error)
}

// ReviewRepository defines database operations for reviews.
type ReviewRepository interface {
	Create(r *entity.Review) error
	GetByID(id string) (*entity.Review, error)
	ByProduct(productID string) ([]entity.Review, error)
}
