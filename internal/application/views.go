package application

import (
	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
)

// Date layouts are part of the wire contract.
const (
	DateLayout     = "02-01-2006"
	DateTimeLayout = "02-01-2006 15:04"
)

// One view struct per (entity, view) pair; field sets are fixed, no dynamic
// selection.

type CategoryView struct {
	CategoryName string `json:"category_name"`
}

func NewCategoryView(c entity.Category) CategoryView {
	return CategoryView{CategoryName: c.Name}
}

type PhotoView struct {
	Image string `json:"image"`
}

func NewPhotoView(ph entity.ProductPhoto) PhotoView {
	return PhotoView{Image: ph.ImageURL}
}

// AuthorView is the only user shape embedded in other views. Credentials,
// email, status, age and phone never appear on nested embeds.
type AuthorView struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewAuthorView(u entity.User) AuthorView {
	return AuthorView{FirstName: u.FirstName, LastName: u.LastName}
}

type ReviewView struct {
	ID          string       `json:"id"`
	Author      AuthorView   `json:"author"`
	Text        string       `json:"text"`
	CreatedDate string       `json:"created_date"`
	Replies     []ReviewView `json:"replies"`
}

// NewReviewThread shapes a product's flat review set into the nested reply
// tree. authors maps author id to the user record; an unknown author renders
// as an empty name pair rather than failing.
func NewReviewThread(reviews []entity.Review, authors map[string]entity.User) []ReviewView {
	roots, replies := entity.ThreadReviews(reviews)

	var build func(r entity.Review) ReviewView
	build = func(r entity.Review) ReviewView {
		v := ReviewView{
			ID:          r.ID,
			Author:      NewAuthorView(authors[r.AuthorID]),
			Text:        r.Text,
			CreatedDate: r.CreatedDate.Format(DateTimeLayout),
			Replies:     []ReviewView{},
		}
		for _, child := range replies[r.ID] {
			v.Replies = append(v.Replies, build(child))
		}
		return v
	}

	out := make([]ReviewView, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r))
	}
	return out
}

// ProductListView is the lightweight browsing shape: category stays a
// reference, rating is precomputed.
type ProductListView struct {
	ID            string  `json:"id"`
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	Price         int64   `json:"price"`
	AverageRating float64 `json:"average_rating"`
	Active        bool    `json:"active"`
}

func NewProductListView(p entity.Product, ratings []entity.Rating) ProductListView {
	return ProductListView{
		ID:            p.ID,
		ProductName:   p.Name,
		Category:      p.CategoryID,
		Price:         p.Price,
		AverageRating: entity.AverageStars(ratings),
		Active:        p.Active,
	}
}

// ProductDetailView adds the full category, owner name pair, media and the
// threaded reviews.
type ProductDetailView struct {
	ProductName   string       `json:"product_name"`
	Description   string       `json:"description"`
	Category      CategoryView `json:"category"`
	Price         int64        `json:"price"`
	Active        bool         `json:"active"`
	ProductVideo  string       `json:"product_video"`
	Photos        []PhotoView  `json:"product"`
	Owner         AuthorView   `json:"owner"`
	AverageRating float64      `json:"average_rating"`
	Date          string       `json:"date"`
	Reviews       []ReviewView `json:"reviews"`
}

func NewProductDetailView(
	p entity.Product,
	category entity.Category,
	owner entity.User,
	photos []entity.ProductPhoto,
	ratings []entity.Rating,
	reviews []entity.Review,
	authors map[string]entity.User,
) ProductDetailView {
	photoViews := make([]PhotoView, 0, len(photos))
	for _, ph := range photos {
		photoViews = append(photoViews, NewPhotoView(ph))
	}
	return ProductDetailView{
		ProductName:   p.Name,
		Description:   p.Description,
		Category:      NewCategoryView(category),
		Price:         p.Price,
		Active:        p.Active,
		ProductVideo:  p.VideoURL,
		Photos:        photoViews,
		Owner:         NewAuthorView(owner),
		AverageRating: entity.AverageStars(ratings),
		Date:          p.Date.Format(DateLayout),
		Reviews:       NewReviewThread(reviews, authors),
	}
}

type CartItemView struct {
	ID         string          `json:"id"`
	Product    ProductListView `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice int64           `json:"total_price"`
}

func NewCartItemView(it entity.CartItem, ratings []entity.Rating) CartItemView {
	var product ProductListView
	if it.Product != nil {
		product = NewProductListView(*it.Product, ratings)
	}
	return CartItemView{
		ID:         it.ID,
		Product:    product,
		Quantity:   it.Quantity,
		TotalPrice: it.TotalPrice(),
	}
}

type CartView struct {
	ID         string         `json:"id"`
	User       string         `json:"user"`
	Items      []CartItemView `json:"items"`
	TotalPrice int64          `json:"total_price"`
	FinalPrice float64        `json:"final_price"`
}

// NewCartView composes item views and the discounted grand total.
// ratingsByProduct feeds each embedded product list view.
func NewCartView(cart entity.Cart, items []entity.CartItem, ratingsByProduct map[string][]entity.Rating, status entity.Status) CartView {
	itemViews := make([]CartItemView, 0, len(items))
	for _, it := range items {
		itemViews = append(itemViews, NewCartItemView(it, ratingsByProduct[it.ProductID]))
	}
	total, final := entity.CartTotals(items, status)
	return CartView{
		ID:         cart.ID,
		User:       cart.UserID,
		Items:      itemViews,
		TotalPrice: total,
		FinalPrice: final,
	}
}

// ProfileView is the self-profile shape; the only view that exposes age,
// phone, status and registration date.
type ProfileView struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Age            int    `json:"age,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	Status         string `json:"status"`
	DateRegistered string `json:"date_registered"`
}

func NewProfileView(u entity.User) ProfileView {
	return ProfileView{
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Age:            u.Age,
		PhoneNumber:    u.PhoneNumber,
		Status:         string(u.Status),
		DateRegistered: u.DateRegistered.Format(DateLayout),
	}
}

// AuthUserEcho is the minimal identity echo returned with a token pair.
type AuthUserEcho struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	User    AuthUserEcho `json:"user"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
}

func NewAuthResponse(u entity.User, access, refresh string) AuthResponse {
	return AuthResponse{
		User:    AuthUserEcho{Username: u.Username, Email: u.Email},
		Access:  access,
		Refresh: refresh,
	}
}
