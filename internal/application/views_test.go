package application

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
)

func sampleDetailView() ProductDetailView {
	date := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	owner := entity.User{
		ID: "u1", Username: "seller", Email: "seller@example.com", Password: "hash",
		FirstName: "Erlan", LastName: "B", Age: 40, PhoneNumber: "+996700111222",
		Status: entity.StatusGold,
	}
	author := entity.User{
		ID: "u2", Username: "buyer", Email: "buyer@example.com", Password: "hash",
		FirstName: "Aizhan", LastName: "K", Status: entity.StatusSilver,
	}
	p := entity.Product{
		ID: "p1", Name: "headphones", CategoryID: "c1", Price: 1500,
		Description: "wireless", Date: date, Active: true, VideoURL: "https://cdn/vid.mp4", OwnerID: "u1",
	}
	reviews := []entity.Review{
		{ID: "r1", AuthorID: "u2", Text: "good", ProductID: "p1", CreatedDate: date.Add(2 * time.Hour)},
		{ID: "r2", AuthorID: "u1", Text: "thanks", ProductID: "p1", ParentReviewID: "r1", CreatedDate: date.Add(3 * time.Hour)},
	}
	return NewProductDetailView(
		p,
		entity.Category{ID: "c1", Name: "electronics"},
		owner,
		[]entity.ProductPhoto{{ID: "ph1", ProductID: "p1", ImageURL: "https://cdn/img.jpg"}},
		[]entity.Rating{{Stars: 3}, {Stars: 4}, {Stars: 5}},
		reviews,
		map[string]entity.User{"u1": owner, "u2": author},
	)
}

func TestProductDetailView_Fields(t *testing.T) {
	view := sampleDetailView()

	assert.Equal(t, "headphones", view.ProductName)
	assert.Equal(t, "electronics", view.Category.CategoryName)
	assert.InDelta(t, 4.0, view.AverageRating, 1e-9)
	assert.Equal(t, "07-03-2024", view.Date)
	require.Len(t, view.Photos, 1)
	assert.Equal(t, "https://cdn/img.jpg", view.Photos[0].Image)
	assert.Equal(t, AuthorView{FirstName: "Erlan", LastName: "B"}, view.Owner)
}

func TestProductDetailView_ReviewThreading(t *testing.T) {
	view := sampleDetailView()

	require.Len(t, view.Reviews, 1)
	root := view.Reviews[0]
	assert.Equal(t, "good", root.Text)
	assert.Equal(t, "07-03-2024 12:00", root.CreatedDate)
	require.Len(t, root.Replies, 1)
	assert.Equal(t, "thanks", root.Replies[0].Text)
	assert.Equal(t, AuthorView{FirstName: "Erlan", LastName: "B"}, root.Replies[0].Author)
}

func TestProductDetailView_NeverLeaksCredentials(t *testing.T) {
	view := sampleDetailView()

	b, err := json.Marshal(view)
	require.NoError(t, err)
	s := string(b)

	assert.NotContains(t, s, "seller@example.com")
	assert.NotContains(t, s, "buyer@example.com")
	assert.NotContains(t, s, "hash")
	assert.NotContains(t, s, "gold")
	assert.NotContains(t, s, "silver")
	assert.NotContains(t, s, "+996700111222")
}

func TestProductListView(t *testing.T) {
	p := entity.Product{ID: "p1", Name: "headphones", CategoryID: "c1", Price: 1500, Active: true}

	view := NewProductListView(p, nil)
	assert.Equal(t, float64(0), view.AverageRating)

	view = NewProductListView(p, []entity.Rating{{Stars: 1}, {Stars: 2}})
	assert.InDelta(t, 1.5, view.AverageRating, 1e-9)
	assert.Equal(t, "c1", view.Category)
	assert.True(t, view.Active)
}

func TestCartView_Shapes(t *testing.T) {
	cart := entity.Cart{ID: "ct1", UserID: "u1"}
	p := entity.Product{ID: "p1", Name: "item", CategoryID: "c1", Price: 100, Active: true}
	items := []entity.CartItem{
		{ID: "i1", CartID: "ct1", ProductID: "p1", Quantity: 3, Product: &p},
	}

	view := NewCartView(cart, items, nil, entity.StatusBronze)
	assert.Equal(t, "ct1", view.ID)
	assert.Equal(t, "u1", view.User)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(300), view.Items[0].TotalPrice)
	assert.Equal(t, "item", view.Items[0].Product.ProductName)
	assert.Equal(t, int64(300), view.TotalPrice)
	assert.InDelta(t, 225.0, view.FinalPrice, 1e-9)
}

func TestProfileView_DateFormat(t *testing.T) {
	u := entity.User{
		Username: "aizhan", Email: "a@example.com", FirstName: "Aizhan", LastName: "K",
		Age: 24, PhoneNumber: "+996700123456", Status: entity.StatusSilver,
		DateRegistered: time.Date(2023, 12, 1, 8, 30, 0, 0, time.UTC),
	}
	view := NewProfileView(u)
	assert.Equal(t, "01-12-2023", view.DateRegistered)
	assert.Equal(t, "silver", view.Status)
}
