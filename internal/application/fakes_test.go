package application

import (
	"fmt"
	"time"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	repo "github.com/nurmatov/onlineshop-api/internal/domain/repository"
)

// memStore is a shared in-memory table set backing the fake repositories.
// Product deletion cascades the way the schema does.
type memStore struct {
	seq        int
	users      map[string]*entity.User
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	photos     map[string]*entity.ProductPhoto
	ratings    map[string]*entity.Rating
	reviews    map[string]*entity.Review
	carts      map[string]*entity.Cart
	items      map[string]*entity.CartItem
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]*entity.User{},
		categories: map[string]*entity.Category{},
		products:   map[string]*entity.Product{},
		photos:     map[string]*entity.ProductPhoto{},
		ratings:    map[string]*entity.Rating{},
		reviews:    map[string]*entity.Review{},
		carts:      map[string]*entity.Cart{},
		items:      map[string]*entity.CartItem{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

type fakeUserRepo struct{ *memStore }

func (f fakeUserRepo) Create(u *entity.User) error {
	for _, other := range f.users {
		if other.Username == u.Username || other.Email == u.Email {
			return repo.ErrConflict
		}
	}
	u.ID = f.nextID("u")
	u.DateRegistered = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f fakeUserRepo) Update(u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

type fakeCategoryRepo struct{ *memStore }

func (f fakeCategoryRepo) Create(c *entity.Category) error {
	for _, other := range f.categories {
		if other.Name == c.Name {
			return repo.ErrConflict
		}
	}
	c.ID = f.nextID("c")
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCategoryRepo) List() ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

type fakeProductRepo struct{ *memStore }

func (f fakeProductRepo) Create(p *entity.Product) error {
	p.ID = f.nextID("p")
	p.Date = time.Now()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakeProductRepo) List() ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f fakeProductRepo) ListByCategory(categoryID string) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f fakeProductRepo) Delete(id string) error {
	if _, ok := f.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.products, id)
	for k, ph := range f.photos {
		if ph.ProductID == id {
			delete(f.photos, k)
		}
	}
	for k, rt := range f.ratings {
		if rt.ProductID == id {
			delete(f.ratings, k)
		}
	}
	for k, rv := range f.reviews {
		if rv.ProductID == id {
			delete(f.reviews, k)
		}
	}
	for k, it := range f.items {
		if it.ProductID == id {
			delete(f.items, k)
		}
	}
	return nil
}

func (f fakeProductRepo) AddPhoto(ph *entity.ProductPhoto) error {
	ph.ID = f.nextID("ph")
	cp := *ph
	f.photos[ph.ID] = &cp
	return nil
}

func (f fakeProductRepo) PhotosByProduct(productID string) ([]entity.ProductPhoto, error) {
	var out []entity.ProductPhoto
	for _, ph := range f.photos {
		if ph.ProductID == productID {
			out = append(out, *ph)
		}
	}
	return out, nil
}

type fakeRatingRepo struct{ *memStore }

func (f fakeRatingRepo) Create(rt *entity.Rating) error {
	rt.ID = f.nextID("rt")
	cp := *rt
	f.ratings[rt.ID] = &cp
	return nil
}

func (f fakeRatingRepo) ByProduct(productID string) ([]entity.Rating, error) {
	var out []entity.Rating
	for _, rt := range f.ratings {
		if rt.ProductID == productID {
			out = append(out, *rt)
		}
	}
	return out, nil
}

type fakeReviewRepo struct{ *memStore }

func (f fakeReviewRepo) Create(rv *entity.Review) error {
	rv.ID = f.nextID("rv")
	rv.CreatedDate = time.Now()
	cp := *rv
	f.reviews[rv.ID] = &cp
	return nil
}

func (f fakeReviewRepo) GetByID(id string) (*entity.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (f fakeReviewRepo) ByProduct(productID string) ([]entity.Review, error) {
	// Ordered by id to mimic created_date ordering.
	var out []entity.Review
	for i := 1; i <= f.seq; i++ {
		id := fmt.Sprintf("rv%d", i)
		if rv, ok := f.reviews[id]; ok && rv.ProductID == productID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

type fakeCartRepo struct{ *memStore }

func (f fakeCartRepo) Create(c *entity.Cart) error {
	for _, other := range f.carts {
		if other.UserID == c.UserID {
			return repo.ErrConflict
		}
	}
	c.ID = f.nextID("ct")
	c.CreatedDate = time.Now()
	cp := *c
	f.carts[c.ID] = &cp
	return nil
}

func (f fakeCartRepo) GetByUser(userID string) (*entity.Cart, error) {
	for _, c := range f.carts {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f fakeCartRepo) AddItem(it *entity.CartItem) error {
	it.ID = f.nextID("i")
	cp := *it
	cp.Product = nil
	f.items[it.ID] = &cp
	return nil
}

func (f fakeCartRepo) GetItem(id string) (*entity.CartItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *it
	if p, ok := f.products[cp.ProductID]; ok {
		pc := *p
		cp.Product = &pc
	}
	return &cp, nil
}

func (f fakeCartRepo) Items(cartID string) ([]entity.CartItem, error) {
	// Join against the live product record, like the SQL implementation.
	var out []entity.CartItem
	for i := 1; i <= f.seq; i++ {
		id := fmt.Sprintf("i%d", i)
		it, ok := f.items[id]
		if !ok || it.CartID != cartID {
			continue
		}
		cp := *it
		if p, ok := f.products[cp.ProductID]; ok {
			pc := *p
			cp.Product = &pc
		}
		out = append(out, cp)
	}
	return out, nil
}

func (f fakeCartRepo) UpdateItemQuantity(id string, quantity int) error {
	it, ok := f.items[id]
	if !ok {
		return repo.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (f fakeCartRepo) RemoveItem(id string) error {
	if _, ok := f.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

var (
	_ repo.UserRepository     = fakeUserRepo{}
	_ repo.CategoryRepository = fakeCategoryRepo{}
	_ repo.ProductRepository  = fakeProductRepo{}
	_ repo.RatingRepository   = fakeRatingRepo{}
	_ repo.ReviewRepository   = fakeReviewRepo{}
	_ repo.CartRepository     = fakeCartRepo{}
)
