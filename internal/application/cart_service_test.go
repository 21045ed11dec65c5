package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
)

func newCartService(store *memStore) *CartService {
	return NewCartService(fakeCartRepo{store}, fakeProductRepo{store}, fakeRatingRepo{store}, fakeUserRepo{store}, nil)
}

func seedShopper(t *testing.T, store *memStore, status entity.Status) *entity.User {
	t.Helper()
	u := &entity.User{Username: "shopper-" + string(status), Email: string(status) + "@example.com", Status: status}
	require.NoError(t, fakeUserRepo{store}.Create(u))
	return u
}

func seedCatalogProduct(t *testing.T, store *memStore, price int64) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: "item", CategoryID: "c1", Price: price, Active: true, OwnerID: "owner"}
	require.NoError(t, fakeProductRepo{store}.Create(p))
	return p
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	store := newMemStore()
	svc := newCartService(store)
	u := seedShopper(t, store, entity.StatusSimple)

	_, err := svc.AddItem(u.ID, "missing", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_GetCart_DiscountTiers(t *testing.T) {
	tests := []struct {
		status entity.Status
		final  float64
	}{
		{entity.StatusGold, 250.0},
		{entity.StatusSilver, 500.0},
		{entity.StatusBronze, 750.0},
		{entity.StatusSimple, 1000.0},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			store := newMemStore()
			svc := newCartService(store)
			u := seedShopper(t, store, tt.status)
			p := seedCatalogProduct(t, store, 250)

			_, err := svc.AddItem(u.ID, p.ID, 4)
			require.NoError(t, err)

			view, err := svc.GetCart(u.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1000), view.TotalPrice)
			assert.InDelta(t, tt.final, view.FinalPrice, 1e-9)
		})
	}
}

func TestCartService_GetCart_Empty(t *testing.T) {
	store := newMemStore()
	svc := newCartService(store)
	u := seedShopper(t, store, entity.StatusGold)

	view, err := svc.GetCart(u.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.TotalPrice)
	assert.Equal(t, 0.0, view.FinalPrice)
}

func TestCartService_AddItem_NoMerge(t *testing.T) {
	store := newMemStore()
	svc := newCartService(store)
	u := seedShopper(t, store, entity.StatusSimple)
	p := seedCatalogProduct(t, store, 100)

	_, err := svc.AddItem(u.ID, p.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(u.ID, p.ID, 2)
	require.NoError(t, err)

	view, err := svc.GetCart(u.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, int64(300), view.TotalPrice)
}

func TestCartService_LivePrice(t *testing.T) {
	store := newMemStore()
	svc := newCartService(store)
	u := seedShopper(t, store, entity.StatusSimple)
	p := seedCatalogProduct(t, store, 100)

	itemView, err := svc.AddItem(u.ID, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(300), itemView.TotalPrice)

	// A price change retroactively affects unpurchased cart totals.
	p.Price = 200
	require.NoError(t, fakeProductRepo{store}.Update(p))

	view, err := svc.GetCart(u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), view.TotalPrice)
}

func TestCartService_UpdateItem(t *testing.T) {
	store := newMemStore()
	svc := newCartService(store)
	u := seedShopper(t, store, entity.StatusSimple)
	p := seedCatalogProduct(t, store, 100)

	itemView, err := svc.AddItem(u.ID, p.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateItem(u.ID, itemView.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, int64(500), updated.TotalPrice)
}

func TestCartService_ItemOwnership(t *testing.T) {
	store := newMemStore()
	svc := newCartService(store)
	owner := seedShopper(t, store, entity.StatusSimple)
	p := seedCatalogProduct(t, store, 100)

	itemView, err := svc.AddItem(owner.ID, p.ID, 1)
	require.NoError(t, err)

	other := &entity.User{Username: "other", Email: "other@example.com", Status: entity.StatusSimple}
	require.NoError(t, fakeUserRepo{store}.Create(other))
	// Give the other user a cart so the lookup succeeds but ownership fails.
	require.NoError(t, fakeCartRepo{store}.Create(&entity.Cart{UserID: other.ID}))

	_, err = svc.UpdateItem(other.ID, itemView.ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	err = svc.RemoveItem(other.ID, itemView.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	require.NoError(t, svc.RemoveItem(owner.ID, itemView.ID))
	view, err := svc.GetCart(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
