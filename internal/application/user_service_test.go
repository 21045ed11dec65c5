package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurmatov/onlineshop-api/internal/domain/entity"
	"github.com/nurmatov/onlineshop-api/pkg/helpers"
)

func newUserService(store *memStore) *UserService {
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)
	return NewUserService(fakeUserRepo{store}, fakeCartRepo{store}, jwt, nil, nil, nil)
}

func TestUserService_Register(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)

	resp, pair, err := svc.Register(context.Background(), RegisterInput{
		Username:    "aizhan",
		Email:       "aizhan@example.com",
		Password:    "sup3rsecret",
		FirstName:   "Aizhan",
		LastName:    "K",
		Age:         24,
		PhoneNumber: "+996700123456",
	})
	require.NoError(t, err)

	assert.Equal(t, "aizhan", resp.User.Username)
	assert.Equal(t, "aizhan@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.Equal(t, resp.Access, pair.AccessToken)

	// Password stored as a hash, never plain.
	u, err := fakeUserRepo{store}.GetByUsername("aizhan")
	require.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "sup3rsecret"))
	assert.Equal(t, entity.StatusSimple, u.Status)
	assert.False(t, u.DateRegistered.IsZero())

	// Registration provisions the one-per-user cart.
	cart, err := fakeCartRepo{store}.GetByUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, cart.UserID)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Username: "bek", Email: "bek@example.com", Password: "password1"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Username: "bek", Email: "other@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUserService_Login(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Username: "bek", Email: "bek@example.com", Password: "password1"})
	require.NoError(t, err)

	resp, pair, err := svc.Login(ctx, "bek", "password1")
	require.NoError(t, err)
	assert.Equal(t, "bek", resp.User.Username)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.UserID)
}

func TestUserService_Login_BadCredentials(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Username: "bek", Email: "bek@example.com", Password: "password1"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "bek", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_GetProfile(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Username: "gulnara", Email: "g@example.com", Password: "password1",
		FirstName: "Gulnara", LastName: "A", Age: 30, PhoneNumber: "+996555000111",
		Status: entity.StatusGold,
	})
	require.NoError(t, err)

	u, err := fakeUserRepo{store}.GetByUsername("gulnara")
	require.NoError(t, err)

	view, err := svc.GetProfile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "gulnara", view.Username)
	assert.Equal(t, "gold", view.Status)
	assert.Equal(t, 30, view.Age)
	assert.Equal(t, u.DateRegistered.Format(DateLayout), view.DateRegistered)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	svc := newUserService(newMemStore())
	_, err := svc.GetProfile("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
