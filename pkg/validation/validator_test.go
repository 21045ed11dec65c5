package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Stars    int    `json:"stars" binding:"omitempty,stars"`
	Age      int    `json:"age" binding:"age"`
}

func validate(t *testing.T, req sampleRequest) error {
	t.Helper()
	Init()
	return binding.Validator.ValidateStruct(&req)
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	err := validate(t, sampleRequest{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["username"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Contains(t, details, "password")
	assert.NotContains(t, details, "Username")
}

func TestToDetailsAliases(t *testing.T) {
	err := validate(t, sampleRequest{
		Username: "buyer",
		Email:    "buyer@example.com",
		Password: "longenough",
		Stars:    9,
		Age:      12,
	})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be between 1 and 5", details["stars"])
	assert.Equal(t, "must be between 15 and 120", details["age"])
}

func TestToDetailsNilAndFallback(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(assert.AnError))
}
