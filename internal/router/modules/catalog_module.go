package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurmatov/onlineshop-api/internal/container"
	handlers "github.com/nurmatov/onlineshop-api/internal/interface/http"
	"github.com/nurmatov/onlineshop-api/internal/interface/middleware"
	"github.com/nurmatov/onlineshop-api/pkg/helpers"
)

// CatalogModule wires category and product routes.
// Browsing is public; anything that writes requires an authenticated session.

type CatalogModule struct {
	Handler *handlers.CatalogHandler
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.CatalogHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/categories", browseLimiter, m.Handler.ListCategories)
	rg.GET("/products", browseLimiter, m.Handler.ListProducts)
	rg.GET("/products/search", searchLimiter, m.Handler.Search)
	rg.GET("/products/:id", browseLimiter, m.Handler.GetProduct)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/categories", m.Handler.CreateCategory)
		auth.POST("/products", m.Handler.CreateProduct)
		auth.PUT("/products/:id", m.Handler.UpdateProduct)
		auth.DELETE("/products/:id", m.Handler.DeleteProduct)
		auth.POST("/products/:id/photos", m.Handler.UploadPhoto)
		auth.POST("/products/:id/ratings", m.Handler.RateProduct)
		auth.POST("/products/:id/reviews", m.Handler.AddReview)
	}
}
