package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurmatov/onlineshop-api/internal/container"
	handlers "github.com/nurmatov/onlineshop-api/internal/interface/http"
	"github.com/nurmatov/onlineshop-api/internal/interface/middleware"
	"github.com/nurmatov/onlineshop-api/pkg/helpers"
)

// CartModule wires shopping cart routes. All of them require a session.

type CartModule struct {
	Handler *handlers.CartHandler
	JWT     *helpers.JWTManager
}

func NewCartModule(h *handlers.CartHandler, jwt *helpers.JWTManager) *CartModule {
	return &CartModule{Handler: h, JWT: jwt}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/cart", m.Handler.GetCart)
		auth.POST("/cart/items", m.Handler.AddItem)
		auth.PUT("/cart/items/:id", m.Handler.UpdateItem)
		auth.DELETE("/cart/items/:id", m.Handler.RemoveItem)
	}
}
