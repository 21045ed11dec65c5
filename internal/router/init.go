package router

import (
	"github.com/nurmatov/onlineshop-api/internal/application"
	"github.com/nurmatov/onlineshop-api/internal/container"
	pginfra "github.com/nurmatov/onlineshop-api/internal/infrastructure/postgres"
	handlers "github.com/nurmatov/onlineshop-api/internal/interface/http"
	"github.com/nurmatov/onlineshop-api/internal/router/modules"
)

type Deps struct {
	UserHandler    *handlers.UserHandler
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
}

func buildDeps() Deps {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	log := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	products := pginfra.NewProductRepository(pool)
	ratings := pginfra.NewRatingRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)
	carts := pginfra.NewCartRepository(pool)

	userSvc := application.NewUserService(
		users,
		carts,
		container.GetJWT(),
		container.GetRedis(),
		container.GetRabbitPub(),
		log,
	)
	catalogSvc := application.NewCatalogService(
		categories,
		products,
		ratings,
		reviews,
		users,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESProductsIndex,
		log,
	)
	cartSvc := application.NewCartService(carts, products, ratings, users, log)

	return Deps{
		UserHandler:    handlers.NewUserHandler(userSvc, container.GetJWT(), log, cfg.CookieDomain, cfg.CookieSecure),
		CatalogHandler: handlers.NewCatalogHandler(catalogSvc, log),
		CartHandler:    handlers.NewCartHandler(cartSvc, log),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	r.Add(modules.NewAuthModule(deps.UserHandler, container.GetJWT()))
	r.Add(modules.NewCatalogModule(deps.CatalogHandler, container.GetJWT()))
	r.Add(modules.NewCartModule(deps.CartHandler, container.GetJWT()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
