package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bdmarket/storefront/internal/buyer"
	authmw "github.com/bdmarket/storefront/internal/middleware/auth"
)

type Deps struct {
	Buyer   *buyer.Resolver
	Basket  *BasketHTTP
	Order   *OrderHTTP
	Catalog *CatalogHTTP
	Auth    *AuthHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api", d.Buyer.Middleware())

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/refresh", d.Auth.Refresh)

	api.GET("/basket", d.Basket.GetBasket)
	api.POST("/basket/items", d.Basket.AddItem)
	api.PUT("/basket/items/:itemId", d.Basket.UpdateItem)
	api.DELETE("/basket/items/:itemId", d.Basket.DeleteItem)

	api.POST("/orders", d.Order.CreateOrder)
	api.GET("/orders/:id", d.Order.GetOrder)
	api.GET("/orders", d.Order.ListOrders)

	api.GET("/catalog/items", d.Catalog.ListItems)
	api.GET("/catalog/items/:id", d.Catalog.GetItem)
	api.GET("/catalog/brands", d.Catalog.ListBrands)
	api.GET("/catalog/types", d.Catalog.ListTypes)
	api.GET("/catalog/search", d.Catalog.Search)

	admin := api.Group("/catalog", authmw.RequireAdmin)
	admin.POST("/items", d.Catalog.CreateItem)
	admin.PATCH("/items/:id", d.Catalog.PatchItem)
	admin.DELETE("/items/:id", d.Catalog.DeleteItem)
}
