package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/digimarket/digimarket/internal/handlers"
	authmw "github.com/digimarket/digimarket/internal/middleware/auth"
	"github.com/digimarket/digimarket/internal/service"
)

type Deps struct {
	DB             *gorm.DB
	Auth           *service.AuthService
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)

	produits := api.Group("/produits")
	produits.GET("", d.ProductHandler.GetProducts)
	produits.GET("/:id", d.ProductHandler.GetProduct)
	produits.POST("", d.ProductHandler.CreateProduct, authmw.AdminOnly(d.Auth))
	produits.PUT("/:id", d.ProductHandler.UpdateProduct, authmw.AdminOnly(d.Auth))
	produits.DELETE("/:id", d.ProductHandler.DeleteProduct, authmw.AdminOnly(d.Auth))

	commandes := api.Group("/commandes", authmw.RequireLogin(d.Auth))
	commandes.GET("", d.OrderHandler.GetOrders)
	commandes.POST("", d.OrderHandler.CreateOrder)
	commandes.GET("/:id", d.OrderHandler.GetOrder)
	commandes.PATCH("/:id", d.OrderHandler.UpdateOrderStatus, authmw.AdminOnly(d.Auth))
	commandes.GET("/:id/lignes", d.OrderHandler.GetOrderLines)
}
